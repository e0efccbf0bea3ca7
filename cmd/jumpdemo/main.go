// Command jumpdemo shows animated jumps in a long message list.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/internal/config"
)

type options struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Messages   int
	Seed       uint64
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "jumpdemo",
		Short: "Animated jump scrolling in a tcell list",
		Long: `jumpdemo fills a list with generated messages and jumps between them.
Departing messages slide out while the target slides in.`,
		Example: `  # Run with the built-in defaults
  jumpdemo

  # Load animation settings and reload them on save
  jumpdemo --config jumpdemo.toml

  # Write debug logs next to the binary
  jumpdemo --debug --log-file jumpdemo.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("messages"))
		},
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a TOML config file, reloaded on change")
	rootCmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Path to the log file (logging is off if not specified)")
	rootCmd.Flags().IntVarP(&opts.Messages, "messages", "n", config.Default().Demo.Messages, "Number of generated messages")
	rootCmd.Flags().Uint64Var(&opts.Seed, "seed", uint64(time.Now().UnixNano()), "Seed for generated messages")

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, messagesSet bool) error {
	logger, closeLog, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.Default()
	if opts.ConfigPath != "" {
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return err
		}
	}
	if messagesSet {
		cfg.Demo.Messages = opts.Messages
	}
	if cfg.Demo.Messages < 0 {
		return errors.Errorf("--messages must not be negative, got %d", cfg.Demo.Messages)
	}

	store := newMessageStore(cfg.Demo.Messages, opts.Seed)
	view := newJumpView(store, cfg, logger)

	app := tview.NewApplication()
	app.SetRoot(newRoot(view))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, logger)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		go func() {
			err := watcher.Run(ctx, func(next config.Config) {
				if messagesSet {
					next.Demo.Messages = opts.Messages
				}
				app.QueueUpdateDraw(func() { view.apply(next) })
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	logger.Info("starting", "messages", store.Len(), "direction", cfg.Animation.Direction)
	if err := app.Run(); err != nil {
		return errors.Wrap(err, "running terminal UI")
	}
	return nil
}

// newLogger logs to a file since the terminal belongs to the UI.
func newLogger(opts options) (*slog.Logger, func(), error) {
	if opts.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", opts.LogFile)
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}))
	return logger, func() { _ = f.Close() }, nil
}
