package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/jumpscroll"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	timing := cfg.Animation.Timing()
	assert.Equal(t, jumpscroll.DefaultBaseDuration, timing.BaseDuration)
	assert.Equal(t, jumpscroll.DefaultMinDuration, timing.MinDuration)
	assert.Equal(t, jumpscroll.DefaultMaxDuration, timing.MaxDuration)
	assert.NotNil(t, timing.Easing)
	assert.Equal(t, jumpscroll.DirectionForward, cfg.Animation.ScrollDirection())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(`
[animation]
base_duration = "150ms"
easing = "linear"
direction = "backward"

[demo]
messages = 42
gap = 1
stable_ids = false
border = "none"
track_click = "page"
scroll_bar_glyphs = "unicode"
scroll_bar_arrows = true
`)
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.Animation.BaseDuration.Duration)
	assert.Equal(t, jumpscroll.DefaultMaxDuration, cfg.Animation.MaxDuration.Duration)
	assert.Equal(t, jumpscroll.DirectionBackward, cfg.Animation.ScrollDirection())
	assert.InDelta(t, 0.25, cfg.Animation.Timing().Easing(0.25), 1e-9)
	assert.Equal(t, Demo{
		Messages:        42,
		Gap:             1,
		ScrollBar:       true,
		ScrollBarGlyphs: "unicode",
		ScrollBarArrows: true,
		Border:          "none",
		TrackClick:      "page",
	}, cfg.Demo)

	assert.Nil(t, cfg.Keys)

	behavior, ok := cfg.Demo.TrackClickBehavior()
	require.True(t, ok)
	assert.Equal(t, tview.TrackClickBehaviorPage, behavior)
}

func TestParseKeys(t *testing.T) {
	cfg, err := Parse(`
[keys]
quit = ["ctrl+q"]
top = ["t", "home"]
`)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"quit": {"ctrl+q"}, "top": {"t", "home"}}, cfg.Keys)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"easing", "[animation]\neasing = \"bounce\"", "unknown curve"},
		{"direction", "[animation]\ndirection = \"sideways\"", "unknown direction"},
		{"duration syntax", "[animation]\nbase_duration = \"soon\"", "invalid duration"},
		{"negative duration", "[animation]\nmin_duration = \"-1ms\"", "must be positive"},
		{"min above max", "[animation]\nmin_duration = \"2s\"", "exceeds max_duration"},
		{"messages", "[demo]\nmessages = -1", "must not be negative"},
		{"border", "[demo]\nborder = \"double\"", "unknown border"},
		{"track click", "[demo]\ntrack_click = \"drag\"", "unknown behavior"},
		{"glyphs", "[demo]\nscroll_bar_glyphs = \"ascii\"", "unknown glyph set"},
		{"unknown key", "[animation]\nspeed = 3", "unknown keys: animation.speed"},
		{"key action", "[keys]\nfly = [\"f\"]", "keys.fly: unknown action"},
		{"empty keys", "[keys]\nquit = [\" \", \"+\"]", "keys.quit: no valid key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jumpdemo.toml")
	writeFile(t, path, "[demo]\nmessages = 7\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Demo.Messages)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jumpdemo.toml")
	writeFile(t, path, "[demo]\nmessages = 1\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(cfg Config) { changes <- cfg })
	}()

	// Unrelated files in the same directory are ignored, invalid content is skipped.
	writeFile(t, filepath.Join(dir, "other.toml"), "[demo]\nmessages = 9\n")
	writeFile(t, path, "[demo]\nmessages = -5\n")
	time.Sleep(200 * time.Millisecond)
	writeFile(t, path, "[demo]\nmessages = 3\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, 3, cfg.Demo.Messages)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
