// Package config loads the jump demo configuration from TOML.
package config

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/jumpscroll"
	"github.com/xqrs/tview/keybind"
)

// KeyActions names the demo actions that [keys] may rebind.
var KeyActions = []string{
	"down", "up", "top", "bottom", "random",
	"insert", "append", "delete", "edit",
	"direction", "cancel", "help", "quit",
}

// Config is the whole configuration file.
type Config struct {
	Animation Animation `toml:"animation"`
	Demo      Demo      `toml:"demo"`

	// Keys replaces the keys of an action, for example quit = ["q", "ctrl+q"].
	Keys map[string][]string `toml:"keys"`
}

// Animation tunes jump animations. Easing is one of linear, ease-out-cubic
// or ease-out-quint. Direction is forward, backward or unset, and unset
// disables animation.
type Animation struct {
	BaseDuration Duration `toml:"base_duration"`
	MinDuration  Duration `toml:"min_duration"`
	MaxDuration  Duration `toml:"max_duration"`
	Easing       string   `toml:"easing"`
	Direction    string   `toml:"direction"`
}

// Demo configures the demo message list. Border is none, plain, round or
// thick. TrackClick is page or jump. ScrollBarGlyphs is minimal, legacy or
// unicode.
type Demo struct {
	Messages        int    `toml:"messages"`
	Gap             int    `toml:"gap"`
	StableIDs       bool   `toml:"stable_ids"`
	ScrollBar       bool   `toml:"scroll_bar"`
	ScrollBarGlyphs string `toml:"scroll_bar_glyphs"`
	ScrollBarArrows bool   `toml:"scroll_bar_arrows"`
	Border          string `toml:"border"`
	TrackClick      string `toml:"track_click"`
}

// Duration is a time.Duration written as a string ("200ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Animation: Animation{
			BaseDuration: Duration{jumpscroll.DefaultBaseDuration},
			MinDuration:  Duration{jumpscroll.DefaultMinDuration},
			MaxDuration:  Duration{jumpscroll.DefaultMaxDuration},
			Easing:       "ease-out-quint",
			Direction:    "forward",
		},
		Demo: Demo{
			Messages:        500,
			StableIDs:       true,
			ScrollBar:       true,
			ScrollBarGlyphs: "minimal",
			Border:          "round",
			TrackClick:      "jump",
		},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Parse decodes a configuration document on top of the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		keys = append(keys, key.String())
	}
	return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	a := c.Animation
	for name, d := range map[string]Duration{
		"base_duration": a.BaseDuration,
		"min_duration":  a.MinDuration,
		"max_duration":  a.MaxDuration,
	} {
		if d.Duration <= 0 {
			return errors.Errorf("animation.%s must be positive, got %s", name, d)
		}
	}
	if a.MinDuration.Duration > a.MaxDuration.Duration {
		return errors.Errorf("animation.min_duration %s exceeds max_duration %s", a.MinDuration, a.MaxDuration)
	}
	if _, ok := jumpscroll.EasingByName(a.Easing); !ok {
		return errors.Errorf("animation.easing: unknown curve %q", a.Easing)
	}
	if _, ok := jumpscroll.ParseDirection(a.Direction); !ok {
		return errors.Errorf("animation.direction: unknown direction %q", a.Direction)
	}
	if c.Demo.Messages < 0 {
		return errors.Errorf("demo.messages must not be negative, got %d", c.Demo.Messages)
	}
	if c.Demo.Gap < 0 {
		return errors.Errorf("demo.gap must not be negative, got %d", c.Demo.Gap)
	}
	if _, ok := tview.BorderSetByName(c.Demo.Border); !ok && c.Demo.Border != "none" {
		return errors.Errorf("demo.border: unknown border %q", c.Demo.Border)
	}
	if _, ok := tview.GlyphSetByName(c.Demo.ScrollBarGlyphs); !ok {
		return errors.Errorf("demo.scroll_bar_glyphs: unknown glyph set %q", c.Demo.ScrollBarGlyphs)
	}
	if _, ok := c.Demo.TrackClickBehavior(); !ok {
		return errors.Errorf("demo.track_click: unknown behavior %q", c.Demo.TrackClick)
	}
	for _, action := range slices.Sorted(maps.Keys(c.Keys)) {
		if !slices.Contains(KeyActions, action) {
			return errors.Errorf("keys.%s: unknown action", action)
		}
		if kb := keybind.NewKeybind(keybind.WithKeys(c.Keys[action]...)); len(kb.Keys()) == 0 {
			return errors.Errorf("keys.%s: no valid key in %q", action, c.Keys[action])
		}
	}
	return nil
}

// TrackClickBehavior converts the track_click name.
func (d Demo) TrackClickBehavior() (tview.TrackClickBehavior, bool) {
	switch d.TrackClick {
	case "page":
		return tview.TrackClickBehaviorPage, true
	case "", "jump":
		return tview.TrackClickBehaviorJumpToClick, true
	}
	return tview.TrackClickBehaviorPage, false
}

// Timing converts the animation section. The section must be valid.
func (a Animation) Timing() jumpscroll.Timing {
	easing, _ := jumpscroll.EasingByName(a.Easing)
	return jumpscroll.Timing{
		BaseDuration: a.BaseDuration.Duration,
		MinDuration:  a.MinDuration.Duration,
		MaxDuration:  a.MaxDuration.Duration,
		Easing:       easing,
	}
}

// ScrollDirection converts the direction name. The section must be valid.
func (a Animation) ScrollDirection() jumpscroll.Direction {
	direction, _ := jumpscroll.ParseDirection(a.Direction)
	return direction
}
