// Package keybind matches tcell key events against configurable key names
// such as "j", "ctrl+c" or "shift+tab".
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a set of equivalent keys with the help text shown for them.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) { k.SetKeys(keys...) }
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) { k.SetHelp(key, desc) }
}

// WithDisabled creates the binding disabled.
func WithDisabled() Option {
	return func(k *Keybind) { k.disabled = true }
}

// Keys returns the normalized key names.
func (k Keybind) Keys() []string {
	return k.keys
}

// SetKeys replaces the keys. Names that do not normalize to a key are
// dropped, so an empty Keys afterwards means none was valid.
func (k *Keybind) SetKeys(keys ...string) {
	k.keys = nil
	for _, key := range keys {
		if key = normalizeKey(key); key != "" && !slices.Contains(k.keys, key) {
			k.keys = append(k.keys, key)
		}
	}
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the binding matches events and shows up in help.
func (k Keybind) Enabled() bool {
	return !k.disabled
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

type Help struct {
	Key  string
	Desc string
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKeyString(event)
	for _, keybind := range keybinds {
		if keybind.Enabled() && slices.Contains(keybind.keys, key) {
			return true
		}
	}
	return false
}

// modifiers lists modifier names in the order they are joined.
var modifiers = []struct {
	name string
	mask tcell.ModMask
}{
	{"ctrl", tcell.ModCtrl},
	{"alt", tcell.ModAlt},
	{"shift", tcell.ModShift},
	{"meta", tcell.ModMeta},
}

var modifierAliases = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"shift":   tcell.ModShift,
	"meta":    tcell.ModMeta,
}

// keyNames maps named tcell keys to their canonical names.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

var primaryAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

// joinKey renders mods and primary in canonical form. Single runes under a
// modifier are lower-cased since terminals report ctrl+C and ctrl+c alike.
func joinKey(mods tcell.ModMask, primary string) string {
	if mods == 0 {
		return primary
	}
	if len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}
	var b strings.Builder
	for _, m := range modifiers {
		if mods&m.mask != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(primary)
	return b.String()
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if rest, ok := strings.CutPrefix(strings.ToLower(key), "ctrl-"); ok && rest != "" {
		key = "ctrl+" + rest
	}

	var (
		mods    tcell.ModMask
		primary string
	)
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mask, ok := modifierAliases[strings.ToLower(part)]; ok {
			mods |= mask
			continue
		}
		primary = normalizePrimaryKey(part)
	}
	if primary == "" {
		return ""
	}
	if primary == "backtab" {
		mods |= tcell.ModShift
		primary = "tab"
	}
	return joinKey(mods, primary)
}

func normalizePrimaryKey(key string) string {
	if inner, ok := strings.CutPrefix(key, "Rune["); ok && len(inner) > 1 && strings.HasSuffix(inner, "]") {
		return inner[:len(inner)-1]
	}
	// Runes keep their case: "G" and "g" are different bindings.
	if len([]rune(key)) == 1 {
		return key
	}
	key = strings.ToLower(key)
	if alias, ok := primaryAliases[key]; ok {
		return alias
	}
	return key
}

func eventKeyString(event *tcell.EventKey) string {
	if event == nil {
		return ""
	}

	// Enter, tab and backspace share their codes with ctrl+m, ctrl+i and
	// ctrl+h, so named keys are checked first.
	key := event.Key()
	primary, named := keyNames[key]
	switch {
	case named:
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	case key == tcell.KeyRune:
		primary = string(event.Rune())
	default:
		return normalizeKey(event.Name())
	}
	if strings.Contains(primary, "+") {
		return primary
	}
	return joinKey(event.Modifiers(), primary)
}
