package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"":                "",
		" j ":             "j",
		"G":               "G",
		"Ctrl+C":          "ctrl+c",
		"control+shift+X": "ctrl+shift+x",
		"alt+alt+k":       "alt+k",
		"PageDown":        "pgdn",
		"Escape":          "esc",
		"Rune[x]":         "x",
		"backtab":         "shift+tab",
		"ctrl-d":          "ctrl+d",
	} {
		assert.Equal(t, want, normalizeKey(in), in)
	}
}

func TestMatches(t *testing.T) {
	down := NewKeybind(WithKeys("j", "down"), WithHelp("j", "down"))
	quit := NewKeybind(WithKeys("ctrl+c", "q"))
	last := NewKeybind(WithKeys("G"))
	jump := NewKeybind(WithKeys("alt+j"))

	cases := []struct {
		name  string
		event *tcell.EventKey
		bind  Keybind
		want  bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), down, true},
		{"named key", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), down, true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), down, false},
		{"ctrl", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), quit, true},
		{"case sensitive", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), last, false},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone), last, true},
		{"alt", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModAlt), jump, true},
		{"alt missing", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), jump, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Matches(tc.event, tc.bind))
		})
	}

	assert.False(t, Matches(nil, down))
}

func TestEnterIsNotCtrlM(t *testing.T) {
	enter := NewKeybind(WithKeys("enter"))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), enter))
	assert.Equal(t, "tab", eventKeyString(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))
}

func TestDisabledKeybind(t *testing.T) {
	k := NewKeybind(WithKeys("j"), WithDisabled())
	event := tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)

	assert.False(t, k.Enabled())
	assert.False(t, Matches(event, k))

	k.SetEnabled(true)
	assert.True(t, Matches(event, k))
}

func TestSetKeys(t *testing.T) {
	k := NewKeybind(WithKeys("j"))
	copied := k

	k.SetKeys("J", " ", "shift+alt+x", "alt+shift+x")
	assert.Equal(t, []string{"J", "alt+shift+x"}, k.Keys())
	assert.Equal(t, []string{"j"}, copied.Keys())
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt|tcell.ModShift), k))

	k.SetKeys("+", "")
	assert.Empty(t, k.Keys())
}
