package help

import "github.com/gdamore/tcell/v2"

// ModeStyles styles the bindings of one help mode.
type ModeStyles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
}

type Styles struct {
	Short ModeStyles
	Full  ModeStyles

	Ellipsis tcell.Style

	// Used for disabled bindings when Help.SetShowDisabled is on.
	DisabledKey  tcell.Style
	DisabledDesc tcell.Style
}

// DefaultStyles dims keys and separators in both modes and strikes through
// disabled keys.
func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	mode := ModeStyles{Key: dim, Desc: tcell.StyleDefault, Separator: dim}
	return Styles{
		Short:        mode,
		Full:         mode,
		Ellipsis:     dim,
		DisabledKey:  dim.StrikeThrough(true),
		DisabledDesc: dim,
	}
}
