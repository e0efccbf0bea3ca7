package tview

import "github.com/gdamore/tcell/v2"

// Theme holds the colors primitives start out with.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color
	BorderColor              tcell.Color
	TitleColor               tcell.Color
	GraphicsColor            tcell.Color // scroll bar thumbs
	PrimaryTextColor         tcell.Color
}

// Styles is the theme new primitives read. Change it before building them.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorDefault,
	BorderColor:              tcell.ColorWhite,
	TitleColor:               tcell.ColorWhite,
	GraphicsColor:            tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorDefault,
}
