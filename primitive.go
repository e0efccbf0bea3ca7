package tview

import "github.com/gdamore/tcell/v2"

// Primitive is a rectangle on screen that draws itself and answers input with
// commands.
type Primitive interface {
	// Draw renders into the primitive's rect. Only the focused primitive may
	// show the cursor.
	Draw(screen tcell.Screen)

	GetRect() (x, y, width, height int)
	SetRect(x, y, width, height int)

	// InputHandler handles a key event while the primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse action. A non-nil capture primitive gets
	// the following actions until it stops returning itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)
	// PasteHandler handles the text of a bracketed paste.
	PasteHandler(text string) Command

	// HasFocus is also true when a child holds focus.
	HasFocus() bool
	// Focus gives the primitive focus. It may hand it on by calling delegate.
	Focus(delegate func(p Primitive))
	Blur()
}

// Animated is implemented by primitives that need frames without input, for
// example while a jump animation runs. The application keeps redrawing at a
// fixed rate while any registered primitive reports IsAnimating.
type Animated interface {
	IsAnimating() bool
}
