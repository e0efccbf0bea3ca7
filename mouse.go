package tview

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DoubleClickInterval is the longest gap between two clicks that still counts
// as a double click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction is a logical mouse action derived from raw tcell mouse events.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

type buttonActions struct {
	button                    tcell.ButtonMask
	down, up, click, dblClick MouseAction
}

var mouseButtons = []buttonActions{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var mouseWheels = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// mouseTracker turns the button state tcell reports into discrete actions.
type mouseTracker struct {
	x, y      int
	downX     int
	downY     int
	buttons   tcell.ButtonMask
	lastClick time.Time

	// capture receives all actions until its handler stops returning it.
	capture Primitive
}

// actions returns the actions event stands for, in the order they fire, and
// records the new state. A click is a release at the press position.
func (m *mouseTracker) actions(event *tcell.EventMouse, now time.Time) []MouseAction {
	var out []MouseAction
	x, y := event.Position()
	buttons := event.Buttons()
	changed := buttons ^ m.buttons
	moved := x != m.downX || y != m.downY

	if x != m.x || y != m.y {
		out = append(out, MouseMove)
		m.x, m.y = x, y
	}
	for _, b := range mouseButtons {
		switch {
		case changed&b.button == 0:
		case buttons&b.button != 0:
			out = append(out, b.down)
			m.downX, m.downY = x, y
		default:
			out = append(out, b.up)
			if moved {
				break
			}
			if now.Sub(m.lastClick) > DoubleClickInterval {
				out = append(out, b.click)
				m.lastClick = now
			} else {
				out = append(out, b.dblClick)
				m.lastClick = time.Time{}
			}
		}
	}
	for _, w := range mouseWheels {
		if buttons&w.button != 0 {
			out = append(out, w.action)
		}
	}
	m.buttons = buttons
	return out
}

// dispatchMouse sends each action of event to the capturing primitive, or to
// the root, and reports whether a redraw is due.
func (a *Application) dispatchMouse(event *tcell.EventMouse) bool {
	a.RLock()
	root := a.root
	a.RUnlock()

	redraw := false
	for _, action := range a.mouse.actions(event, time.Now()) {
		target := a.mouse.capture
		if target == nil {
			target = root
		}
		if target == nil {
			continue
		}
		capture, cmd := target.MouseHandler(action, event)
		a.mouse.capture = capture
		if a.executeCommand(cmd) {
			redraw = true
		}
	}
	return redraw
}
