package tview

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	// Capacity of the event and update channels.
	queueSize = 100
	// Resizes closer together than this are redrawn once more afterwards.
	redrawPause = 50 * time.Millisecond
	// Frame period while a registered primitive animates.
	frameInterval = 16 * time.Millisecond
)

type queuedUpdate struct {
	f    func()
	done chan struct{} // receives once f has run, if set
}

// Application owns the screen and runs the event loop. Primitives never touch
// it directly; their handlers return commands that the loop executes.
//
//	if err := tview.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	// Set by Run or SetScreen and cleared by Stop.
	screen tcell.Screen

	root  Primitive
	focus Primitive

	events  chan tcell.Event
	updates chan queuedUpdate
	// finished is closed when Run returns, so queued work stops waiting.
	finished chan struct{}

	mouse mouseTracker

	// needsClear requests a full clear before the next frame.
	needsClear bool

	animated []Animated
}

func NewApplication() *Application {
	return &Application{
		events:   make(chan tcell.Event, queueSize),
		updates:  make(chan queuedUpdate, queueSize),
		finished: make(chan struct{}),
	}
}

// SetScreen makes Run use screen instead of the terminal. It has no effect
// once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.needsClear = true
	}
	return a
}

// Run draws the root and processes events until Stop is called or the screen
// reports an error, which is then returned. Registered animated primitives are
// redrawn every frame while they report IsAnimating.
func (a *Application) Run() error {
	if err := a.initScreen(); err != nil {
		return err
	}
	defer close(a.finished)

	// Restore the terminal before the panic is printed.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	go a.pollEvents()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var loop eventLoop
	for {
		select {
		case event := <-a.events:
			if event == nil {
				return loop.err
			}
			a.handleEvent(&loop, event)
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		case <-ticker.C:
			if a.animating() {
				a.draw()
			}
		}
	}
}

func (a *Application) initScreen() error {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err = screen.Init(); err != nil {
			return err
		}
		a.screen = screen
	}
	a.screen.EnableMouse()
	a.screen.EnablePaste()
	return nil
}

// pollEvents forwards screen events. A nil event, sent once the screen is
// gone, ends Run.
func (a *Application) pollEvents() {
	for {
		a.RLock()
		screen := a.screen
		a.RUnlock()
		if screen == nil {
			a.events <- nil
			return
		}
		event := screen.PollEvent()
		a.events <- event
		if event == nil {
			return
		}
	}
}

// eventLoop is the state Run carries between events.
type eventLoop struct {
	err         error
	lastResize  time.Time
	resizeTimer *time.Timer
	paste       strings.Builder
	pasting     bool
}

func (a *Application) handleEvent(loop *eventLoop, event tcell.Event) {
	redraw := false
	switch event := event.(type) {
	case *tcell.EventKey:
		if loop.pasting {
			loop.collectPaste(event)
			return
		}
		if root := a.focusedRoot(); root != nil {
			redraw = a.executeCommand(root.InputHandler(event))
		}
	case *tcell.EventPaste:
		loop.pasting = event.Start()
		if event.Start() {
			loop.paste.Reset()
			return
		}
		if root := a.focusedRoot(); root != nil && loop.paste.Len() > 0 {
			redraw = a.executeCommand(root.PasteHandler(loop.paste.String()))
		}
	case *tcell.EventResize:
		a.handleResize(loop, event)
	case *tcell.EventMouse:
		redraw = a.dispatchMouse(event)
	case *tcell.EventError:
		loop.err = event
		a.Stop()
	}
	if redraw {
		a.draw()
	}
}

// collectPaste buffers the text of a bracketed paste.
func (loop *eventLoop) collectPaste(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyRune:
		loop.paste.WriteRune(event.Rune())
	case tcell.KeyEnter:
		loop.paste.WriteRune('\n')
	case tcell.KeyTab:
		loop.paste.WriteRune('\t')
	}
}

// handleResize clears and redraws. A resize right after another is queued
// again, because terminals send them in bursts and the last one may report a
// stale size.
func (a *Application) handleResize(loop *eventLoop, event *tcell.EventResize) {
	a.Lock()
	a.needsClear = true
	a.Unlock()
	if time.Since(loop.lastResize) < redrawPause {
		if loop.resizeTimer != nil {
			loop.resizeTimer.Stop()
		}
		loop.resizeTimer = time.AfterFunc(redrawPause, func() { a.QueueEvent(event) })
	}
	loop.lastResize = time.Now()
	a.draw()
}

func (a *Application) focusedRoot() Primitive {
	a.RLock()
	defer a.RUnlock()
	if a.root != nil && a.root.HasFocus() {
		return a.root
	}
	return nil
}

// Stop releases the screen, which makes Run return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

// draw lays the root out over the whole screen and shows it. tcell diffs
// against its back buffer in Show, so the screen is only cleared on request.
func (a *Application) draw() {
	a.Lock()
	screen, root, full := a.screen, a.root, a.needsClear
	a.needsClear = false
	a.Unlock()
	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if full {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// SetRoot sets the primitive that fills the screen and focuses it. A root that
// implements Animated is registered for frame ticks.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if animated, ok := root.(Animated); ok {
		a.registerAnimated(animated)
	}
	if a.screen != nil {
		a.needsClear = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p, which may delegate
// focus further down.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()

	if p != nil {
		p.Focus(func(p Primitive) { a.SetFocus(p) })
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and waits for it. Use it to touch
// primitives from other goroutines. It does not redraw; see QueueUpdateDraw.
// Once Run has returned, f may be dropped and QueueUpdate returns at once.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: done}:
	case <-a.finished:
		return a
	}
	select {
	case <-done:
	case <-a.finished:
	}
	return a
}

// QueueUpdateDraw is QueueUpdate followed by a redraw.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// QueueEvent feeds event to the event loop as if the screen had sent it. It
// is dropped once Run has returned.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	select {
	case a.events <- event:
	case <-a.finished:
	}
	return a
}

// RegisterAnimated adds p to the primitives polled on every frame tick.
// Animated roots are registered by SetRoot; nested ones register here or
// through AnimateCommand.
func (a *Application) RegisterAnimated(p Animated) *Application {
	a.Lock()
	defer a.Unlock()
	a.registerAnimated(p)
	return a
}

func (a *Application) registerAnimated(p Animated) {
	if !slices.Contains(a.animated, p) {
		a.animated = append(a.animated, p)
	}
}

func (a *Application) animating() bool {
	a.RLock()
	defer a.RUnlock()
	return slices.ContainsFunc(a.animated, Animated.IsAnimating)
}

// executeCommand carries out cmd and reports whether the screen needs a
// redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			redraw = a.executeCommand(item) || redraw
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target != nil {
			changed := a.GetFocus() != c.Target
			a.SetFocus(c.Target)
			return changed
		}
	case SyncCommand:
		a.Lock()
		screen := a.screen
		a.needsClear = true
		a.Unlock()
		if screen != nil {
			screen.Sync()
			return true
		}
	case AnimateCommand:
		if c.Target != nil {
			a.RegisterAnimated(c.Target)
			return true
		}
	}
	// ConsumeEventCommand and unknown commands only stop propagation.
	return false
}
