package jumpscroll

import (
	"time"
)

type fakeHandle struct {
	index       int
	top, bottom int
	translation float64

	ownID    Identity
	hasOwnID bool

	running   bool
	departing bool
	animCalls int
}

func (h *fakeHandle) Index() int                { return h.index }
func (h *fakeHandle) Bounds() Bounds            { return Bounds{Top: h.top, Bottom: h.bottom} }
func (h *fakeHandle) Translation() float64      { return h.translation }
func (h *fakeHandle) SetTranslation(dy float64) { h.translation = dy }

func (h *fakeHandle) StableID() (Identity, bool) { return h.ownID, h.hasOwnID }

func (h *fakeHandle) SetAnimating(running, departing bool) {
	h.running = running
	h.departing = departing
	h.animCalls++
}

// fakeList lays out count items of itemHeight rows each. Repositioning only
// records the request; layout runs when the test calls layout, like a frame.
type fakeList struct {
	viewport   int
	itemHeight int
	count      int

	top          int
	offset       int
	anchorBottom bool

	visible   []*fakeHandle
	attached  map[*fakeHandle]bool
	callbacks []func()

	scrollEnabled    bool
	scrollBarEnabled bool
	repositions      int
	refreshes        int
	recycledClears   int
	stops            int
	invalidations    int
	itemAnimating    bool
	checkErr         error
	checks           int
}

func newFakeList(viewport, itemHeight, count, top int) *fakeList {
	l := &fakeList{
		viewport:         viewport,
		itemHeight:       itemHeight,
		count:            count,
		top:              top,
		attached:         make(map[*fakeHandle]bool),
		scrollEnabled:    true,
		scrollBarEnabled: true,
	}
	l.layout()
	return l
}

func (l *fakeList) layout() {
	l.visible = nil
	row := l.offset
	if l.anchorBottom {
		row = l.viewport - l.offset - l.itemHeight
	}
	for i := l.top; i < l.count && row < l.viewport; i++ {
		h := &fakeHandle{index: i, top: row, bottom: row + l.itemHeight}
		l.visible = append(l.visible, h)
		l.attached[h] = true
		row += l.itemHeight
	}

	callbacks := l.callbacks
	l.callbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

func (l *fakeList) handle(index int) *fakeHandle {
	for _, h := range l.visible {
		if h.index == index {
			return h
		}
	}
	return nil
}

func (l *fakeList) VisibleHandles() []Handle {
	out := make([]Handle, 0, len(l.visible))
	for _, h := range l.visible {
		if l.attached[h] {
			out = append(out, h)
		}
	}
	return out
}

func (l *fakeList) ViewportHeight() int { return l.viewport }

func (l *fakeList) Reposition(index, offset int, anchorBottom bool) {
	l.top = index
	l.offset = offset
	l.anchorBottom = anchorBottom
	l.repositions++
}

func (l *fakeList) Detach(h Handle)        { l.attached[h.(*fakeHandle)] = false }
func (l *fakeList) Attach(h Handle)        { l.attached[h.(*fakeHandle)] = true }
func (l *fakeList) Attached(h Handle) bool { return l.attached[h.(*fakeHandle)] }
func (l *fakeList) ClearRecycled()         { l.recycledClears++ }
func (l *fakeList) Refresh()               { l.refreshes++ }
func (l *fakeList) StopScroll()            { l.stops++ }

func (l *fakeList) SetScrollEnabled(enabled bool)    { l.scrollEnabled = enabled }
func (l *fakeList) SetScrollBarEnabled(enabled bool) { l.scrollBarEnabled = enabled }

func (l *fakeList) OnNextLayout(fn func()) { l.callbacks = append(l.callbacks, fn) }
func (l *fakeList) Invalidate()            { l.invalidations++ }

func (l *fakeList) ItemAnimationRunning() bool { return l.itemAnimating }

func (l *fakeList) CheckInvariants() error {
	l.checks++
	return l.checkErr
}

type fakeAdapter struct {
	stable bool
}

func (a fakeAdapter) HasStableIDs() bool        { return a.stable }
func (a fakeAdapter) ItemID(index int) Identity { return Identity(1000 + index) }

type recordingListener struct {
	name   string
	events *[]string
}

func (r recordingListener) OnAnimationStart() { *r.events = append(*r.events, r.name+":start") }
func (r recordingListener) OnAnimationEnd()   { *r.events = append(*r.events, r.name+":end") }

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
