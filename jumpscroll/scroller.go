// Package jumpscroll animates programmatic jumps in a virtual list.
//
// A jump evicts the visible items, repositions the list instantly and, on the
// next layout pass, matches the old items against the new ones by stable
// identity. Old items without a counterpart slide out while the new items
// slide in, so the jump reads as one continuous scroll.
//
// Everything runs on the UI goroutine. The host calls [Scroller.Tick] (or
// [Scroller.Step]) once per frame while [Scroller.Running] reports true.
package jumpscroll

import (
	"log/slog"
	"time"
)

// Option configures a Scroller.
type Option func(*Scroller)

// WithAdapter sets the data source used for identity matching. If the adapter
// also implements Listener it is told about animation start and end before
// and after every other listener.
func WithAdapter(adapter Adapter) Option {
	return func(s *Scroller) {
		s.adapter = adapter
		if l, ok := adapter.(Listener); ok {
			s.life.adapter = l
		} else {
			s.life.adapter = nil
		}
	}
}

// WithListener adds an animation lifecycle listener.
func WithListener(listener Listener) Option {
	return func(s *Scroller) {
		if listener != nil {
			s.life.listeners = append(s.life.listeners, listener)
		}
	}
}

// WithScrollListener sets a function called after every animation frame.
func WithScrollListener(fn func()) Option {
	return func(s *Scroller) {
		s.onScroll = fn
	}
}

// WithTiming sets the interpolation timing.
func WithTiming(timing Timing) Option {
	return func(s *Scroller) {
		s.timing = timing.normalized()
	}
}

// WithDirection sets the initial scroll direction.
func WithDirection(direction Direction) Option {
	return func(s *Scroller) {
		s.direction = direction
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scroller) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now for Step.
func WithClock(now func() time.Time) Option {
	return func(s *Scroller) {
		if now != nil {
			s.now = now
		}
	}
}

// Scroller performs animated jumps on a List.
type Scroller struct {
	list      List
	adapter   Adapter
	timing    Timing
	direction Direction
	logger    *slog.Logger
	now       func() time.Time
	onScroll  func()
	life      lifecycle

	state State
	// generation invalidates layout callbacks registered by earlier jumps.
	generation uint64

	before Snapshot
	ids    identityMap
	plan   Plan
	interp interpolation
	value  float64
}

// New returns a Scroller for list.
func New(list List, opts ...Option) *Scroller {
	s := &Scroller{
		list:   list,
		timing: DefaultTiming(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current transition state.
func (s *Scroller) State() State {
	return s.state
}

// Running reports whether a transition is in flight. The host must keep
// producing layout passes and frames while it is.
func (s *Scroller) Running() bool {
	return s.state != StateIdle
}

// Value returns the last applied animation progress.
func (s *Scroller) Value() float64 {
	return s.value
}

// Plan returns the plan of the running animation.
func (s *Scroller) Plan() (Plan, bool) {
	if s.state != StateAnimating {
		return Plan{}, false
	}
	return s.plan, true
}

// SetScrollDirection sets the direction used by later animated jumps.
// DirectionUnset makes every jump instantaneous.
func (s *Scroller) SetScrollDirection(direction Direction) {
	s.direction = direction
}

// ScrollDirection returns the configured direction.
func (s *Scroller) ScrollDirection() Direction {
	return s.direction
}

// SetTiming replaces the timing for later animations.
func (s *Scroller) SetTiming(timing Timing) {
	s.timing = timing.normalized()
}

// Timing returns the configured timing.
func (s *Scroller) Timing() Timing {
	return s.timing
}

// DepartingAt returns the pre-jump handle that showed the item at index,
// while a transition is in flight.
func (s *Scroller) DepartingAt(index int) (Handle, bool) {
	if s.state == StateIdle {
		return nil, false
	}
	for _, e := range s.before.Entries {
		if e.Handle.Index() == index {
			return e.Handle, true
		}
	}
	return nil, false
}

// ScrollTo jumps without animation, anchored at the bottom edge when the list
// lays out in reverse.
func (s *Scroller) ScrollTo(index, offset int) bool {
	anchorBottom := false
	if rl, ok := s.list.(ReverseLayouter); ok {
		anchorBottom = rl.ReverseLayout()
	}
	return s.ScrollToPosition(index, offset, anchorBottom, false)
}

// ScrollToEdge jumps without animation to the given anchor edge.
func (s *Scroller) ScrollToEdge(index, offset int, anchorBottom bool) bool {
	return s.ScrollToPosition(index, offset, anchorBottom, false)
}

// ScrollToPosition jumps to the item at index. With smooth set, a scroll
// direction configured and a non-empty viewport the jump is animated,
// otherwise it is instantaneous.
//
// It returns false when the request is rejected because a transition or the
// list's own item animation is running. Rejected requests are not queued.
func (s *Scroller) ScrollToPosition(index, offset int, anchorBottom, smooth bool) bool {
	if s.state != StateIdle || s.itemAnimationRunning() {
		s.logger.Debug("jump rejected", "index", index, "state", s.state)
		return false
	}

	if !smooth || s.direction == DirectionUnset {
		s.repositionInstantly(index, offset, anchorBottom)
		return true
	}

	visible := s.list.VisibleHandles()
	if len(visible) == 0 {
		s.repositionInstantly(index, offset, anchorBottom)
		return true
	}

	s.state = StateCapturing
	s.list.SetScrollEnabled(false)

	s.ids.reset()
	s.before = capture(visible, s.adapter)
	for i, e := range s.before.Entries {
		if e.HasID {
			s.ids.put(e.ID, i)
		}
		setAnimating(e.Handle, true, true)
		s.list.Detach(e.Handle)
	}
	s.list.ClearRecycled()

	s.list.Reposition(index, offset, anchorBottom)
	s.list.Refresh()
	s.list.StopScroll()
	s.list.SetScrollBarEnabled(false)
	s.life.start()

	s.generation++
	generation := s.generation
	s.list.OnNextLayout(func() {
		s.onLayout(generation)
	})
	s.list.Invalidate()

	s.logger.Debug("jump captured",
		"index", index,
		"offset", offset,
		"anchor_bottom", anchorBottom,
		"direction", s.direction,
		"visible", s.before.Len(),
		"identities", s.ids.len())
	return true
}

// repositionInstantly leaves every handle untouched and lets the list jump.
func (s *Scroller) repositionInstantly(index, offset int, anchorBottom bool) {
	s.list.Reposition(index, offset, anchorBottom)
	s.logger.Debug("jump instant", "index", index, "offset", offset, "anchor_bottom", anchorBottom)
}

func (s *Scroller) itemAnimationRunning() bool {
	if ia, ok := s.list.(ItemAnimator); ok {
		return ia.ItemAnimationRunning()
	}
	return false
}

// onLayout runs once, on the first layout pass after the reposition.
func (s *Scroller) onLayout(generation uint64) {
	if generation != s.generation || s.state != StateCapturing {
		return
	}
	s.list.StopScroll()

	viewportHeight := s.list.ViewportHeight()
	after := capture(s.list.VisibleHandles(), s.adapter)
	for _, e := range after.Entries {
		setAnimating(e.Handle, true, false)
	}

	plan := planTransition(s.before, &s.ids, after, s.direction, viewportHeight)
	s.ids.reset()
	for _, h := range plan.Matched {
		setAnimating(h, false, false)
	}
	for _, e := range plan.Departing {
		if !s.list.Attached(e.Handle) {
			s.list.Attach(e.Handle)
		}
		setAnimating(e.Handle, true, true)
	}

	s.start(plan, viewportHeight)
}

func (s *Scroller) start(plan Plan, viewportHeight int) {
	s.plan = plan
	s.value = 0
	// Only one interpolation exists; this replaces whatever was there.
	s.interp = interpolation{
		start:    s.now(),
		duration: Duration(plan.ScrollLength, viewportHeight, s.timing),
		easing:   s.timing.Easing,
	}
	s.state = StateAnimating
	applyFrame(&s.plan, 0, viewportHeight)
	s.list.Invalidate()

	s.logger.Debug("jump animating",
		"departing", len(plan.Departing),
		"incoming", len(plan.Incoming),
		"matched", len(plan.Matched),
		"scroll_diff", plan.ScrollDiff,
		"scroll_length", plan.ScrollLength,
		"duration", s.interp.duration)
}

// Step advances the animation using the configured clock.
func (s *Scroller) Step() {
	s.Tick(s.now())
}

// Tick advances the animation to now. It finishes the transition once the
// progress reaches 1.
func (s *Scroller) Tick(now time.Time) {
	if s.state != StateAnimating {
		return
	}

	value := s.interp.valueAt(now)
	if value < s.value {
		value = s.value
	}
	s.value = value

	applyFrame(&s.plan, value, s.list.ViewportHeight())
	s.list.Invalidate()
	if s.onScroll != nil {
		s.onScroll()
	}

	if value >= 1 {
		s.finish()
	}
}

// Cancel stops a transition immediately and runs the completion cleanup.
// Offsets are reset to zero, not left at the last animated value. It is a
// no-op while idle.
func (s *Scroller) Cancel() {
	if s.state == StateIdle {
		return
	}
	s.logger.Debug("jump cancelled", "state", s.state, "value", s.value)
	s.finish()
}

// finish releases every departing handle and restores the list.
func (s *Scroller) finish() {
	// Drops a pending layout callback when cancelled while capturing.
	s.generation++
	s.interp = interpolation{}

	departing := s.plan.Departing
	if s.state == StateCapturing {
		departing = s.before.Entries
	}
	for _, e := range departing {
		setAnimating(e.Handle, false, true)
		e.Handle.SetTranslation(0)
		s.list.Detach(e.Handle)
	}
	s.verify()

	for _, h := range s.list.VisibleHandles() {
		setAnimating(h, false, false)
		h.SetTranslation(0)
	}

	s.list.SetScrollEnabled(true)
	s.list.SetScrollBarEnabled(true)

	s.ids.reset()
	s.before = Snapshot{}
	s.plan = Plan{}
	s.value = 0
	s.state = StateIdle
	s.list.Invalidate()

	s.life.end()
	s.logger.Debug("jump finished")
}

func (s *Scroller) verify() {
	checker, ok := s.list.(InvariantChecker)
	if !ok {
		return
	}
	if err := checker.CheckInvariants(); err != nil {
		if debugChecks {
			panic(err)
		}
		s.logger.Warn("list bookkeeping out of sync after jump", "err", err)
	}
}
