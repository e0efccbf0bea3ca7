package jumpscroll

// Handle is a rendered item borrowed from the host list for the duration of a
// transition. Bounds are layout rows relative to the top of the viewport and
// do not include the translation.
type Handle interface {
	Index() int
	Bounds() Bounds
	Translation() float64
	SetTranslation(dy float64)
}

// Identified is implemented by handles that carry a richer identity than the
// adapter row id, for example a message id.
type Identified interface {
	StableID() (Identity, bool)
}

// Animatable is implemented by handles that render differently while a jump
// animation is running. departing is true for handles leaving the viewport.
type Animatable interface {
	SetAnimating(running, departing bool)
}

// List is the host list widget.
//
// Detach must be idempotent: detaching a handle that is no longer attached is
// a no-op. OnNextLayout callbacks fire once, after the next layout pass, and
// are then forgotten by the host.
type List interface {
	// VisibleHandles returns the attached handles in layout order.
	VisibleHandles() []Handle
	ViewportHeight() int

	// Reposition jumps without animation. With anchorBottom the item's bottom
	// edge is placed offset rows above the viewport bottom, otherwise its top
	// edge is placed offset rows below the viewport top.
	Reposition(index, offset int, anchorBottom bool)

	Detach(h Handle)
	Attach(h Handle)
	Attached(h Handle) bool
	ClearRecycled()
	Refresh()

	StopScroll()
	SetScrollEnabled(enabled bool)
	SetScrollBarEnabled(enabled bool)

	OnNextLayout(fn func())
	Invalidate()
}

// ItemAnimator is implemented by lists that run their own item change
// animations. Jumps are rejected while one is running.
type ItemAnimator interface {
	ItemAnimationRunning() bool
}

// ReverseLayouter is implemented by lists that lay out from the bottom edge.
type ReverseLayouter interface {
	ReverseLayout() bool
}

// InvariantChecker is implemented by lists that can verify their child
// bookkeeping once a transition has released every departing handle.
type InvariantChecker interface {
	CheckInvariants() error
}

func setAnimating(h Handle, running, departing bool) {
	if a, ok := h.(Animatable); ok {
		a.SetAnimating(running, departing)
	}
}
