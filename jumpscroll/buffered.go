package jumpscroll

// Notifier receives structural change notifications for a list.
type Notifier interface {
	NotifyReset()
	NotifyRangeInserted(start, count int)
	NotifyRangeRemoved(start, count int)
	NotifyItemChanged(index int)
	NotifyRangeChanged(start, count int)
}

// Range is a buffered (position, count) pair.
type Range struct {
	Start int
	Count int
}

// BufferedNotifier wraps a Notifier and holds structural notifications back
// while a jump animation runs. When the animation ends, anything buffered is
// flushed as a single reset rather than replayed range by range.
//
// Item change notifications are dropped while animating: rebinding a handle
// that is mid-flight is unsafe, and the flush reset rebinds everything anyway.
type BufferedNotifier struct {
	target Notifier

	animating bool
	reset     bool
	inserted  []Range
	removed   []Range
}

// NewBufferedNotifier returns a BufferedNotifier forwarding to target.
func NewBufferedNotifier(target Notifier) *BufferedNotifier {
	return &BufferedNotifier{target: target}
}

// Animating reports whether notifications are currently buffered.
func (b *BufferedNotifier) Animating() bool {
	return b.animating
}

// Pending reports whether a flush would emit a reset.
func (b *BufferedNotifier) Pending() bool {
	return b.reset || len(b.inserted) > 0 || len(b.removed) > 0
}

// Inserted returns a copy of the buffered insertions.
func (b *BufferedNotifier) Inserted() []Range {
	return append([]Range(nil), b.inserted...)
}

// Removed returns a copy of the buffered removals.
func (b *BufferedNotifier) Removed() []Range {
	return append([]Range(nil), b.removed...)
}

func (b *BufferedNotifier) NotifyReset() {
	if b.animating {
		b.reset = true
		return
	}
	b.target.NotifyReset()
}

func (b *BufferedNotifier) NotifyItemInserted(index int) {
	b.NotifyRangeInserted(index, 1)
}

func (b *BufferedNotifier) NotifyRangeInserted(start, count int) {
	if b.animating {
		b.inserted = append(b.inserted, Range{Start: start, Count: count})
		return
	}
	b.target.NotifyRangeInserted(start, count)
}

func (b *BufferedNotifier) NotifyItemRemoved(index int) {
	b.NotifyRangeRemoved(index, 1)
}

func (b *BufferedNotifier) NotifyRangeRemoved(start, count int) {
	if b.animating {
		b.removed = append(b.removed, Range{Start: start, Count: count})
		return
	}
	b.target.NotifyRangeRemoved(start, count)
}

func (b *BufferedNotifier) NotifyItemChanged(index int) {
	if b.animating {
		return
	}
	b.target.NotifyItemChanged(index)
}

func (b *BufferedNotifier) NotifyRangeChanged(start, count int) {
	if b.animating {
		return
	}
	b.target.NotifyRangeChanged(start, count)
}

// OnAnimationStart starts buffering with empty buffers.
func (b *BufferedNotifier) OnAnimationStart() {
	b.animating = true
	b.reset = false
	b.inserted = b.inserted[:0]
	b.removed = b.removed[:0]
}

// OnAnimationEnd stops buffering and emits one reset if anything was held back.
func (b *BufferedNotifier) OnAnimationEnd() {
	b.animating = false
	pending := b.Pending()
	b.reset = false
	b.inserted = b.inserted[:0]
	b.removed = b.removed[:0]
	if pending {
		b.target.NotifyReset()
	}
}

// HasStableIDs forwards to the wrapped notifier when it is also an Adapter.
func (b *BufferedNotifier) HasStableIDs() bool {
	if a, ok := b.target.(Adapter); ok {
		return a.HasStableIDs()
	}
	return false
}

// ItemID forwards to the wrapped notifier when it is also an Adapter.
func (b *BufferedNotifier) ItemID(index int) Identity {
	if a, ok := b.target.(Adapter); ok {
		return a.ItemID(index)
	}
	return 0
}

var (
	_ Notifier = (*BufferedNotifier)(nil)
	_ Listener = (*BufferedNotifier)(nil)
	_ Adapter  = (*BufferedNotifier)(nil)
)
