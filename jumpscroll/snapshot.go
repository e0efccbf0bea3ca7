package jumpscroll

// Bounds is a vertical span in viewport rows. Bottom is exclusive.
type Bounds struct {
	Top    int
	Bottom int
}

// Height returns the number of rows covered.
func (b Bounds) Height() int {
	return b.Bottom - b.Top
}

// Intersects reports whether the span, shifted by dy, still touches a
// viewport of the given height.
func (b Bounds) Intersects(viewportHeight int, dy float64) bool {
	top := float64(b.Top) + dy
	bottom := float64(b.Bottom) + dy
	return bottom >= 0 && top <= float64(viewportHeight)
}

// Entry is one captured handle.
type Entry struct {
	Handle Handle
	Bounds Bounds
	ID     Identity
	HasID  bool
}

// Snapshot is the ordered set of handles occupying the viewport at one point
// in time.
type Snapshot struct {
	Entries []Entry
}

func capture(handles []Handle, adapter Adapter) Snapshot {
	s := Snapshot{Entries: make([]Entry, 0, len(handles))}
	for _, h := range handles {
		id, ok := resolveIdentity(h, adapter)
		s.Entries = append(s.Entries, Entry{
			Handle: h,
			Bounds: h.Bounds(),
			ID:     id,
			HasID:  ok,
		})
	}
	return s
}

// Len returns the number of captured handles.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Handles returns the captured handles in order.
func (s Snapshot) Handles() []Handle {
	handles := make([]Handle, len(s.Entries))
	for i, e := range s.Entries {
		handles[i] = e.Handle
	}
	return handles
}

// extent returns the minimum top and maximum bottom of the entries. Both are
// seeded at zero, so the top is never positive and the bottom never negative.
func extent(entries []Entry) (top, bottom int) {
	for _, e := range entries {
		if e.Bounds.Top < top {
			top = e.Bounds.Top
		}
		if e.Bounds.Bottom > bottom {
			bottom = e.Bounds.Bottom
		}
	}
	return top, bottom
}
