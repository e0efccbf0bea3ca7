package jumpscroll

// Plan is the immutable result of reconciling the viewport before and after a
// jump.
type Plan struct {
	// Departing are the pre-jump handles without a counterpart after the jump.
	Departing []Entry
	// Incoming are the post-jump handles without a counterpart before the jump.
	Incoming []Handle
	// Matched are the post-jump handles whose identity was visible before the
	// jump. They are visually continuous and are not animated.
	Matched []Handle

	// ScrollDiff is the top delta of the last matched pair that moved.
	ScrollDiff int
	// ScrollLength is the distance in rows the animation traverses. It is
	// never negative.
	ScrollLength int
	Direction    Direction
}

// planTransition matches after against before through ids and computes the
// reconciling scroll distance.
func planTransition(before Snapshot, ids *identityMap, after Snapshot, dir Direction, viewportHeight int) Plan {
	plan := Plan{Direction: dir}

	matched := make([]bool, len(before.Entries))
	for _, e := range after.Entries {
		if e.HasID {
			if position, ok := ids.lookup(e.ID); ok {
				matched[position] = true
				plan.Matched = append(plan.Matched, e.Handle)
				if diff := e.Bounds.Top - before.Entries[position].Bounds.Top; diff != 0 {
					plan.ScrollDiff = diff
				}
				continue
			}
		}
		plan.Incoming = append(plan.Incoming, e.Handle)
	}

	for i, e := range before.Entries {
		if !matched[i] {
			plan.Departing = append(plan.Departing, e)
		}
	}

	plan.ScrollLength = scrollLength(plan, after, viewportHeight)
	return plan
}

func scrollLength(plan Plan, after Snapshot, viewportHeight int) int {
	if len(plan.Departing) == 0 {
		return abs(plan.ScrollDiff)
	}

	afterTop, afterBottom := extent(after.Entries)
	oldTop, oldBottom := extent(plan.Departing)

	var length int
	if plan.Direction == DirectionForward {
		length = oldBottom - afterTop
	} else {
		length = (viewportHeight - oldTop) + (afterBottom - viewportHeight)
	}
	return max(length, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
