package jumpscroll

// State is the phase of the jump transition owned by a Scroller.
type State int

const (
	// StateIdle means no transition is in flight and jumps are accepted.
	StateIdle State = iota
	// StateCapturing means the old viewport was captured and evicted and the
	// scroller waits for the first layout pass after the reposition.
	StateCapturing
	// StateAnimating means the interpolation is running.
	StateAnimating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Direction is the caller supplied direction of an animated jump. It is never
// derived from layout data.
type Direction int

const (
	// DirectionUnset disables animated jumps; every jump is instantaneous.
	DirectionUnset Direction = iota
	// DirectionForward moves content towards higher indices: departing items
	// slide up and incoming items arrive from below.
	DirectionForward
	// DirectionBackward moves content towards lower indices: departing items
	// slide down and incoming items arrive from above.
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionUnset:
		return "unset"
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "unknown"
	}
}

// ParseDirection parses the names returned by [Direction.String].
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "", "unset":
		return DirectionUnset, true
	case "forward", "down":
		return DirectionForward, true
	case "backward", "up":
		return DirectionBackward, true
	}
	return DirectionUnset, false
}
