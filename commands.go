package tview

import "slices"

// Command is a side effect a handler asks the Application to carry out once
// the handler returns. Handlers return nil when there is nothing to do.
type Command any

// BatchCommand runs its commands in order.
type BatchCommand []Command

// AppendCommand combines two commands into one, flattening batches. Either
// may be nil.
func AppendCommand(current Command, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	return append(asBatch(current), asBatch(next)...)
}

func asBatch(cmd Command) BatchCommand {
	if batch, ok := cmd.(BatchCommand); ok {
		return slices.Clone(batch)
	}
	return BatchCommand{cmd}
}

type (
	// SetFocusCommand moves keyboard focus to Target.
	SetFocusCommand struct{ Target Primitive }

	// RedrawCommand redraws once the event is handled.
	RedrawCommand struct{}

	// QuitCommand stops the application.
	QuitCommand struct{}

	// SyncCommand clears and resyncs the terminal.
	SyncCommand struct{}

	// AnimateCommand registers Target for frame ticks, like
	// Application.RegisterAnimated, and redraws. Primitives nested in
	// containers that do not report IsAnimating use it to start their first
	// animation.
	AnimateCommand struct{ Target Animated }

	// ConsumeEventCommand stops the event from reaching anything else.
	ConsumeEventCommand struct{}
)
