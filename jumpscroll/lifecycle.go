package jumpscroll

// Listener is told when a jump animation starts and ends. Both hooks run
// exactly once per animated jump and always as a pair, including when the
// animation is cancelled.
type Listener interface {
	OnAnimationStart()
	OnAnimationEnd()
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Start func()
	End   func()
}

func (f ListenerFuncs) OnAnimationStart() {
	if f.Start != nil {
		f.Start()
	}
}

func (f ListenerFuncs) OnAnimationEnd() {
	if f.End != nil {
		f.End()
	}
}

// lifecycle delivers start and end hooks. The adapter listener switches
// notification handling, so it sees the start first and the end last.
type lifecycle struct {
	adapter   Listener
	listeners []Listener
	started   bool
}

func (l *lifecycle) start() {
	if l.started {
		return
	}
	l.started = true
	if l.adapter != nil {
		l.adapter.OnAnimationStart()
	}
	for _, listener := range l.listeners {
		listener.OnAnimationStart()
	}
}

func (l *lifecycle) end() {
	if !l.started {
		return
	}
	l.started = false
	for _, listener := range l.listeners {
		listener.OnAnimationEnd()
	}
	if l.adapter != nil {
		l.adapter.OnAnimationEnd()
	}
}
