package jumpscroll

import (
	"math"
	"time"
)

// Default animation timing.
const (
	DefaultBaseDuration = 200 * time.Millisecond
	DefaultMinDuration  = 80 * time.Millisecond
	DefaultMaxDuration  = 1300 * time.Millisecond
)

// Timing configures the jump interpolation.
type Timing struct {
	// BaseDuration is the time spent per viewport height traversed, plus one
	// extra BaseDuration for settling.
	BaseDuration time.Duration
	MinDuration  time.Duration
	MaxDuration  time.Duration
	Easing       EasingFunc
}

// DefaultTiming returns the timing used when none is configured.
func DefaultTiming() Timing {
	return Timing{
		BaseDuration: DefaultBaseDuration,
		MinDuration:  DefaultMinDuration,
		MaxDuration:  DefaultMaxDuration,
		Easing:       EaseOutQuint,
	}
}

func (t Timing) normalized() Timing {
	d := DefaultTiming()
	if t.BaseDuration > 0 {
		d.BaseDuration = t.BaseDuration
	}
	if t.MinDuration > 0 {
		d.MinDuration = t.MinDuration
	}
	if t.MaxDuration > 0 {
		d.MaxDuration = t.MaxDuration
	}
	if d.MaxDuration < d.MinDuration {
		d.MaxDuration = d.MinDuration
	}
	if t.Easing != nil {
		d.Easing = t.Easing
	}
	return d
}

// Duration returns the animation length for a jump of scrollLength rows in a
// viewport of viewportHeight rows: one base duration per viewport height plus
// one, rounded to the millisecond and clamped to [MinDuration, MaxDuration].
func Duration(scrollLength, viewportHeight int, timing Timing) time.Duration {
	timing = timing.normalized()
	if viewportHeight <= 0 {
		return timing.MaxDuration
	}
	scale := float64(max(scrollLength, 0))/float64(viewportHeight) + 1
	d := time.Duration(math.Round(scale * float64(timing.BaseDuration))).Round(time.Millisecond)
	return min(max(d, timing.MinDuration), timing.MaxDuration)
}

// interpolation is a single time based progression from 0 to 1.
type interpolation struct {
	start    time.Time
	duration time.Duration
	easing   EasingFunc
}

func (ip interpolation) progress(now time.Time) float64 {
	if ip.duration <= 0 {
		return 1
	}
	elapsed := now.Sub(ip.start)
	if elapsed <= 0 {
		return 0
	}
	return clamp01(float64(elapsed) / float64(ip.duration))
}

func (ip interpolation) valueAt(now time.Time) float64 {
	p := ip.progress(now)
	if p >= 1 {
		return 1
	}
	easing := ip.easing
	if easing == nil {
		easing = EaseOutQuint
	}
	return clamp01(easing(p))
}

// applyFrame offsets departing handles towards their exit and incoming handles
// towards their resting place. Departing handles that no longer touch the
// viewport are left where they are.
func applyFrame(plan *Plan, value float64, viewportHeight int) {
	length := float64(plan.ScrollLength)
	forward := plan.Direction == DirectionForward

	for _, e := range plan.Departing {
		h := e.Handle
		if !h.Bounds().Intersects(viewportHeight, h.Translation()) {
			continue
		}
		if forward {
			h.SetTranslation(-length * value)
		} else {
			h.SetTranslation(length * value)
		}
	}

	for _, h := range plan.Incoming {
		if forward {
			h.SetTranslation(length * (1 - value))
		} else {
			h.SetTranslation(-length * (1 - value))
		}
	}
}
