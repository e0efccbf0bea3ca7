package jumpscroll

import "math"

// EasingFunc maps linear progress in [0,1] to eased progress in [0,1].
type EasingFunc func(t float64) float64

var (
	// EaseLinear moves at constant speed.
	EaseLinear EasingFunc = func(t float64) float64 { return clamp01(t) }

	// EaseOutCubic starts fast and decelerates.
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := clamp01(t) - 1
		return t1*t1*t1 + 1
	}

	// EaseOutQuint is the default jump curve: a fast start and a long settle.
	EaseOutQuint = CubicBezier(0.23, 1, 0.32, 1)
)

// EasingByName resolves the curve names accepted in configuration files.
func EasingByName(name string) (EasingFunc, bool) {
	switch name {
	case "linear":
		return EaseLinear, true
	case "ease-out-cubic":
		return EaseOutCubic, true
	case "", "ease-out-quint":
		return EaseOutQuint, true
	}
	return nil, false
}

// CubicBezier returns a CSS style cubic bezier timing curve through (0,0),
// (x1,y1), (x2,y2) and (1,1). x1 and x2 must lie in [0,1].
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-7
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}

		// Newton's method converges in a few steps for well-behaved curves.
		t := x
		for range 8 {
			dx := sampleX(t) - x
			if math.Abs(dx) < epsilon {
				return sampleY(t)
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		// Fall back to bisection, x(t) is monotone on [0,1].
		lo, hi := 0.0, 1.0
		t = x
		for range 64 {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				break
			}
			if v < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return sampleY(t)
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
