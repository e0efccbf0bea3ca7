package jumpscroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	timing := DefaultTiming()

	cases := []struct {
		length, viewport int
		want             time.Duration
	}{
		{length: 0, viewport: 20, want: 200 * time.Millisecond},
		{length: 20, viewport: 20, want: 400 * time.Millisecond},
		{length: 10, viewport: 20, want: 300 * time.Millisecond},
		{length: 1, viewport: 3, want: 267 * time.Millisecond},
		{length: 1000, viewport: 20, want: DefaultMaxDuration},
		{length: 5, viewport: 0, want: DefaultMaxDuration},
		{length: 5, viewport: -3, want: DefaultMaxDuration},
		{length: -5, viewport: 20, want: 200 * time.Millisecond},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Duration(tc.length, tc.viewport, timing),
			"length %d viewport %d", tc.length, tc.viewport)
	}
}

func TestDurationMinimumClamp(t *testing.T) {
	timing := Timing{BaseDuration: 10 * time.Millisecond}
	assert.Equal(t, DefaultMinDuration, Duration(0, 20, timing))
}

func TestDurationMonotone(t *testing.T) {
	timing := DefaultTiming()
	prev := time.Duration(0)
	for length := 0; length <= 200; length++ {
		d := Duration(length, 24, timing)
		require.GreaterOrEqual(t, d, prev, "length %d", length)
		require.GreaterOrEqual(t, d, timing.MinDuration)
		require.LessOrEqual(t, d, timing.MaxDuration)
		prev = d
	}
}

func TestTimingNormalizedKeepsOrder(t *testing.T) {
	got := Timing{MinDuration: time.Second, MaxDuration: time.Millisecond}.normalized()
	assert.Equal(t, time.Second, got.MinDuration)
	assert.Equal(t, time.Second, got.MaxDuration)
}

func TestInterpolation(t *testing.T) {
	start := time.Unix(100, 0)
	ip := interpolation{start: start, duration: 100 * time.Millisecond, easing: EaseLinear}

	assert.Zero(t, ip.valueAt(start.Add(-time.Second)))
	assert.Zero(t, ip.valueAt(start))
	assert.InDelta(t, 0.25, ip.valueAt(start.Add(25*time.Millisecond)), 1e-9)
	assert.Equal(t, 1.0, ip.valueAt(start.Add(100*time.Millisecond)))
	assert.Equal(t, 1.0, ip.valueAt(start.Add(time.Hour)))

	assert.Equal(t, 1.0, interpolation{start: start}.valueAt(start))
}

func TestApplyFrame(t *testing.T) {
	departing := &fakeHandle{index: 0, top: 0, bottom: 10}
	incoming := &fakeHandle{index: 5, top: 0, bottom: 10}

	p := Plan{
		Departing:    []Entry{{Handle: departing, Bounds: departing.Bounds()}},
		Incoming:     []Handle{incoming},
		ScrollLength: 10,
		Direction:    DirectionForward,
	}

	applyFrame(&p, 0, 10)
	assert.Zero(t, departing.translation)
	assert.Equal(t, 10.0, incoming.translation)

	applyFrame(&p, 0.5, 10)
	assert.Equal(t, -5.0, departing.translation)
	assert.Equal(t, 5.0, incoming.translation)

	applyFrame(&p, 1, 10)
	assert.Equal(t, -10.0, departing.translation)
	assert.Zero(t, incoming.translation)

	p.Direction = DirectionBackward
	departing.translation = 0
	applyFrame(&p, 0.3, 10)
	assert.InDelta(t, 3, departing.translation, 1e-9)
	assert.InDelta(t, -7, incoming.translation, 1e-9)
}

func TestApplyFrameSkipsOffscreenDeparting(t *testing.T) {
	gone := &fakeHandle{index: 0, top: 0, bottom: 4, translation: -30}
	p := Plan{
		Departing:    []Entry{{Handle: gone, Bounds: gone.Bounds()}},
		ScrollLength: 40,
		Direction:    DirectionForward,
	}

	applyFrame(&p, 0.9, 20)
	assert.Equal(t, -30.0, gone.translation)
}

func TestEasingEndpointsAndMonotone(t *testing.T) {
	curves := map[string]EasingFunc{
		"linear":         EaseLinear,
		"ease-out-cubic": EaseOutCubic,
		"ease-out-quint": EaseOutQuint,
		"ease-in-out":    CubicBezier(0.42, 0, 0.58, 1),
	}
	for name, ease := range curves {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, ease(0), 1e-6)
			assert.InDelta(t, 1, ease(1), 1e-6)
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := ease(float64(i) / 100)
				require.GreaterOrEqual(t, v, prev-1e-9, "t=%d", i)
				prev = v
			}
		})
	}
}

func TestEaseOutQuintFrontLoaded(t *testing.T) {
	assert.Greater(t, EaseOutQuint(0.2), 0.5)
	assert.Greater(t, EaseOutQuint(0.5), 0.9)
	assert.Less(t, EaseOutQuint(0.5), 1.0)
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"", "linear", "ease-out-cubic", "ease-out-quint"} {
		ease, ok := EasingByName(name)
		require.True(t, ok, name)
		assert.NotNil(t, ease)
	}
	_, ok := EasingByName("bounce")
	assert.False(t, ok)
}
