package tview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScrollMetrics(t *testing.T) {
	cases := []struct {
		name                           string
		trackCells, content, view, off int
		want                           scrollMetrics
	}{
		{"no track", 0, 100, 10, 0, scrollMetrics{}},
		{"fits", 5, 3, 5, 0, scrollMetrics{trackCells: 5, trackLen: 40, thumbLen: 40}},
		{"top", 5, 50, 5, 0, scrollMetrics{trackCells: 5, trackLen: 40, thumbLen: 8}},
		{"bottom", 5, 50, 5, 45, scrollMetrics{trackCells: 5, trackLen: 40, thumbLen: 8, thumbStart: 32}},
		{"clamped offset", 5, 50, 5, 99, scrollMetrics{trackCells: 5, trackLen: 40, thumbLen: 8, thumbStart: 32}},
		{"half", 4, 20, 10, 5, scrollMetrics{trackCells: 4, trackLen: 32, thumbLen: 16, thumbStart: 8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, computeScrollMetrics(tc.trackCells, tc.content, tc.view, tc.off))
		})
	}
}

func TestCellFill(t *testing.T) {
	m := scrollMetrics{trackCells: 5, trackLen: 40, thumbLen: 8, thumbStart: 21}

	start, fill := cellFill(m, 2)
	assert.Equal(t, 5, start)
	assert.Equal(t, 3, fill)

	start, fill = cellFill(m, 3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, fill)

	_, fill = cellFill(m, 0)
	assert.Zero(t, fill)
}

func TestScrollBarDraw(t *testing.T) {
	screen := newTestScreen(t, 1, 4)
	bar := NewVerticalScrollBar(ScrollLengths{ContentLen: 8, ViewportLen: 4}).SetOffset(4)
	bar.SetRect(0, 0, 1, 4)
	bar.Draw(screen)

	assert.Equal(t, []string{"", "", "█", "█"}, rows(screen, 1, 4))

	// Nothing to scroll.
	screen.Clear()
	bar.SetLengths(ScrollLengths{ContentLen: 2, ViewportLen: 4}).Draw(screen)
	assert.Equal(t, []string{"", "", "", ""}, rows(screen, 1, 4))
}

func TestScrollBarClickAt(t *testing.T) {
	bar := NewVerticalScrollBar(ScrollLengths{ContentLen: 8, ViewportLen: 4}).SetOffset(4)
	bar.SetRect(0, 0, 1, 4)
	require.True(t, bar.Visible())

	cases := []struct {
		y, offset, side int
	}{
		{0, 0, -1},
		{1, 1, -1},
		{3, 4, 0},
	}
	for _, tc := range cases {
		offset, side, ok := bar.ClickAt(tc.y)
		require.True(t, ok, tc.y)
		assert.Equal(t, tc.offset, offset, tc.y)
		assert.Equal(t, tc.side, side, tc.y)
	}

	_, _, ok := bar.ClickAt(4)
	assert.False(t, ok)

	bar.SetArrows(ScrollBarArrowsBoth)
	offset, side, ok := bar.ClickAt(0)
	require.True(t, ok)
	assert.Equal(t, 3, offset)
	assert.Equal(t, -1, side)

	bar.SetLengths(ScrollLengths{ContentLen: 2, ViewportLen: 4})
	assert.False(t, bar.Visible())
	_, _, ok = bar.ClickAt(1)
	assert.False(t, ok)
}

func TestScrollBarGlyphsAndArrows(t *testing.T) {
	screen := newTestScreen(t, 1, 6)
	glyphs, ok := GlyphSetByName("unicode")
	require.True(t, ok)
	_, ok = GlyphSetByName("ascii")
	assert.False(t, ok)

	bar := NewVerticalScrollBar(ScrollLengths{ContentLen: 8, ViewportLen: 4}).
		SetGlyphSet(glyphs).
		SetArrows(ScrollBarArrowsBoth)
	bar.SetRect(0, 0, 1, 6)
	bar.Draw(screen)

	assert.Equal(t, []string{"▲", "█", "█", "│", "│", "▼"}, rows(screen, 1, 6))
}
