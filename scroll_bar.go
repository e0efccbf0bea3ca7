package tview

import "github.com/gdamore/tcell/v2"

// ScrollBarArrows controls which endcaps are rendered.
type ScrollBarArrows uint8

const (
	ScrollBarArrowsNone ScrollBarArrows = iota
	ScrollBarArrowsStart
	ScrollBarArrowsEnd
	ScrollBarArrowsBoth
)

func (a ScrollBarArrows) hasStart() bool {
	return a == ScrollBarArrowsStart || a == ScrollBarArrowsBoth
}

func (a ScrollBarArrows) hasEnd() bool {
	return a == ScrollBarArrowsEnd || a == ScrollBarArrowsBoth
}

// TrackClickBehavior configures what a click on the track outside the thumb
// does.
type TrackClickBehavior uint8

const (
	// TrackClickBehaviorPage scrolls one viewport towards the click.
	TrackClickBehaviorPage TrackClickBehavior = iota
	// TrackClickBehaviorJumpToClick jumps so the thumb centers on the click.
	TrackClickBehaviorJumpToClick
)

// ScrollLengths bundles content and viewport lengths in logical units. The
// list uses item counts for both.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

// subcell is the number of thumb steps per cell, one per eighth block glyph.
const subcell = 8

// GlyphSet defines vertical track, arrow, and fractional thumb glyphs.
type GlyphSet struct {
	Track      string
	ArrowStart string
	ArrowEnd   string

	// Indexed by covered eighths minus one. Lower grows from the bottom of a
	// cell, Upper from the top.
	ThumbLower [subcell]string
	ThumbUpper [subcell]string
}

var lowerEighths = [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// LegacyComputingGlyphSet uses the legacy computing block for full 1/8
// fidelity at the top edge of the thumb. Not every font has these.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      "│",
		ArrowStart: "▲",
		ArrowEnd:   "▼",
		ThumbLower: lowerEighths,
		ThumbUpper: [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// MinimalGlyphSet is the legacy computing set on a blank track.
func MinimalGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.Track = " "
	return g
}

// UnicodeGlyphSet approximates the upper thumb edge with common glyphs.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      "│",
		ArrowStart: "▲",
		ArrowEnd:   "▼",
		ThumbLower: lowerEighths,
		ThumbUpper: [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// GlyphSetByName resolves minimal, legacy and unicode.
func GlyphSetByName(name string) (GlyphSet, bool) {
	switch name {
	case "minimal":
		return MinimalGlyphSet(), true
	case "legacy":
		return LegacyComputingGlyphSet(), true
	case "unicode":
		return UnicodeGlyphSet(), true
	}
	return GlyphSet{}, false
}

// ScrollBar renders a vertical scroll bar. It hides itself while the content
// fits the viewport.
type ScrollBar struct {
	*Box

	contentLen  int
	viewportLen int
	offset      int

	trackStyle tcell.Style
	thumbStyle tcell.Style

	glyphs GlyphSet
	arrows ScrollBarArrows

	trackClickBehavior TrackClickBehavior
}

// NewScrollBar returns a new vertical scroll bar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.GraphicsColor),
		glyphs:     MinimalGlyphSet(),
	}
}

// NewVerticalScrollBar creates a vertical scroll bar from lengths.
func NewVerticalScrollBar(lengths ScrollLengths) *ScrollBar {
	return NewScrollBar().SetLengths(lengths)
}

// SetLengths sets content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	s.contentLen = max(lengths.ContentLen, 0)
	s.viewportLen = max(lengths.ViewportLen, 0)
	return s
}

// SetOffset sets the logical offset.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphs = g
	return s
}

// SetArrows sets which arrow endcaps are rendered.
func (s *ScrollBar) SetArrows(arrows ScrollBarArrows) *ScrollBar {
	s.arrows = arrows
	return s
}

// SetTrackClickBehavior sets what clicks on the track do.
func (s *ScrollBar) SetTrackClickBehavior(behavior TrackClickBehavior) *ScrollBar {
	s.trackClickBehavior = behavior
	return s
}

// TrackClickBehavior returns what clicks on the track do.
func (s *ScrollBar) TrackClickBehavior() TrackClickBehavior {
	return s.trackClickBehavior
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// bounds clamps the lengths for a bar of height rows. A zero viewport length
// means the bar's own height.
func (s *ScrollBar) bounds(height int) (contentLen, viewportLen, maxOffset int) {
	viewportLen = s.viewportLen
	if viewportLen == 0 {
		viewportLen = height
	}
	contentLen = max(s.contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	return contentLen, viewportLen, contentLen - viewportLen
}

// metrics computes the geometry for a bar of height rows in subcell units.
func (s *ScrollBar) metrics(height int) scrollMetrics {
	cells := height
	if s.arrows.hasStart() {
		cells--
	}
	if s.arrows.hasEnd() {
		cells--
	}
	contentLen, viewportLen, _ := s.bounds(height)
	return computeScrollMetrics(max(cells, 0), contentLen, viewportLen, s.offset)
}

func computeScrollMetrics(trackCells int, contentLen int, viewportLen int, offset int) scrollMetrics {
	m := scrollMetrics{trackCells: trackCells, trackLen: trackCells * subcell}
	if m.trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	if maxOffset == 0 {
		m.thumbLen = m.trackLen
		return m
	}

	// The thumb stays proportional and at least one cell long.
	m.thumbLen = min(max(m.trackLen*viewportLen/contentLen, subcell), m.trackLen)
	m.thumbStart = (m.trackLen - m.thumbLen) * min(max(offset, 0), maxOffset) / maxOffset
	return m
}

func (s *ScrollBar) shouldDraw(height int, m scrollMetrics) bool {
	if height <= 0 || m.trackLen == 0 || s.contentLen <= 0 {
		return false
	}
	_, _, maxOffset := s.bounds(height)
	return maxOffset > 0
}

// Visible reports whether the bar draws anything at its current size.
func (s *ScrollBar) Visible() bool {
	_, _, _, height := s.GetInnerRect()
	return s.shouldDraw(height, s.metrics(height))
}

// ClickAt maps a screen row to the scroll offset that centers the thumb on it.
// side is -1 above the thumb, 1 below it and 0 on it. Arrow rows step the
// offset by one. ok is false outside the bar or while it is hidden.
func (s *ScrollBar) ClickAt(y int) (offset, side int, ok bool) {
	_, top, _, height := s.GetInnerRect()
	m := s.metrics(height)
	index := y - top
	if index < 0 || index >= height || !s.shouldDraw(height, m) {
		return 0, 0, false
	}

	_, _, maxOffset := s.bounds(height)
	if s.arrows.hasStart() {
		if index == 0 {
			return max(s.offset-1, 0), -1, true
		}
		index--
	}
	if index >= m.trackCells {
		return min(s.offset+1, maxOffset), 1, true
	}

	pos := index*subcell + subcell/2
	switch {
	case pos < m.thumbStart:
		side = -1
	case pos >= m.thumbStart+m.thumbLen:
		side = 1
	}
	travel := m.trackLen - m.thumbLen
	if travel <= 0 {
		return 0, side, true
	}
	start := min(max(pos-m.thumbLen/2, 0), travel)
	return (start*maxOffset + travel/2) / travel, side, true
}

// cellFill returns the part of cell cellIndex the thumb covers, as a
// cell-local start and length in subcells.
func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	cellStart := cellIndex * subcell
	from := max(m.thumbStart, cellStart)
	to := min(m.thumbStart+m.thumbLen, cellStart+subcell)
	if to <= from {
		return 0, 0
	}
	return from - cellStart, to - from
}

func (s *ScrollBar) glyph(start, fillLen int) (string, tcell.Style) {
	switch {
	case fillLen <= 0:
		return s.glyphs.Track, s.trackStyle
	case start == 0 && fillLen < subcell:
		return s.glyphs.ThumbUpper[fillLen-1], s.thumbStyle
	default:
		return s.glyphs.ThumbLower[fillLen-1], s.thumbStyle
	}
}

// Draw draws the scroll bar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	m := s.metrics(height)
	if !s.shouldDraw(height, m) {
		return
	}

	if s.arrows.hasStart() {
		setCell(screen, x, y, s.glyphs.ArrowStart, s.trackStyle)
		y++
	}
	for cell := range m.trackCells {
		glyph, style := s.glyph(cellFill(m, cell))
		setCell(screen, x, y+cell, glyph, style)
	}
	if s.arrows.hasEnd() {
		setCell(screen, x, y+m.trackCells, s.glyphs.ArrowEnd, s.trackStyle)
	}
}

var _ Primitive = &ScrollBar{}
