package tview

import (
	"iter"
	"strings"

	"github.com/rivo/uniseg"
)

// grapheme is one user-perceived character with its cell width and the line
// break rule that applies after it.
type grapheme struct {
	text      string
	width     int
	lineBreak int // uniseg.LineDontBreak, LineCanBreak or LineMustBreak
}

// graphemes iterates over the clusters of text. Each cluster comes with the
// byte offset just past it.
func graphemes(text string) iter.Seq2[int, grapheme] {
	return func(yield func(int, grapheme) bool) {
		state, end := -1, 0
		for rest := text; rest != ""; {
			var (
				cluster    string
				boundaries int
			)
			cluster, rest, boundaries, state = uniseg.StepString(rest, state)
			end += len(cluster)
			g := grapheme{
				text:      cluster,
				width:     boundaries >> uniseg.ShiftWidth,
				lineBreak: boundaries & uniseg.MaskLine,
			}
			// The end of text is only a hard break after a newline.
			if rest == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
				g.lineBreak = uniseg.LineDontBreak
			}
			if !yield(end, g) {
				return
			}
		}
	}
}

// StringWidth returns the number of cells text takes on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// dropWidth removes leading clusters until at least n cells are gone and
// returns the rest with the width removed.
func dropWidth(text string, n int) (string, int) {
	cut, dropped := 0, 0
	for end, g := range graphemes(text) {
		if dropped >= n {
			break
		}
		dropped += g.width
		cut = end
	}
	return text[cut:], dropped
}

// TruncateWidth shortens text to at most width cells. When text is cut, tail
// is appended if it fits.
func TruncateWidth(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(text) <= width {
		return text
	}
	tailWidth := StringWidth(tail)
	if tailWidth > width {
		tail, tailWidth = "", 0
	}

	cut, used := 0, 0
	for end, g := range graphemes(text) {
		if used+g.width > width-tailWidth {
			break
		}
		used += g.width
		cut = end
	}
	return text[:cut] + tail
}

// WordWrap splits text into lines of at most width cells. Lines break at
// the last break opportunity that fits, or mid-word when there is none.
// Newlines always break and are dropped.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines     []string
		start     int // offset of the current line
		prev      int // offset past the previous cluster
		lineWidth int

		// The last break opportunity on the current line. optionWidth is the
		// line width up to it, zero if there is none.
		option, optionWidth int
	)
	for end, g := range graphemes(text) {
		if lineWidth+g.width > width {
			if optionWidth == 0 {
				lines = append(lines, text[start:prev])
				start, lineWidth = prev, 0
			} else {
				lines = append(lines, text[start:option])
				start = option
				lineWidth -= optionWidth
			}
			optionWidth = 0
		}
		lineWidth += g.width
		prev = end

		switch g.lineBreak {
		case uniseg.LineCanBreak:
			option, optionWidth = end, lineWidth
		case uniseg.LineMustBreak:
			lines = append(lines, strings.TrimRight(text[start:end], "\n\r"))
			start, lineWidth, optionWidth = end, 0, 0
		}
	}
	return append(lines, text[start:])
}
