package tview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print prints text into the one-row box at (x, y) that is maxWidth cells
// wide, in the given color. The background already on screen is kept. It
// returns the number of bytes printed and the cells they take.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	return printWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color), true)
}

// PrintWithStyle is [Print] with a full style, background included.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	return printWithStyle(screen, text, x, y, maxWidth, alignment, style, false)
}

// printWithStyle clips text to maxWidth cells. Right alignment drops clusters
// from the left, center alignment from both ends. With keepBackground the
// style's background is replaced by whatever the screen already shows.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, keepBackground bool) (printed, printedWidth int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}
	if keepBackground {
		style = style.Background(tcell.ColorDefault)
	}

	textWidth := uniseg.StringWidth(text)
	switch alignment {
	case AlignmentRight:
		var dropped int
		text, dropped = dropWidth(text, textWidth-maxWidth)
		textWidth -= dropped
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		var dropped int
		text, dropped = dropWidth(text, (textWidth-maxWidth)/2)
		textWidth -= dropped
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}

	right := x + maxWidth
	for end, g := range graphemes(text) {
		if x >= right || x >= screenWidth {
			break
		}
		if g.width > 0 {
			cellStyle := style
			if keepBackground {
				cellStyle = cellStyle.Background(backgroundAt(screen, x, y))
			}
			// Fill the trailing cells of wide clusters first so the cluster
			// itself is written last.
			for offset := g.width - 1; offset > 0; offset-- {
				screen.SetContent(x+offset, y, ' ', nil, cellStyle)
			}
			setCell(screen, x, y, g.text, cellStyle)
		}
		x += g.width
		printed = end
		printedWidth += g.width
	}
	return printed, printedWidth
}

// setCell writes one grapheme cluster into the cell at (x, y).
func setCell(screen tcell.Screen, x, y int, cluster string, style tcell.Style) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		screen.SetContent(x, y, ' ', nil, style)
		return
	}
	screen.SetContent(x, y, runes[0], runes[1:], style)
}

func backgroundAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, existing, _ := screen.GetContent(x, y)
	_, background, _ := existing.Decompose()
	return background
}

func foregroundAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, existing, _ := screen.GetContent(x, y)
	foreground, _, _ := existing.Decompose()
	return foreground
}
