package tview

import "github.com/gdamore/tcell/v2"

// TextItem is a ScrollListItem showing word-wrapped text.
type TextItem struct {
	*Box

	text  string
	style tcell.Style
}

// NewTextItem returns an item showing text in the primary text color.
func NewTextItem(text string) *TextItem {
	return &TextItem{
		Box:   NewBox(),
		text:  text,
		style: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
	}
}

// SetText replaces the text.
func (t *TextItem) SetText(text string) *TextItem {
	t.text = text
	return t
}

// Text returns the text.
func (t *TextItem) Text() string {
	return t.text
}

// SetTextStyle sets the style used for the text.
func (t *TextItem) SetTextStyle(style tcell.Style) *TextItem {
	t.style = style
	return t
}

// TextStyle returns the style used for the text.
func (t *TextItem) TextStyle() tcell.Style {
	return t.style
}

// Height returns the number of wrapped lines at the given width, counting the
// box border and padding.
func (t *TextItem) Height(width int) int {
	_, _, outerWidth, outerHeight := t.GetRect()
	_, _, innerWidth, innerHeight := t.GetInnerRect()
	chrome := outerHeight - innerHeight
	textWidth := width - (outerWidth - innerWidth)
	if textWidth <= 0 {
		return max(chrome, 1)
	}
	return len(WordWrap(t.text, textWidth)) + chrome
}

// Draw draws the wrapped text.
func (t *TextItem) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	for row, line := range WordWrap(t.text, width) {
		if row >= height {
			break
		}
		printWithStyle(screen, line, x, y+row, width, AlignmentLeft, t.style, false)
	}
}

var _ ScrollListItem = &TextItem{}
