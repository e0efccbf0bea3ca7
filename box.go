package tview

import "github.com/gdamore/tcell/v2"

// caption is a title or footer printed into a border row.
type caption struct {
	text      string
	style     tcell.Style
	alignment Alignment
}

// Box implements the Primitive interface with an empty background and optional
// elements such as a border, a title and a footer. Box itself does not hold
// any content but serves as the superclass of all other primitives.
type Box struct {
	x, y, width, height int

	// The inner rect reserved for the box's content. If innerX is negative,
	// the rect is undefined and must be calculated.
	innerX, innerY, innerWidth, innerHeight int

	backgroundColor tcell.Color

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title  caption
	footer caption

	// Container primitives (e.g. Layers) ignore this and delegate focus to
	// their children.
	hasFocus bool
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	titleStyle := tcell.StyleDefault.Foreground(Styles.TitleColor)
	return &Box{
		width:           15,
		height:          10,
		innerX:          -1,
		backgroundColor: Styles.PrimitiveBackgroundColor,
		borderStyle:     tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:       BorderSetPlain(),
		title:           caption{style: titleStyle, alignment: AlignmentCenter},
		footer:          caption{style: titleStyle, alignment: AlignmentCenter},
	}
}

// GetRect returns the current position of the rectangle, x, y, width, and
// height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the position of the inner rectangle (x, y, width,
// height), without the border. A title or footer reserves its row even without
// a border. Width and height never go below 0.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}

	x, y, width, height := b.GetRect()
	if b.title.text != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer.text != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}
	return x, y, max(width, 0), max(height, 0)
}

// SetRect sets a new position of the primitive. The root primitive and
// resizing layers are positioned by their container on every draw, so calls
// there have no lasting effect.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x, b.y, b.width, b.height = x, y, width, height
		b.innerX = -1
	}
}

// InputHandler ignores all key events.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// PasteHandler ignores pasted text.
func (b *Box) PasteHandler(text string) Command {
	return nil
}

// MouseHandler requests focus when the box is clicked.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect returns true if the given coordinate is within the bounds of the box's
// rectangle.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.innerX = -1
	}
	return b
}

// GetBorders returns the borders.
func (b *Box) GetBorders() Borders {
	return b.borders
}

// SetBorderSet sets the runes the border is drawn with.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	b.borderSet = borderSet
	return b
}

// SetBorderStyle sets the box's border style.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	b.borderStyle = style
	return b
}

// GetTitle returns the box's current title.
func (b *Box) GetTitle() string {
	return b.title.text
}

// SetTitle sets the box's title.
func (b *Box) SetTitle(title string) *Box {
	if b.title.text != title {
		b.title.text = title
		b.innerX = -1
	}
	return b
}

// SetTitleStyle sets the style of the title.
func (b *Box) SetTitleStyle(style tcell.Style) *Box {
	b.title.style = style
	return b
}

// SetTitleAlignment sets the alignment of the title.
func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	b.title.alignment = alignment
	return b
}

// SetFooter sets the text printed into the bottom border row.
func (b *Box) SetFooter(footer string) *Box {
	if b.footer.text != footer {
		b.footer.text = footer
		b.innerX = -1
	}
	return b
}

// SetFooterStyle sets the style of the footer.
func (b *Box) SetFooterStyle(style tcell.Style) *Box {
	b.footer.style = style
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws this box under the assumption that primitive p is a
// subclass of this box.
//
// Only call this function from your own custom primitives.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	background := tcell.StyleDefault.Background(b.backgroundColor)
	for y := b.y; y < b.y+b.height; y++ {
		for x := b.x; x < b.x+b.width; x++ {
			screen.SetContent(x, y, ' ', nil, background)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorder(screen)
	}
	b.drawCaption(screen, b.title, b.y)
	b.drawCaption(screen, b.footer, b.y+b.height-1)

	b.innerX = -1
	b.innerX, b.innerY, b.innerWidth, b.innerHeight = b.GetInnerRect()
}

func (b *Box) drawBorder(screen tcell.Screen) {
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1
	set := b.borderSet

	edges := []struct {
		side           Borders
		x0, y0, x1, y1 int
		cluster        string
	}{
		{BordersTop, left + 1, top, right - 1, top, set.Top},
		{BordersBottom, left + 1, bottom, right - 1, bottom, set.Bottom},
		{BordersLeft, left, top + 1, left, bottom - 1, set.Left},
		{BordersRight, right, top + 1, right, bottom - 1, set.Right},
	}
	for _, e := range edges {
		if !b.borders.Has(e.side) {
			continue
		}
		for y := e.y0; y <= e.y1; y++ {
			for x := e.x0; x <= e.x1; x++ {
				setCell(screen, x, y, e.cluster, b.borderStyle)
			}
		}
	}

	corners := []struct {
		sides   Borders
		x, y    int
		cluster string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, c := range corners {
		if b.borders.Has(c.sides) {
			setCell(screen, c.x, c.y, c.cluster, b.borderStyle)
		}
	}
}

// drawCaption prints c into row y between the corners and marks a cut with
// an ellipsis.
func (b *Box) drawCaption(screen tcell.Screen, c caption, y int) {
	if c.text == "" || b.width < 4 {
		return
	}
	printed, _ := printWithStyle(screen, c.text, b.x+1, y, b.width-2, c.alignment, c.style, true)
	if printed <= 0 || printed >= len(c.text) {
		return
	}
	xEllipsis := b.x + b.width - 2
	if c.alignment == AlignmentRight {
		xEllipsis = b.x + 1
	}
	Print(screen, SemigraphicsHorizontalEllipsis, xEllipsis, y, 1, AlignmentLeft, foregroundAt(screen, xEllipsis, y))
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	b.hasFocus = true
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	b.hasFocus = false
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}
