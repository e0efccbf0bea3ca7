package tview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxInnerRect(t *testing.T) {
	b := NewBox()
	b.SetRect(2, 3, 10, 6)

	x, y, w, h := b.GetInnerRect()
	assert.Equal(t, []int{2, 3, 10, 6}, []int{x, y, w, h})

	b.SetTitle("t")
	x, y, w, h = b.GetInnerRect()
	assert.Equal(t, []int{2, 4, 10, 5}, []int{x, y, w, h})

	b.SetBorders(BordersAll).SetFooter("f")
	x, y, w, h = b.GetInnerRect()
	assert.Equal(t, []int{3, 4, 8, 4}, []int{x, y, w, h})

	b.SetRect(0, 0, 1, 1)
	_, _, w, h = b.GetInnerRect()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestBoxDrawsBorderAndCaptions(t *testing.T) {
	screen := newTestScreen(t, 12, 4)
	b := NewBox().SetBorders(BordersAll).SetBorderSet(BorderSetRound()).
		SetTitle("top").SetTitleAlignment(AlignmentLeft).SetFooter("bottom")
	b.SetRect(0, 0, 12, 4)
	b.Draw(screen)

	got := rows(screen, 12, 4)
	assert.Equal(t, "╭top───────╮", got[0])
	assert.Equal(t, "│          │", got[1])
	assert.Equal(t, "╰──bottom──╯", got[3])
}

func TestBoxTruncatesLongTitle(t *testing.T) {
	screen := newTestScreen(t, 8, 3)
	b := NewBox().SetBorders(BordersAll).SetTitle("a very long title")
	b.SetRect(0, 0, 8, 3)
	b.Draw(screen)

	got := []rune(rows(screen, 8, 3)[0])
	assert.Equal(t, '…', got[6])
	assert.Equal(t, '┐', got[7])
}
