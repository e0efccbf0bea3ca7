package tview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xqrs/tview/jumpscroll"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		primary, combining, _, _ := screen.GetContent(x, y)
		if primary == 0 {
			primary = ' '
		}
		b.WriteRune(primary)
		for _, r := range combining {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func rows(screen tcell.Screen, width, height int) []string {
	out := make([]string, height)
	for y := range out {
		out[y] = rowText(screen, y, width)
	}
	return out
}

type listFixture struct {
	items  []string
	list   *ScrollList
	screen tcell.SimulationScreen
	now    time.Time
}

func newListFixture(t *testing.T, count, height int) *listFixture {
	t.Helper()
	f := &listFixture{screen: newTestScreen(t, 20, height), now: time.Unix(1000, 0)}
	for i := range count {
		f.items = append(f.items, fmt.Sprintf("item %d", i))
	}
	f.list = NewScrollList().SetBuilder(func(index, cursor int) ScrollListItem {
		if index < 0 || index >= len(f.items) {
			return nil
		}
		return NewTextItem(f.items[index])
	})
	f.list.SetJumpOptions(
		jumpscroll.WithDirection(jumpscroll.DirectionForward),
		jumpscroll.WithTiming(jumpscroll.Timing{Easing: jumpscroll.EaseLinear}),
		jumpscroll.WithClock(func() time.Time { return f.now }),
	)
	f.list.SetRect(0, 0, 20, height)
	return f
}

func (f *listFixture) draw() []string {
	f.list.Draw(f.screen)
	_, _, width, height := f.list.GetRect()
	return rows(f.screen, width, height)
}

func TestScrollListDrawsFromTop(t *testing.T) {
	f := newListFixture(t, 20, 5)

	assert.Equal(t, []string{"item 0", "item 1", "item 2", "item 3", "item 4"}, f.draw())
	assert.Len(t, f.list.VisibleHandles(), 5)
	assert.Equal(t, 5, f.list.ViewportHeight())
	assert.False(t, f.list.IsAnimating())
}

func TestScrollListInstantJump(t *testing.T) {
	f := newListFixture(t, 20, 5)
	f.draw()

	require.True(t, f.list.JumpTo(10, 0, true, false))
	assert.Equal(t, 10, f.list.Cursor())
	assert.Equal(t, []string{"item 6", "item 7", "item 8", "item 9", "item 10"}, f.draw())

	require.True(t, f.list.JumpTo(3, 1, false, false))
	assert.Equal(t, []string{"item 2", "item 3", "item 4", "item 5", "item 6"}, f.draw())
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
}

func TestScrollListAnimatedJump(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.draw()

	var changed []int
	f.list.SetChangedFunc(func(index int) { changed = append(changed, index) })

	require.True(t, f.list.JumpTo(30, 0, false, true))
	assert.Equal(t, jumpscroll.StateCapturing, f.list.Scroller().State())
	assert.True(t, f.list.IsAnimating())
	assert.Equal(t, []int{30}, changed)

	// The first layout pass plans the transition; nothing has moved yet.
	assert.Equal(t, []string{"item 0", "item 1", "item 2", "item 3", "item 4"}, f.draw())
	plan, ok := f.list.Scroller().Plan()
	require.True(t, ok)
	assert.Len(t, plan.Departing, 5)
	assert.Len(t, plan.Incoming, 5)
	assert.Equal(t, 5, plan.ScrollLength)

	// Re-entrant requests and user input are refused mid-flight.
	assert.False(t, f.list.JumpTo(0, 0, false, true))
	assert.Nil(t, f.list.InputHandler(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, 30, f.list.Cursor())

	// 400ms in total; a quarter of the way the departing rows moved up one
	// row and the first incoming row entered at the bottom.
	f.now = f.now.Add(100 * time.Millisecond)
	assert.Equal(t, []string{"item 1", "item 2", "item 3", "item 4", "item 30"}, f.draw())

	f.now = f.now.Add(time.Second)
	f.draw()
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
	assert.NoError(t, f.list.CheckInvariants())
	assert.Equal(t, []string{"item 30", "item 31", "item 32", "item 33", "item 34"}, f.draw())
	assert.False(t, f.list.IsAnimating())
}

func TestScrollListMatchedItemsStayInPlace(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.list.SetStableIDs(true)
	f.draw()

	require.True(t, f.list.JumpTo(2, 0, false, true))
	f.draw()
	plan, ok := f.list.Scroller().Plan()
	require.True(t, ok)
	assert.Len(t, plan.Matched, 3)
	assert.Len(t, plan.Departing, 2)
	assert.Len(t, plan.Incoming, 2)
	assert.Equal(t, -2, plan.ScrollDiff)

	f.now = f.now.Add(time.Second)
	f.draw()
	assert.Equal(t, []string{"item 2", "item 3", "item 4", "item 5", "item 6"}, f.draw())
}

func TestScrollListCancelJump(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.draw()

	require.True(t, f.list.JumpTo(40, 0, false, true))
	f.draw()
	f.now = f.now.Add(100 * time.Millisecond)
	f.draw()

	f.list.CancelJump()
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
	assert.NoError(t, f.list.CheckInvariants())
	assert.Equal(t, []string{"item 40", "item 41", "item 42", "item 43", "item 44"}, f.draw())

	// Scrolling works again.
	assert.NotNil(t, f.list.InputHandler(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, 41, f.list.Cursor())
}

func TestScrollListCancelWhileCapturing(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.draw()

	require.True(t, f.list.JumpTo(20, 0, false, true))
	f.list.CancelJump()
	assert.Equal(t, []string{"item 20", "item 21", "item 22", "item 23", "item 24"}, f.draw())
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
}

func TestScrollListJumpWithEmptyViewportIsInstant(t *testing.T) {
	f := newListFixture(t, 50, 5)

	// Nothing laid out yet.
	require.True(t, f.list.JumpTo(20, 0, false, true))
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
	assert.Equal(t, "item 20", f.draw()[0])
}

func TestScrollListBuffersNotificationsWhileAnimating(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.draw()

	require.True(t, f.list.JumpTo(30, 0, false, true))
	f.draw()

	f.items = append([]string{"new"}, f.items...)
	f.list.NotifyRangeInserted(0, 1)
	assert.Equal(t, 30, f.list.Cursor())

	f.now = f.now.Add(time.Second)
	f.draw()
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
	// The flush is a reset: positions are kept, items are rebuilt.
	assert.Equal(t, 30, f.list.Cursor())
	assert.Equal(t, "item 29", f.draw()[0])
}

func TestScrollListInsertAboveTopKeepsContent(t *testing.T) {
	f := newListFixture(t, 20, 5)
	f.list.JumpTo(10, 0, false, false)
	f.draw()

	f.items = append([]string{"a", "b"}, f.items...)
	f.list.NotifyRangeInserted(0, 2)
	assert.Equal(t, 12, f.list.Cursor())
	assert.Equal(t, "item 10", f.draw()[0])

	f.items = f.items[4:]
	f.list.NotifyRangeRemoved(0, 4)
	assert.Equal(t, 8, f.list.Cursor())
	assert.Equal(t, "item 10", f.draw()[0])
}

func TestScrollListItemChangeRebuildsItem(t *testing.T) {
	f := newListFixture(t, 20, 5)
	f.draw()

	f.items[1] = "changed"
	assert.Equal(t, "item 1", f.draw()[1])
	f.list.NotifyItemChanged(1)
	assert.Equal(t, "changed", f.draw()[1])
}

func columnDrawn(screen tcell.Screen, x, height int) bool {
	for y := 0; y < height; y++ {
		if primary, _, _, _ := screen.GetContent(x, y); primary != ' ' && primary != 0 {
			return true
		}
	}
	return false
}

func TestScrollListScrollBarHiddenWhileAnimating(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.list.SetScrollBarVisible(true)

	assert.True(t, strings.HasPrefix(f.draw()[0], "item 0 "))
	primary, _, _, _ := f.screen.GetContent(19, 0)
	assert.Equal(t, '\u2588', primary)

	require.True(t, f.list.JumpTo(30, 0, false, true))
	f.draw()
	assert.False(t, columnDrawn(f.screen, 19, 5))

	f.now = f.now.Add(time.Second)
	f.draw()
	f.draw()
	assert.True(t, columnDrawn(f.screen, 19, 5))
}

func TestScrollListTrackClick(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.list.SetScrollBarVisible(true)
	f.draw()

	click := tcell.NewEventMouse(19, 4, tcell.Button1, tcell.ModNone)
	_, cmd := f.list.MouseHandler(MouseLeftClick, click)
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.True(t, strings.HasPrefix(f.draw()[0], "item 5"))
	assert.Equal(t, -1, f.list.Cursor())

	f.list.ScrollBar().SetTrackClickBehavior(TrackClickBehaviorJumpToClick)
	f.list.MouseHandler(MouseLeftClick, click)
	assert.Equal(t, 45, f.list.Cursor())
	assert.NotEqual(t, jumpscroll.StateIdle, f.list.Scroller().State())

	f.draw()
	f.now = f.now.Add(time.Second)
	f.draw()
	assert.True(t, strings.HasPrefix(f.draw()[0], "item 45"))
	assert.Equal(t, jumpscroll.StateIdle, f.list.Scroller().State())
}

func TestScrollListHandlesStayInViewport(t *testing.T) {
	f := newListFixture(t, 50, 5)
	f.list.SetScrollDirection(jumpscroll.DirectionBackward)
	f.list.SetScrollBarVisible(true)
	f.list.SetPendingScroll(5)
	assert.True(t, strings.HasPrefix(f.draw()[0], "item 5"))

	handles := f.list.VisibleHandles()
	require.Len(t, handles, 5)
	for i, h := range handles {
		assert.Equal(t, 5+i, h.Index())
		assert.Equal(t, jumpscroll.Bounds{Top: i, Bottom: i + 1}, h.Bounds())
	}

	require.True(t, f.list.JumpTo(0, 0, false, true))
	f.draw()
	plan, ok := f.list.Scroller().Plan()
	require.True(t, ok)
	assert.Len(t, plan.Departing, 5)
	for _, e := range plan.Departing {
		assert.GreaterOrEqual(t, e.Bounds.Top, 0)
	}
	assert.Equal(t, 5, plan.ScrollLength)
}

func TestScrollListTrackEndReverseLayout(t *testing.T) {
	f := newListFixture(t, 20, 5)
	f.list.SetTrackEnd(true)
	assert.True(t, f.list.ReverseLayout())

	require.True(t, f.list.Scroller().ScrollTo(12, 0))
	assert.Equal(t, "item 12", f.draw()[4])
}

func TestScrollListDetachIsIdempotent(t *testing.T) {
	f := newListFixture(t, 20, 5)
	f.draw()

	h := f.list.VisibleHandles()[0]
	f.list.Detach(h)
	f.list.Detach(h)
	assert.False(t, f.list.Attached(h))
	assert.Len(t, f.list.VisibleHandles(), 4)

	f.list.Attach(h)
	assert.True(t, f.list.Attached(h))
	assert.Error(t, f.list.CheckInvariants())
	f.list.Detach(h)
	assert.NoError(t, f.list.CheckInvariants())
}

func TestScrollListOnNextLayoutFiresOnce(t *testing.T) {
	f := newListFixture(t, 0, 5)
	calls := 0
	f.list.OnNextLayout(func() { calls++ })

	f.draw()
	f.draw()
	assert.Equal(t, 1, calls)
}

func TestScrollListCursorNavigation(t *testing.T) {
	f := newListFixture(t, 3, 5)
	f.draw()

	assert.True(t, f.list.NextItem())
	assert.Equal(t, 0, f.list.Cursor())
	assert.True(t, f.list.NextItem())
	assert.True(t, f.list.NextItem())
	assert.False(t, f.list.NextItem())
	assert.Equal(t, 2, f.list.Cursor())
	assert.True(t, f.list.PrevItem())
	assert.Equal(t, 1, f.list.Cursor())

	f.list.SetScrollEnabled(false)
	assert.False(t, f.list.PrevItem())
}
