package tview

import (
	"maps"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/xqrs/tview/jumpscroll"
)

// ScrollListItem represents a primitive which can be measured for a given width.
//
// Scroll list items are responsible for reporting their own height so the list can
// layout and scroll variable-height items. Items may also implement
// jumpscroll.Identified to be matched across jumps by their own identity, and
// jumpscroll.Animatable to render differently while a jump animates.
type ScrollListItem interface {
	Primitive
	Height(width int) int
}

// ScrollListBuilder returns a list item for the given index and cursor position.
// It must return nil when the index is out of range.
type ScrollListBuilder func(index int, cursor int) ScrollListItem

// ScrollList displays a virtual list of primitives returned by a builder function.
//
// Built items are pooled by index until they scroll out of view, the cursor
// moves or the data changes. Programmatic jumps made with JumpTo can be
// animated; while one runs, the list ignores user scrolling and the
// application should keep drawing (see IsAnimating).
type ScrollList struct {
	*Box

	Builder     ScrollListBuilder
	gap         int
	snapToItems bool
	trackEnd    bool
	atEnd       bool

	cursor int
	scroll scrollListState

	changed func(index int)

	lastRect scrollListRect

	pool map[int]ScrollListItem
	// Handles of the current layout, keyed by index while attached.
	byIndex map[int]*scrollListHandle
	handles []*scrollListHandle
	// Handles forced back into the view by the scroller that are not part of
	// the current layout.
	overlay []*scrollListHandle

	itemCount func() int
	stableIDs bool
	itemID    func(index int) jumpscroll.Identity

	scrollEnabled    bool
	scrollBarVisible bool
	scrollBarEnabled bool
	bar              *ScrollBar
	barDrawn         bool

	nextLayout []func()
	invalid    bool

	notifier *jumpscroll.BufferedNotifier
	scroller *jumpscroll.Scroller
}

type scrollListState struct {
	top     int // index of the item anchoring the view
	offset  int // rows of the top item scrolled above the viewport
	pending int // scroll delta in rows, applied by the next layout

	// wantsCursor makes the next layout scroll the cursor into view.
	wantsCursor bool
}

type scrollListRect struct {
	x, y, width, height int
}

func (r scrollListRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// scrollListHandle is a laid-out item as seen by the jump scroller.
type scrollListHandle struct {
	index       int
	item        ScrollListItem
	row         int
	height      int
	translation float64
	attached    bool
}

func (h *scrollListHandle) Index() int                { return h.index }
func (h *scrollListHandle) Translation() float64      { return h.translation }
func (h *scrollListHandle) SetTranslation(dy float64) { h.translation = dy }

func (h *scrollListHandle) Bounds() jumpscroll.Bounds {
	return jumpscroll.Bounds{Top: h.row, Bottom: h.row + h.height}
}

// StableID forwards to the item.
func (h *scrollListHandle) StableID() (jumpscroll.Identity, bool) {
	if ided, ok := h.item.(jumpscroll.Identified); ok {
		return ided.StableID()
	}
	return 0, false
}

// SetAnimating forwards to the item.
func (h *scrollListHandle) SetAnimating(running, departing bool) {
	if a, ok := h.item.(jumpscroll.Animatable); ok {
		a.SetAnimating(running, departing)
	}
}

// NewScrollList returns a new scroll list.
func NewScrollList() *ScrollList {
	l := &ScrollList{
		Box:              NewBox(),
		cursor:           -1,
		pool:             make(map[int]ScrollListItem),
		byIndex:          make(map[int]*scrollListHandle),
		scrollEnabled:    true,
		scrollBarEnabled: true,
		bar:              NewScrollBar(),
	}
	l.notifier = jumpscroll.NewBufferedNotifier(scrollListData{l})
	l.scroller = jumpscroll.New(l, jumpscroll.WithAdapter(l.notifier))
	return l
}

// SetJumpOptions rebuilds the jump scroller with the given options. It is
// ignored while a jump is in flight.
func (l *ScrollList) SetJumpOptions(opts ...jumpscroll.Option) *ScrollList {
	if l.scroller.Running() {
		return l
	}
	opts = append([]jumpscroll.Option{jumpscroll.WithAdapter(l.notifier)}, opts...)
	l.scroller = jumpscroll.New(l, opts...)
	return l
}

// Scroller returns the jump scroller driving this list.
func (l *ScrollList) Scroller() *jumpscroll.Scroller {
	return l.scroller
}

// SetBuilder sets the builder used to create list items on demand.
func (l *ScrollList) SetBuilder(builder ScrollListBuilder) *ScrollList {
	l.Builder = builder
	l.resetItems()
	return l
}

// SetItemCountFunc sets a function reporting the number of items. Without it
// the list probes the builder to find the end.
func (l *ScrollList) SetItemCountFunc(count func() int) *ScrollList {
	l.itemCount = count
	return l
}

// SetStableIDs declares whether item ids survive structural changes. Jumps
// only match items across the old and new view when this is set.
func (l *ScrollList) SetStableIDs(stable bool) *ScrollList {
	l.stableIDs = stable
	return l
}

// SetItemIDFunc sets the identity used for the item at an index. The default
// is the index itself.
func (l *ScrollList) SetItemIDFunc(id func(index int) jumpscroll.Identity) *ScrollList {
	l.itemID = id
	return l
}

// SetScrollDirection sets the direction of animated jumps. Unset makes every
// jump instantaneous.
func (l *ScrollList) SetScrollDirection(direction jumpscroll.Direction) *ScrollList {
	l.scroller.SetScrollDirection(direction)
	return l
}

// SetScrollBarVisible reserves the rightmost column for a scroll bar.
func (l *ScrollList) SetScrollBarVisible(visible bool) *ScrollList {
	l.scrollBarVisible = visible
	return l
}

// ScrollBar returns the scroll bar drawn when SetScrollBarVisible is set.
func (l *ScrollList) ScrollBar() *ScrollBar {
	return l.bar
}

// Clear removes all items from the list by clearing the builder and resetting
// scroll state.
func (l *ScrollList) Clear() *ScrollList {
	l.scroller.Cancel()
	l.Builder = nil
	l.cursor = -1
	l.scroll = scrollListState{}
	l.lastRect = scrollListRect{}
	l.atEnd = false
	l.resetItems()
	return l
}

// SetGap sets the number of blank rows between items.
func (l *ScrollList) SetGap(gap int) *ScrollList {
	l.gap = max(gap, 0)
	return l
}

// SetSnapToItems toggles snapping so only fully visible items are shown.
func (l *ScrollList) SetSnapToItems(snap bool) *ScrollList {
	l.snapToItems = snap
	return l
}

// SetTrackEnd toggles auto-scrolling when the view is already at the end.
// Tracking lists lay out from the bottom edge, so jumps without an explicit
// anchor align items to the bottom.
func (l *ScrollList) SetTrackEnd(track bool) *ScrollList {
	l.trackEnd = track
	return l
}

// ScrollToStart resets the scroll position to the top (index 0), without
// changing the cursor.
func (l *ScrollList) ScrollToStart() *ScrollList {
	if !l.scrollEnabled {
		return l
	}
	l.scroll.top = 0
	l.scroll.offset = 0
	l.scroll.wantsCursor = false
	l.atEnd = false
	return l
}

// ScrollToEnd scrolls the view so the last items are visible.
func (l *ScrollList) ScrollToEnd() *ScrollList {
	if !l.scrollEnabled {
		return l
	}
	_, _, width, height := l.GetInnerRect()
	width = l.usableWidth(width)
	if width <= 0 || height <= 0 {
		return l
	}
	l.scroll.top, l.scroll.offset = l.endScrollState(width, height)
	l.scroll.wantsCursor = false
	l.atEnd = true
	return l
}

// JumpTo moves the cursor to index and brings it into view. With
// anchorBottom the item's bottom edge ends up offset rows above the viewport
// bottom, otherwise its top edge ends up offset rows below the viewport top.
// If smooth is set and a scroll direction is configured the jump is animated.
//
// It returns false, changing nothing, while another jump is in flight.
func (l *ScrollList) JumpTo(index, offset int, anchorBottom, smooth bool) bool {
	if !l.scroller.ScrollToPosition(index, offset, anchorBottom, smooth) {
		return false
	}
	if l.cursor != index && l.exists(index) {
		l.cursor = index
		l.resetItems()
		if l.changed != nil {
			l.changed(l.cursor)
		}
	}
	return true
}

// CancelJump stops a running jump, leaving the list at its target.
func (l *ScrollList) CancelJump() {
	l.scroller.Cancel()
}

// IsAnimating reports whether the list needs another frame without input.
func (l *ScrollList) IsAnimating() bool {
	return l.scroller.Running() || l.invalid
}

// SetCursor sets the currently selected item index.
func (l *ScrollList) SetCursor(index int) *ScrollList {
	if index < -1 {
		index = -1
	}
	if l.cursor != index {
		l.moveCursor(index)
	}
	return l
}

// Cursor returns the current cursor index.
func (l *ScrollList) Cursor() int {
	return l.cursor
}

// SetPendingScroll sets a pending scroll amount, in lines. Positive numbers
// scroll down.
func (l *ScrollList) SetPendingScroll(lines int) *ScrollList {
	if l.scrollEnabled {
		l.scroll.pending = lines
	}
	return l
}

// ScrollUp scrolls the list up by one line.
func (l *ScrollList) ScrollUp() *ScrollList {
	if l.scrollEnabled {
		l.scroll.pending--
	}
	return l
}

// ScrollDown scrolls the list down by one line.
func (l *ScrollList) ScrollDown() *ScrollList {
	if l.scrollEnabled {
		l.scroll.pending++
	}
	return l
}

// NextItem moves the cursor to the next item, if any.
func (l *ScrollList) NextItem() bool {
	if !l.scrollEnabled {
		return false
	}
	next := l.cursor + 1
	if l.cursor < 0 {
		next = 0
	}
	if !l.exists(next) {
		return false
	}
	l.moveCursor(next)
	return true
}

// PrevItem moves the cursor to the previous item, if any.
func (l *ScrollList) PrevItem() bool {
	if !l.scrollEnabled || l.cursor <= 0 || !l.exists(l.cursor-1) {
		return false
	}
	l.moveCursor(l.cursor - 1)
	return true
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (l *ScrollList) SetChangedFunc(handler func(index int)) *ScrollList {
	l.changed = handler
	return l
}

func (l *ScrollList) moveCursor(index int) {
	l.cursor = index
	l.atEnd = false
	l.resetItems()
	l.ensureScroll()
	if l.changed != nil {
		l.changed(l.cursor)
	}
}

// Draw lays the items out, advances a running jump and draws the items with
// the scroll bar.
func (l *ScrollList) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	l.invalid = false

	x, y, width, height := l.GetInnerRect()
	l.lastRect = scrollListRect{x: x, y: y, width: width, height: height}
	usableWidth := l.usableWidth(width)

	l.place(l.layout(usableWidth, height))
	l.trimPool()
	l.runNextLayout()
	l.scroller.Step()

	if usableWidth <= 0 || height <= 0 {
		return
	}

	clipped := &clippedScreen{Screen: screen, rect: scrollListRect{x: x, y: y, width: usableWidth, height: height}}
	for _, h := range l.overlay {
		l.drawHandle(clipped, h, x, y, usableWidth)
	}
	for _, h := range l.handles {
		if h.attached {
			l.drawHandle(clipped, h, x, y, usableWidth)
		}
	}

	l.barDrawn = false
	if l.scrollBarVisible && l.scrollBarEnabled && width > usableWidth {
		l.bar.SetLengths(ScrollLengths{ContentLen: l.count(), ViewportLen: len(l.handles)})
		l.bar.SetOffset(l.scroll.top)
		l.bar.SetRect(x+usableWidth, y, 1, height)
		l.bar.Draw(screen)
		l.barDrawn = l.bar.Visible()
	}
}

func (l *ScrollList) drawHandle(screen tcell.Screen, h *scrollListHandle, x, y, width int) {
	dy := int(math.Round(h.translation))
	h.item.SetRect(x, y+h.row+dy, width, h.height)
	h.item.Draw(screen)
}

// usableWidth is the item width once the scroll bar column is reserved. The
// column stays reserved while the bar is hidden so item heights don't change
// during a jump.
func (l *ScrollList) usableWidth(width int) int {
	if l.scrollBarVisible && width > 1 {
		return width - 1
	}
	return width
}

// layout places the items in view for the current scroll state, applies the
// pending scroll delta and stores the resulting top anchor.
func (l *ScrollList) layout(width, height int) placement {
	if width <= 0 || height <= 0 || l.Builder == nil {
		return nil
	}

	// Keep following the end while nothing scrolled away from it. A running
	// jump owns the position.
	if l.trackEnd && l.atEnd && !l.scroller.Running() {
		l.scroll.top, l.scroll.offset = l.endScrollState(width, height)
		l.scroll.wantsCursor = false
	}
	if l.snapToItems && l.scroll.wantsCursor && l.cursor >= 0 {
		if n := l.itemsThatFit(width, height); l.cursor < l.scroll.top || l.cursor >= l.scroll.top+n {
			l.scroll.top, l.scroll.offset = l.cursor, 0
		}
		l.scroll.wantsCursor = false
	}

	delta := l.scroll.pending
	l.scroll.pending = 0
	// above is the number of rows to fill above the top item.
	above := -(l.scroll.offset + delta)
	if above > 0 && l.scroll.top == 0 {
		above = 0
		l.scroll.offset = 0
	}

	var (
		items      placement
		endReached bool
	)
	for {
		items, endReached = l.fill(width, height, above)
		if len(items) == 0 {
			l.resetScroll()
			return nil
		}
		if !l.snapToItems || !l.scroll.wantsCursor || l.cursor < 0 || items.find(l.cursor) >= 0 {
			break
		}
		// The cursor was not reached; start over from it.
		l.scroll.top, l.scroll.offset = l.cursor, 0
		l.scroll.wantsCursor = false
		above = 0
	}

	if l.snapToItems {
		if items = items.fullyVisible(height); len(items) == 0 {
			l.resetScroll()
			return nil
		}
		items = l.fillBelow(items, width, height)
	}

	// Scrolling down past the end leaves the last item flush with the bottom.
	if endReached && delta > 0 && items[0].row < 0 && items.bottom() < height {
		items.shift(height - items.bottom())
	}

	if l.scroll.wantsCursor {
		if i := items.find(l.cursor); i >= 0 {
			if bottom := items[i].row + items[i].height; bottom > height {
				items.shift(height - bottom)
			}
			l.scroll.wantsCursor = false
		}
	}

	l.anchor(items)
	endReached = endReached || !l.exists(items[len(items)-1].index+1)
	l.atEnd = endReached && items.bottom() <= height
	// Items scrolled wholly out of view are not handles; a jump snapshots
	// only what occupies the viewport.
	return items.within(height)
}

// fill places items downwards from the top index until the viewport is full,
// or past the cursor when it has to come into view. above rows are first
// filled with the items before the top. It reports whether it ran out of
// items.
func (l *ScrollList) fill(width, height, above int) (placement, bool) {
	start := l.scroll.top
	row := above
	var items placement
	if above > 0 {
		if items = l.prepend(width, above); len(items) > 0 {
			row = items.bottom() + l.gap
		}
	}

	for index := start; ; index++ {
		item := l.itemAt(index)
		if item == nil {
			return items, true
		}
		itemHeight := l.itemHeight(item, width)
		items = append(items, placedItem{index: index, item: item, row: row, height: itemHeight})
		row += itemHeight + l.gap
		if row >= height && !(l.scroll.wantsCursor && index <= l.cursor) {
			return items, false
		}
	}
}

// prepend places the items before the top index bottom-up until above rows
// are covered, moving the top index back as it goes.
func (l *ScrollList) prepend(width, above int) placement {
	if l.scroll.top <= 0 {
		return nil
	}

	var items placement
	row := above
	l.scroll.top--
	for row > 0 {
		row -= l.gap
		item := l.itemAt(l.scroll.top)
		if item == nil {
			break
		}
		itemHeight := l.itemHeight(item, width)
		row -= itemHeight
		items = slices.Insert(items, 0, placedItem{index: l.scroll.top, item: item, row: row, height: itemHeight})
		if l.scroll.top == 0 {
			break
		}
		l.scroll.top--
	}
	l.scroll.offset = row

	// The first item came into view with rows to spare; stack from row 0.
	if l.scroll.top == 0 && row > 0 {
		l.scroll.offset = 0
		next := 0
		for i := range items {
			items[i].row = next
			next += items[i].height + l.gap
		}
	}
	return items
}

// fillBelow appends the items after the last one that still fit whole.
func (l *ScrollList) fillBelow(items placement, width, height int) placement {
	for index := items[len(items)-1].index + 1; ; index++ {
		item := l.itemAt(index)
		if item == nil {
			return items
		}
		row := items.bottom() + l.gap
		itemHeight := l.itemHeight(item, width)
		if row+itemHeight > height {
			return items
		}
		items = append(items, placedItem{index: index, item: item, row: row, height: itemHeight})
	}
}

// anchor stores the scroll position items represent. Snapping lists anchor
// at the first item, others at the item covering row 0.
func (l *ScrollList) anchor(items placement) {
	if l.snapToItems {
		l.scroll.top, l.scroll.offset = items[0].index, 0
		return
	}
	for _, it := range items {
		if it.row <= 0 && it.row+it.height+l.gap > 0 {
			l.scroll.top, l.scroll.offset = it.index, -it.row
			return
		}
	}
}

func (l *ScrollList) resetScroll() {
	l.scroll.top, l.scroll.offset = 0, 0
	l.atEnd = false
}

// place turns the laid-out items into handles, reusing the handle of an index
// that stayed attached with the same item.
func (l *ScrollList) place(items placement) {
	handles := make([]*scrollListHandle, 0, len(items))
	byIndex := make(map[int]*scrollListHandle, len(items))
	for _, it := range items {
		h := l.byIndex[it.index]
		if h == nil || h.item != it.item {
			h = &scrollListHandle{index: it.index, item: it.item}
		}
		h.row = it.row
		h.height = it.height
		h.attached = true
		byIndex[it.index] = h
		handles = append(handles, h)
	}
	for index, h := range l.byIndex {
		if byIndex[index] != h {
			h.attached = false
		}
	}
	l.byIndex = byIndex
	l.handles = handles
}

func (l *ScrollList) trimPool() {
	maps.DeleteFunc(l.pool, func(index int, _ ScrollListItem) bool {
		_, laidOut := l.byIndex[index]
		return !laidOut
	})
}

func (l *ScrollList) runNextLayout() {
	callbacks := l.nextLayout
	l.nextLayout = nil
	for _, fn := range callbacks {
		fn()
	}
}

// itemAt returns the pooled item for index, building it on first use.
func (l *ScrollList) itemAt(index int) ScrollListItem {
	if index < 0 || l.Builder == nil {
		return nil
	}
	if item, ok := l.pool[index]; ok {
		return item
	}
	item := l.Builder(index, l.cursor)
	if item != nil {
		l.pool[index] = item
	}
	return item
}

func (l *ScrollList) exists(index int) bool {
	switch {
	case index < 0:
		return false
	case l.itemCount != nil:
		return index < l.itemCount()
	}
	return l.itemAt(index) != nil
}

// count returns the number of items, probing the builder without a count
// func.
func (l *ScrollList) count() int {
	if l.itemCount != nil {
		return l.itemCount()
	}
	n := 0
	for l.Builder != nil && l.Builder(n, l.cursor) != nil {
		n++
	}
	return n
}

// resetItems drops every pooled item so the next layout rebuilds them. The
// current handles stay drawable until then.
func (l *ScrollList) resetItems() {
	clear(l.pool)
	l.invalid = true
}

// itemHeight is at least one row so every item can be seen and clicked.
func (l *ScrollList) itemHeight(item ScrollListItem, width int) int {
	if item == nil {
		return 0
	}
	return max(item.Height(width), 1)
}

// ensureScroll brings the cursor into view: at once when it is at or above
// the top, on the next layout when it is below.
func (l *ScrollList) ensureScroll() {
	switch {
	case l.cursor < 0:
		l.scroll.wantsCursor = false
	case l.cursor > l.scroll.top:
		l.scroll.wantsCursor = true
	default:
		l.scroll.top, l.scroll.offset = l.cursor, 0
	}
}

// scrollByItems moves the top index count items in the direction of delta,
// stopping at either end.
func (l *ScrollList) scrollByItems(delta int, count int) {
	if l.Builder == nil {
		return
	}
	for range max(count, 1) {
		switch {
		case delta > 0 && l.exists(l.scroll.top+1):
			l.scroll.top++
		case delta <= 0 && l.scroll.top > 0:
			l.scroll.top--
		}
	}
	l.scroll.offset = 0
	l.scroll.wantsCursor = false
}

// itemsThatFit counts the items from the top index that fit the viewport
// whole. It is at least one so paging always moves.
func (l *ScrollList) itemsThatFit(width int, height int) int {
	if l.Builder == nil || width <= 0 || height <= 0 {
		return 0
	}
	used, n := -l.gap, 0
	for item := l.itemAt(l.scroll.top); item != nil; item = l.itemAt(l.scroll.top + n) {
		if used += l.gap + l.itemHeight(item, width); used > height {
			break
		}
		n++
	}
	return max(n, 1)
}

// endScrollState returns the top index and offset that put the last item flush
// with the bottom of the viewport.
func (l *ScrollList) endScrollState(width int, height int) (top, offset int) {
	if l.Builder == nil || width <= 0 || height <= 0 {
		return 0, 0
	}
	used := -l.gap
	for index := l.count() - 1; index >= 0; index-- {
		item := l.itemAt(index)
		if item == nil {
			continue
		}
		if used += l.gap + l.itemHeight(item, width); used > height {
			return index, used - height
		}
	}
	return 0, 0
}

// InputHandler handles cursor movement and paging.
func (l *ScrollList) InputHandler(event *tcell.EventKey) Command {
	if !l.scrollEnabled {
		return nil
	}
	switch event.Key() {
	case tcell.KeyDown:
		l.NextItem()
	case tcell.KeyUp:
		l.PrevItem()
	case tcell.KeyPgDn:
		_, _, width, height := l.GetInnerRect()
		if l.snapToItems {
			l.scrollByItems(1, l.itemsThatFit(l.usableWidth(width), height))
		} else {
			l.scroll.pending += max(height, 1)
		}
	case tcell.KeyPgUp:
		_, _, width, height := l.GetInnerRect()
		if l.snapToItems {
			l.scrollByItems(-1, l.itemsThatFit(l.usableWidth(width), height))
		} else {
			l.scroll.pending -= max(height, 1)
		}
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler selects clicked items and scrolls on the wheel.
func (l *ScrollList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}
	if !l.scrollEnabled {
		return nil, ConsumeEventCommand{}
	}

	if l.barDrawn && x == l.lastRect.x+l.usableWidth(l.lastRect.width) {
		if action == MouseLeftClick {
			l.clickScrollBar(y)
		}
		return nil, RedrawCommand{}
	}

	switch action {
	case MouseLeftClick:
		if index := l.indexAtPoint(x, y); index >= 0 && index != l.cursor {
			l.moveCursor(index)
		}
		return nil, BatchCommand{SetFocusCommand{Target: l}, RedrawCommand{}}
	case MouseScrollUp:
		if l.snapToItems {
			l.scrollByItems(-1, 1)
		} else {
			l.scroll.pending -= 3
		}
		return nil, RedrawCommand{}
	case MouseScrollDown:
		if l.snapToItems {
			l.scrollByItems(1, 1)
		} else {
			l.scroll.pending += 3
		}
		return nil, RedrawCommand{}
	}

	return nil, nil
}

// clickScrollBar pages or jumps towards the clicked track row. Jumps are
// animated when a scroll direction is set.
func (l *ScrollList) clickScrollBar(y int) {
	offset, side, ok := l.bar.ClickAt(y)
	if !ok || side == 0 {
		return
	}
	if l.bar.TrackClickBehavior() == TrackClickBehaviorJumpToClick {
		l.JumpTo(offset, 0, false, true)
		return
	}
	if l.snapToItems {
		l.scrollByItems(side, max(len(l.handles), 1))
		return
	}
	l.scroll.pending += side * max(l.lastRect.height, 1)
}

func (l *ScrollList) indexAtPoint(x, y int) int {
	if len(l.handles) == 0 {
		return -1
	}
	if !l.lastRect.contains(x, y) {
		return -1
	}

	row := y - l.lastRect.y
	for _, h := range l.handles {
		if row >= h.row && row < h.row+h.height+l.gap {
			return h.index
		}
	}
	return -1
}

// VisibleHandles returns the attached handles of the current layout.
func (l *ScrollList) VisibleHandles() []jumpscroll.Handle {
	handles := make([]jumpscroll.Handle, 0, len(l.handles))
	for _, h := range l.handles {
		if h.attached {
			handles = append(handles, h)
		}
	}
	return handles
}

// ViewportHeight returns the number of rows available to items.
func (l *ScrollList) ViewportHeight() int {
	_, _, _, height := l.GetInnerRect()
	return height
}

// Reposition places the item at index without animation.
func (l *ScrollList) Reposition(index, offset int, anchorBottom bool) {
	index = max(index, 0)
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
	l.atEnd = false
	l.resetItems()

	_, _, width, height := l.GetInnerRect()
	width = l.usableWidth(width)
	item := l.itemAt(index)
	if item == nil {
		l.scroll.top, l.scroll.offset = l.endScrollState(width, height)
		return
	}

	row := offset
	if anchorBottom {
		row = height - offset - l.itemHeight(item, width)
	}
	l.scroll.top = index
	l.scroll.offset = -row
}

// Detach removes a handle from the view. It is a no-op for handles that are
// not attached.
func (l *ScrollList) Detach(h jumpscroll.Handle) {
	handle, ok := h.(*scrollListHandle)
	if !ok || !handle.attached {
		return
	}
	handle.attached = false
	if l.byIndex[handle.index] == handle {
		delete(l.byIndex, handle.index)
	}
	l.overlay = slices.DeleteFunc(l.overlay, func(o *scrollListHandle) bool { return o == handle })
}

// Attach puts a detached handle back into the view, drawn beneath the laid-out
// items.
func (l *ScrollList) Attach(h jumpscroll.Handle) {
	handle, ok := h.(*scrollListHandle)
	if !ok || handle.attached {
		return
	}
	handle.attached = true
	if l.byIndex[handle.index] != handle {
		l.overlay = append(l.overlay, handle)
	}
}

// Attached reports whether the handle is drawn.
func (l *ScrollList) Attached(h jumpscroll.Handle) bool {
	handle, ok := h.(*scrollListHandle)
	return ok && handle.attached
}

// ClearRecycled drops pooled items so nothing built before a jump is reused.
func (l *ScrollList) ClearRecycled() {
	clear(l.pool)
}

// Refresh rebuilds every item on the next layout.
func (l *ScrollList) Refresh() {
	l.resetItems()
}

// StopScroll drops pending scroll input.
func (l *ScrollList) StopScroll() {
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
}

// SetScrollEnabled toggles user scrolling.
func (l *ScrollList) SetScrollEnabled(enabled bool) {
	l.scrollEnabled = enabled
}

// SetScrollBarEnabled toggles drawing of the scroll bar.
func (l *ScrollList) SetScrollBarEnabled(enabled bool) {
	l.scrollBarEnabled = enabled
}

// OnNextLayout runs fn once after the next layout pass.
func (l *ScrollList) OnNextLayout(fn func()) {
	l.nextLayout = append(l.nextLayout, fn)
}

// Invalidate requests another draw.
func (l *ScrollList) Invalidate() {
	l.invalid = true
}

// ReverseLayout reports whether the list follows its end.
func (l *ScrollList) ReverseLayout() bool {
	return l.trackEnd
}

// CheckInvariants verifies that no handle outside the layout is still drawn.
func (l *ScrollList) CheckInvariants() error {
	for _, h := range l.overlay {
		if h.attached {
			return errors.Errorf("departing item %d still attached", h.index)
		}
	}
	if len(l.overlay) > 0 {
		return errors.Errorf("%d departing items left in the view", len(l.overlay))
	}
	for index, h := range l.byIndex {
		if !h.attached {
			return errors.Errorf("laid-out item %d detached", index)
		}
	}
	return nil
}

// NotifyReset reports that any item may have changed.
func (l *ScrollList) NotifyReset() {
	l.notifier.NotifyReset()
}

// NotifyRangeInserted reports count items inserted at start.
func (l *ScrollList) NotifyRangeInserted(start, count int) {
	l.notifier.NotifyRangeInserted(start, count)
}

// NotifyRangeRemoved reports count items removed from start.
func (l *ScrollList) NotifyRangeRemoved(start, count int) {
	l.notifier.NotifyRangeRemoved(start, count)
}

// NotifyItemChanged reports that the item at index changed in place.
func (l *ScrollList) NotifyItemChanged(index int) {
	l.notifier.NotifyItemChanged(index)
}

// NotifyRangeChanged reports that count items from start changed in place.
func (l *ScrollList) NotifyRangeChanged(start, count int) {
	l.notifier.NotifyRangeChanged(start, count)
}

// scrollListData applies data notifications to the list once they leave the
// buffer, and provides item identities to the scroller.
type scrollListData struct {
	l *ScrollList
}

func (d scrollListData) HasStableIDs() bool {
	return d.l.stableIDs
}

func (d scrollListData) ItemID(index int) jumpscroll.Identity {
	if d.l.itemID != nil {
		return d.l.itemID(index)
	}
	return jumpscroll.Identity(index)
}

func (d scrollListData) NotifyReset() {
	d.l.resetItems()
	if d.l.itemCount != nil && d.l.cursor >= d.l.itemCount() {
		d.l.cursor = d.l.itemCount() - 1
	}
}

func (d scrollListData) NotifyRangeInserted(start, count int) {
	l := d.l
	if count <= 0 {
		return
	}
	// Keep the content in view where it was.
	if start <= l.scroll.top && !(l.scroll.top == 0 && l.scroll.offset == 0 && !l.trackEnd) {
		l.scroll.top += count
	}
	if l.cursor >= start {
		l.cursor += count
	}
	l.resetItems()
}

func (d scrollListData) NotifyRangeRemoved(start, count int) {
	l := d.l
	if count <= 0 {
		return
	}
	end := start + count
	switch {
	case l.scroll.top >= end:
		l.scroll.top -= count
	case l.scroll.top >= start:
		l.scroll.top = start
		l.scroll.offset = 0
	}
	switch {
	case l.cursor >= end:
		l.cursor -= count
	case l.cursor >= start:
		l.cursor = start
		if !l.exists(l.cursor) {
			l.cursor--
		}
	}
	l.resetItems()
}

func (d scrollListData) NotifyItemChanged(index int) {
	delete(d.l.pool, index)
	d.l.invalid = true
}

func (d scrollListData) NotifyRangeChanged(start, count int) {
	for i := start; i < start+count; i++ {
		delete(d.l.pool, i)
	}
	d.l.invalid = true
}

var (
	_ Primitive                   = &ScrollList{}
	_ Animated                    = &ScrollList{}
	_ jumpscroll.List             = &ScrollList{}
	_ jumpscroll.Notifier         = &ScrollList{}
	_ jumpscroll.ReverseLayouter  = &ScrollList{}
	_ jumpscroll.InvariantChecker = &ScrollList{}
)

// clippedScreen drops writes outside rect so translated items cannot spill
// over the border or the scroll bar.
type clippedScreen struct {
	tcell.Screen
	rect scrollListRect
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if s.rect.contains(x, y) {
		s.Screen.SetContent(x, y, primary, combining, style)
	}
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.rect.contains(x, y) {
		x, y = -1, -1
	}
	s.Screen.ShowCursor(x, y)
}

// placedItem is an item at its row relative to the viewport top.
type placedItem struct {
	index  int
	item   ScrollListItem
	row    int
	height int
}

// placement is a run of consecutive items ordered by row.
type placement []placedItem

func (p placement) bottom() int {
	last := p[len(p)-1]
	return last.row + last.height
}

func (p placement) shift(dy int) {
	for i := range p {
		p[i].row += dy
	}
}

func (p placement) find(index int) int {
	return slices.IndexFunc(p, func(it placedItem) bool { return it.index == index })
}

// within drops the items lying wholly outside rows [0, height).
func (p placement) within(height int) placement {
	return slices.DeleteFunc(p, func(it placedItem) bool {
		return it.row+it.height <= 0 || it.row >= height
	})
}

// fullyVisible drops the items cut off at either edge and moves the rest up
// to row 0.
func (p placement) fullyVisible(height int) placement {
	first := slices.IndexFunc(p, func(it placedItem) bool { return it.row >= 0 })
	if first < 0 {
		return nil
	}
	p = p[first:]
	p.shift(-p[0].row)
	end := len(p)
	for end > 0 && p[end-1].row+p[end-1].height > height {
		end--
	}
	return p[:end]
}
