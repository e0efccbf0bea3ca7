package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/help"
	"github.com/xqrs/tview/internal/config"
	"github.com/xqrs/tview/jumpscroll"
	"github.com/xqrs/tview/keybind"
	"github.com/xqrs/tview/layers"
)

const helpLayer = "help"

type keyMap struct {
	Down      keybind.Keybind
	Up        keybind.Keybind
	Top       keybind.Keybind
	Bottom    keybind.Keybind
	Random    keybind.Keybind
	Insert    keybind.Keybind
	Append    keybind.Keybind
	Delete    keybind.Keybind
	Edit      keybind.Keybind
	Direction keybind.Keybind
	Cancel    keybind.Keybind
	Help      keybind.Keybind
	Quit      keybind.Keybind
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:      keybind.NewKeybind(keybind.WithKeys("j", "down"), keybind.WithHelp("j/↓", "next")),
		Up:        keybind.NewKeybind(keybind.WithKeys("k", "up"), keybind.WithHelp("k/↑", "previous")),
		Top:       keybind.NewKeybind(keybind.WithKeys("g", "home"), keybind.WithHelp("g", "jump to first")),
		Bottom:    keybind.NewKeybind(keybind.WithKeys("G", "end"), keybind.WithHelp("G", "jump to last")),
		Random:    keybind.NewKeybind(keybind.WithKeys("r"), keybind.WithHelp("r", "jump anywhere")),
		Insert:    keybind.NewKeybind(keybind.WithKeys("i"), keybind.WithHelp("i", "insert at top")),
		Append:    keybind.NewKeybind(keybind.WithKeys("a"), keybind.WithHelp("a", "append")),
		Delete:    keybind.NewKeybind(keybind.WithKeys("x"), keybind.WithHelp("x", "delete selected")),
		Edit:      keybind.NewKeybind(keybind.WithKeys("e"), keybind.WithHelp("e", "edit selected")),
		Direction: keybind.NewKeybind(keybind.WithKeys("d"), keybind.WithHelp("d", "cycle direction")),
		Cancel:    keybind.NewKeybind(keybind.WithKeys("esc"), keybind.WithHelp("esc", "cancel jump")),
		Help:      keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "help")),
		Quit:      keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

// actions maps the names used in the [keys] config table to bindings.
func (k *keyMap) actions() map[string]*keybind.Keybind {
	return map[string]*keybind.Keybind{
		"down": &k.Down, "up": &k.Up, "top": &k.Top, "bottom": &k.Bottom, "random": &k.Random,
		"insert": &k.Insert, "append": &k.Append, "delete": &k.Delete, "edit": &k.Edit,
		"direction": &k.Direction, "cancel": &k.Cancel, "help": &k.Help, "quit": &k.Quit,
	}
}

// override rebinds actions. The help label becomes the first key, since the
// built-in labels use glyphs.
func (k *keyMap) override(keys map[string][]string) {
	actions := k.actions()
	for action, names := range keys {
		kb, ok := actions[action]
		if !ok {
			continue
		}
		kb.SetKeys(names...)
		if bound := kb.Keys(); len(bound) > 0 {
			kb.SetHelp(strings.Join(bound, "/"), kb.Help().Desc)
		}
	}
}

func (k keyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Top, k.Bottom, k.Random, k.Direction, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Down, k.Up, k.Top, k.Bottom, k.Random},
		{k.Insert, k.Append, k.Delete, k.Edit},
		{k.Direction, k.Cancel, k.Help, k.Quit},
	}
}

// jumpView is the list with a status line and a short help line below it.
type jumpView struct {
	*tview.Box

	list   *tview.ScrollList
	status *tview.TextItem
	help   *help.Help
	keys   keyMap
	store  *messageStore
	logger *slog.Logger
	cfg    config.Config

	// toggleHelp shows or hides the full help layer.
	toggleHelp func()
}

func newJumpView(store *messageStore, cfg config.Config, logger *slog.Logger) *jumpView {
	v := &jumpView{
		Box:    tview.NewBox(),
		list:   tview.NewScrollList(),
		status: tview.NewTextItem(""),
		help:   help.New(),
		store:  store,
		logger: logger,
	}
	v.status.SetTextStyle(tcell.StyleDefault.Dim(true))
	v.help.SetKeyMap(&v.keys).SetShowDisabled(true)

	v.list.
		SetJumpOptions(jumpscroll.WithLogger(logger)).
		SetBuilder(func(index, cursor int) tview.ScrollListItem {
			if index < 0 || index >= store.Len() {
				return nil
			}
			return newMessageItem(store.items[index], index == cursor)
		}).
		SetItemCountFunc(store.Len).
		SetItemIDFunc(store.ID)
	v.list.SetChangedFunc(func(index int) {
		logger.Debug("cursor changed", "index", index)
	})
	v.list.SetTitleAlignment(tview.AlignmentLeft)
	v.list.SetCursor(0)
	v.apply(cfg)
	return v
}

func (v *jumpView) updateTitle() {
	v.list.SetTitle(fmt.Sprintf(" %d messages ", v.store.Len()))
}

// apply installs a configuration. While a jump is in flight the new timing
// takes effect from the next jump.
func (v *jumpView) apply(cfg config.Config) {
	v.cfg = cfg
	v.keys = defaultKeyMap()
	v.keys.override(cfg.Keys)
	v.list.
		SetStableIDs(cfg.Demo.StableIDs).
		SetGap(cfg.Demo.Gap).
		SetScrollBarVisible(cfg.Demo.ScrollBar)
	scroller := v.list.Scroller()
	scroller.SetTiming(cfg.Animation.Timing())
	scroller.SetScrollDirection(cfg.Animation.ScrollDirection())
	v.updateTitle()

	if set, ok := tview.BorderSetByName(cfg.Demo.Border); ok {
		v.list.SetBorders(tview.BordersAll).SetBorderSet(set)
	} else {
		v.list.SetBorders(tview.BordersNone)
	}
	bar := v.list.ScrollBar()
	if behavior, ok := cfg.Demo.TrackClickBehavior(); ok {
		bar.SetTrackClickBehavior(behavior)
	}
	if glyphs, ok := tview.GlyphSetByName(cfg.Demo.ScrollBarGlyphs); ok {
		bar.SetGlyphSet(glyphs)
	}
	if cfg.Demo.ScrollBarArrows {
		bar.SetArrows(tview.ScrollBarArrowsBoth)
	} else {
		bar.SetArrows(tview.ScrollBarArrowsNone)
	}
}

// setJumpKeysEnabled greys out the jump bindings while a jump is in flight,
// since the list rejects new jumps until it lands.
func (v *jumpView) setJumpKeysEnabled(enabled bool) {
	if v.keys.Top.Enabled() == enabled {
		return
	}
	for _, kb := range []*keybind.Keybind{&v.keys.Top, &v.keys.Bottom, &v.keys.Random} {
		kb.SetEnabled(enabled)
	}
}

// IsAnimating reports whether the list needs frames.
func (v *jumpView) IsAnimating() bool {
	return v.list.IsAnimating()
}

func (v *jumpView) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if height <= 0 {
		return
	}
	listHeight := max(height-2, 0)
	v.list.SetRect(x, y, width, listHeight)
	v.list.Draw(screen)
	v.setJumpKeysEnabled(!v.list.Scroller().Running())

	if height > listHeight {
		v.status.SetText(tview.TruncateWidth(v.statusText(), width, "…"))
		v.status.SetRect(x, y+listHeight, width, 1)
		v.status.Draw(screen)
	}
	if height > listHeight+1 {
		v.help.SetRect(x, y+listHeight+1, width, 1)
		v.help.Draw(screen)
	}
}

func (v *jumpView) statusText() string {
	scroller := v.list.Scroller()
	return fmt.Sprintf("%d/%d  %s  %s  %s",
		v.list.Cursor()+1, v.store.Len(),
		scroller.ScrollDirection(), v.cfg.Animation.Easing, scroller.State())
}

func (v *jumpView) InputHandler(event *tcell.EventKey) tview.Command {
	switch {
	case keybind.Matches(event, v.keys.Quit):
		return tview.QuitCommand{}
	case keybind.Matches(event, v.keys.Help):
		if v.toggleHelp != nil {
			v.toggleHelp()
		}
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Cancel):
		v.list.CancelJump()
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Direction):
		v.cycleDirection()
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Top):
		return v.jump(0, false)
	case keybind.Matches(event, v.keys.Bottom):
		return v.jump(v.store.Len()-1, true)
	case keybind.Matches(event, v.keys.Random):
		_, _, _, height := v.list.GetInnerRect()
		return v.jump(v.store.Random(v.list.Cursor(), height), false)
	case keybind.Matches(event, v.keys.Insert):
		v.store.Insert(0)
		v.list.NotifyRangeInserted(0, 1)
		v.updateTitle()
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Append):
		v.store.Insert(v.store.Len())
		v.list.NotifyRangeInserted(v.store.Len()-1, 1)
		v.updateTitle()
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Delete):
		if v.store.Remove(v.list.Cursor()) {
			v.list.NotifyRangeRemoved(v.list.Cursor(), 1)
			v.updateTitle()
		}
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Edit):
		if v.store.Edit(v.list.Cursor()) {
			v.list.NotifyItemChanged(v.list.Cursor())
		}
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Down):
		v.list.NextItem()
		return tview.RedrawCommand{}
	case keybind.Matches(event, v.keys.Up):
		v.list.PrevItem()
		return tview.RedrawCommand{}
	}
	return v.list.InputHandler(event)
}

func (v *jumpView) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if !v.InRect(event.Position()) {
		return nil, nil
	}
	return v.list.MouseHandler(action, event)
}

func (v *jumpView) jump(index int, anchorBottom bool) tview.Command {
	if index < 0 {
		return nil
	}
	if !v.list.JumpTo(index, 0, anchorBottom, true) {
		v.logger.Debug("jump ignored while animating", "index", index)
		return nil
	}
	return tview.AppendCommand(tview.RedrawCommand{}, tview.AnimateCommand{Target: v.list})
}

func (v *jumpView) cycleDirection() {
	scroller := v.list.Scroller()
	next := jumpscroll.DirectionForward
	switch scroller.ScrollDirection() {
	case jumpscroll.DirectionForward:
		next = jumpscroll.DirectionBackward
	case jumpscroll.DirectionBackward:
		next = jumpscroll.DirectionUnset
	}
	scroller.SetScrollDirection(next)
	v.logger.Debug("direction changed", "direction", next)
}

// HasFocus reports focus for the list, which stands in for the whole view.
func (v *jumpView) HasFocus() bool {
	return v.list.HasFocus() || v.Box.HasFocus()
}

func (v *jumpView) Focus(delegate func(p tview.Primitive)) {
	v.Box.Focus(delegate)
	v.list.Focus(delegate)
}

func (v *jumpView) Blur() {
	v.list.Blur()
	v.Box.Blur()
}

// helpOverlay shows the full key map in a bordered box and closes on any
// help or cancel key.
type helpOverlay struct {
	*help.Help

	keys  *keyMap
	close func()
}

func newHelpOverlay(keys *keyMap, closeFn func()) *helpOverlay {
	h := &helpOverlay{Help: help.New(), keys: keys, close: closeFn}
	h.SetKeyMap(keys).SetShowAll(true)
	h.SetBorders(tview.BordersAll).SetTitle(" keys ").SetFooter(" esc to close ")
	return h
}

func (h *helpOverlay) Draw(screen tcell.Screen) {
	x, y, width, height := h.GetRect()
	lines := h.FullHelpLines(h.keys.FullHelp(), width-2)
	boxWidth := 4
	for _, line := range lines {
		boxWidth = max(boxWidth, tview.StringWidth(line)+2)
	}
	boxWidth = min(boxWidth, width)
	boxHeight := min(len(lines)+2, height)
	h.SetRect(x+(width-boxWidth)/2, y+(height-boxHeight)/2, boxWidth, boxHeight)
	h.Help.Draw(screen)
	h.SetRect(x, y, width, height)
}

func (h *helpOverlay) InputHandler(event *tcell.EventKey) tview.Command {
	if keybind.Matches(event, h.keys.Quit) {
		return tview.QuitCommand{}
	}
	if keybind.Matches(event, h.keys.Help, h.keys.Cancel) && h.close != nil {
		h.close()
		return tview.RedrawCommand{}
	}
	return nil
}

// newRoot stacks the full help above the view. The help layer dims the view
// while shown.
func newRoot(view *jumpView) *layers.Layers {
	root := layers.New().SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true).Foreground(tcell.ColorGray))
	view.toggleHelp = func() { root.ToggleLayer(helpLayer) }
	root.
		AddLayer(view, layers.WithName("view"), layers.WithResize(true)).
		AddLayer(newHelpOverlay(&view.keys, func() { root.HideLayer(helpLayer) }),
			layers.WithName(helpLayer), layers.WithResize(true), layers.WithVisible(false), layers.WithOverlay())
	return root
}
