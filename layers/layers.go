package layers

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/tview"
)

type layer struct {
	name    string
	item    tview.Primitive
	resize  bool // Resized to the container's inner rect on every draw.
	visible bool
	enabled bool // Receives focus and input.
	overlay bool // Styles the layers behind it while visible.
}

func (l *layer) active() bool {
	return l.visible && l.enabled
}

// Layers is a container for primitives stacked on top of each other. Layers
// are drawn from back to front. The front-most active overlay layer styles
// everything behind it, which is how modal help and dialogs dim the list.
type Layers struct {
	*tview.Box

	layers []*layer

	// backgroundLayerStyle is merged into every cell drawn behind the active
	// overlay layer.
	backgroundLayerStyle tcell.Style

	// setFocus moves focus to a newly visible layer.
	setFocus func(p tview.Primitive)
}

// Option configures a layer on AddLayer.
type Option func(*layer)

// WithName sets the layer's name.
func WithName(name string) Option {
	return func(l *layer) { l.name = name }
}

// WithResize sets whether the layer is resized to the container's inner rect.
func WithResize(resize bool) Option {
	return func(l *layer) { l.resize = resize }
}

// WithVisible sets the initial visibility of the layer.
func WithVisible(visible bool) Option {
	return func(l *layer) { l.visible = visible }
}

// WithEnabled sets whether the layer can receive focus and input. Disabled
// layers are still drawn and still animate.
func WithEnabled(enabled bool) Option {
	return func(l *layer) { l.enabled = enabled }
}

// WithOverlay marks this layer as an overlay layer.
func WithOverlay() Option {
	return func(l *layer) { l.overlay = true }
}

// New returns a new Layers object.
func New() *Layers {
	return &Layers{
		Box:                  tview.NewBox(),
		backgroundLayerStyle: tcell.StyleDefault.Dim(true),
	}
}

// GetLayerNames returns all layer names ordered from front to back,
// optionally limited to visible layers.
func (l *Layers) GetLayerNames(visibleOnly bool) []string {
	var names []string
	for _, layer := range slices.Backward(l.layers) {
		if !visibleOnly || layer.visible {
			names = append(names, layer.name)
		}
	}
	return names
}

// GetVisible returns whether the given layer is visible.
func (l *Layers) GetVisible(name string) bool {
	layer := l.find(name)
	return layer != nil && layer.visible
}

// AddLayer adds a new layer for the given primitive. A layer with the same
// name is replaced.
func (l *Layers) AddLayer(item tview.Primitive, opts ...Option) *Layers {
	added := &layer{item: item, visible: true, enabled: true}
	for _, opt := range opts {
		if opt != nil {
			opt(added)
		}
	}
	return l.keepFocus(func() {
		if added.name != "" {
			l.layers = slices.DeleteFunc(l.layers, func(layer *layer) bool { return layer.name == added.name })
		}
		l.layers = append(l.layers, added)
	})
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	return l.keepFocus(func() {
		if index := l.index(name); index >= 0 {
			l.layers = slices.Delete(l.layers, index, index+1)
		}
	})
}

// HasLayer returns true if a layer with the given name exists in this object.
func (l *Layers) HasLayer(name string) bool {
	return l.index(name) >= 0
}

// ShowLayer makes a layer visible in addition to the layers already shown.
func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

// HideLayer hides a layer.
func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

// ToggleLayer flips a layer's visibility.
func (l *Layers) ToggleLayer(name string) *Layers {
	return l.setVisible(name, !l.GetVisible(name))
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	return l.keepFocus(func() {
		if layer := l.find(name); layer != nil {
			layer.visible = visible
		}
	})
}

// keepFocus runs change and hands focus to the new front layer if the
// container held it before.
func (l *Layers) keepFocus(change func()) *Layers {
	hasFocus := l.HasFocus()
	change()
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// GetFrontLayer returns the front-most visible layer. If there are no visible
// layers, ("", nil) is returned.
func (l *Layers) GetFrontLayer() (name string, item tview.Primitive) {
	if index := l.front(func(layer *layer) bool { return layer.visible }); index >= 0 {
		return l.layers[index].name, l.layers[index].item
	}
	return "", nil
}

// GetLayer returns the layer with the given name, or nil.
func (l *Layers) GetLayer(name string) tview.Primitive {
	if layer := l.find(name); layer != nil {
		return layer.item
	}
	return nil
}

// SetBackgroundLayerStyle sets the style applied to layers behind the active
// overlay layer.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	l.backgroundLayerStyle = style
	return l
}

func (l *Layers) index(name string) int {
	return slices.IndexFunc(l.layers, func(layer *layer) bool { return layer.name == name })
}

func (l *Layers) find(name string) *layer {
	if index := l.index(name); index >= 0 {
		return l.layers[index]
	}
	return nil
}

// front returns the index of the front-most layer matching match, or -1.
func (l *Layers) front(match func(*layer) bool) int {
	for index, layer := range slices.Backward(l.layers) {
		if match(layer) {
			return index
		}
	}
	return -1
}

// overlayIndex returns the front-most active overlay layer. Only one overlay
// applies at a time.
func (l *Layers) overlayIndex() int {
	return l.front(func(layer *layer) bool { return layer.active() && layer.overlay })
}

// focused returns the enabled layer holding focus, or nil.
func (l *Layers) focused() *layer {
	for _, layer := range l.layers {
		if layer.enabled && layer.item.HasFocus() {
			return layer
		}
	}
	return nil
}

// IsAnimating reports whether any visible layer is animating.
func (l *Layers) IsAnimating() bool {
	for _, layer := range l.layers {
		if a, ok := layer.item.(tview.Animated); ok && layer.visible && a.IsAnimating() {
			return true
		}
	}
	return false
}

// HasFocus returns whether or not this primitive has focus.
func (l *Layers) HasFocus() bool {
	return l.focused() != nil || l.Box.HasFocus()
}

// Focus hands focus to the front-most active layer.
func (l *Layers) Focus(delegate func(p tview.Primitive)) {
	if delegate == nil {
		return
	}
	l.setFocus = delegate
	if index := l.front((*layer).active); index >= 0 {
		delegate(l.layers[index].item)
		return
	}
	l.Box.Focus(delegate)
}

// Draw draws this primitive onto the screen.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	overlay := l.overlayIndex()
	behind := screen
	if overlay >= 0 {
		// Only cells actually touched get styled.
		behind = &overlayScreen{Screen: screen, overlay: l.backgroundLayerStyle}
	}
	x, y, width, height := l.GetInnerRect()
	for index, layer := range l.layers {
		if !layer.visible {
			continue
		}
		if layer.resize {
			layer.item.SetRect(x, y, width, height)
		}
		if index < overlay {
			layer.item.Draw(behind)
		} else {
			layer.item.Draw(screen)
		}
	}
}

// MouseHandler passes mouse events to the front-most active layer that takes
// them, but never to layers behind an active overlay layer.
func (l *Layers) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}

	overlay := l.overlayIndex()
	for index := len(l.layers) - 1; index >= 0 && index >= overlay; index-- {
		layer := l.layers[index]
		if !layer.active() {
			continue
		}
		if capture, cmd := layer.item.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}

	// The overlay swallows clicks it did not take itself.
	if overlay >= 0 {
		return nil, tview.ConsumeEventCommand{}
	}
	return nil, nil
}

// InputHandler passes key events to the focused layer.
func (l *Layers) InputHandler(event *tcell.EventKey) tview.Command {
	if layer := l.focused(); layer != nil {
		return layer.item.InputHandler(event)
	}
	return nil
}

// PasteHandler passes pasted text to the focused layer.
func (l *Layers) PasteHandler(text string) tview.Command {
	if layer := l.focused(); layer != nil {
		return layer.item.PasteHandler(text)
	}
	return nil
}

type overlayScreen struct {
	tcell.Screen
	overlay tcell.Style
}

func (s *overlayScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, applyBackgroundStyle(style, s.overlay))
}

// applyBackgroundStyle merges the overlay into base. Overlay colors apply only
// when set; attributes are added, never removed.
func applyBackgroundStyle(base tcell.Style, overlay tcell.Style) tcell.Style {
	overlayFg, overlayBg, overlayAttrs := overlay.Decompose()
	_, _, baseAttrs := base.Decompose()
	if overlayFg != tcell.ColorDefault {
		base = base.Foreground(overlayFg)
	}
	if overlayBg != tcell.ColorDefault {
		base = base.Background(overlayBg)
	}
	return base.Attributes(baseAttrs | overlayAttrs)
}

var (
	_ tview.Primitive = &Layers{}
	_ tview.Animated  = &Layers{}
)
