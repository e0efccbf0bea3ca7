// Package help renders key maps as a one-line hint bar or as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/keybind"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

type Help struct {
	*tview.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	showDisabled   bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            tview.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       "…",
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// SetShowAll switches between the short line and the full columns.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	return h
}

// SetShowDisabled renders disabled bindings in the disabled styles instead of
// leaving them out.
func (h *Help) SetShowDisabled(showDisabled bool) *Help {
	h.showDisabled = showDisabled
	return h
}

// SetShortSeparator sets the separator used in short help mode.
func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	return h
}

// SetEllipsis sets the marker appended when bindings are cut. An empty
// ellipsis cuts silently.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	var lines []line
	if h.showAll {
		lines = h.fullHelpSegments(h.keyMap.FullHelp(), width)
	} else {
		lines = []line{h.shortHelpSegments(h.keyMap.ShortHelp(), width)}
	}
	for row := 0; row < len(lines) && row < height; row++ {
		lines[row].draw(screen, x, y+row, width)
	}
}

// FullHelpLines renders grouped help into full mode lines as plain text.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	styled := h.fullHelpSegments(groups, maxWidth)
	lines := make([]string, len(styled))
	for i, l := range styled {
		lines[i] = l.String()
	}
	return lines
}

type segment struct {
	text  string
	style tcell.Style
}

// line is a run of styled text drawn left to right.
type line []segment

func (l line) width() int {
	width := 0
	for _, s := range l {
		width += tview.StringWidth(s.text)
	}
	return width
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

// with returns l followed by more without aliasing l.
func (l line) with(more ...segment) line {
	out := make(line, 0, len(l)+len(more))
	return append(append(out, l...), more...)
}

// padded appends blanks in style until l is width cells wide.
func (l line) padded(width int, style tcell.Style) line {
	if pad := width - l.width(); pad > 0 {
		return append(l, segment{text: strings.Repeat(" ", pad), style: style})
	}
	return l
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		if s.text == "" {
			continue
		}
		_, printed := tview.PrintWithStyle(screen, s.text, x, y, width, tview.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

// entry is one shown binding with its resolved styles.
type entry struct {
	key, desc           string
	keyStyle, descStyle tcell.Style
}

// entries resolves the bindings that are shown. Bindings without help text
// and disabled ones (unless shown) are dropped.
func (h *Help) entries(bindings []keybind.Keybind, keyStyle, descStyle tcell.Style) []entry {
	var out []entry
	for _, kb := range bindings {
		e := entry{keyStyle: keyStyle, descStyle: descStyle}
		if !kb.Enabled() {
			if !h.showDisabled {
				continue
			}
			e.keyStyle, e.descStyle = h.Styles.DisabledKey, h.Styles.DisabledDesc
		}
		help := kb.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		e.key, e.desc = help.Key, help.Desc
		out = append(out, e)
	}
	return out
}

// segments renders "key desc", with keyWidth padding the key column.
func (e entry) segments(keyWidth int, padStyle tcell.Style) line {
	var l line
	if e.key != "" {
		l = append(l, segment{text: e.key, style: e.keyStyle})
	}
	l = l.padded(keyWidth, padStyle)
	if e.key != "" && e.desc != "" {
		l = append(l, segment{text: " ", style: e.descStyle})
	}
	if e.desc != "" {
		l = append(l, segment{text: e.desc, style: e.descStyle})
	}
	return l
}

func (h *Help) shortHelpSegments(bindings []keybind.Keybind, maxWidth int) line {
	sep := segment{text: orSpace(h.shortSeparator), style: h.Styles.Short.Separator}

	var out line
	for i, e := range h.entries(bindings, h.Styles.Short.Key, h.Styles.Short.Desc) {
		item := e.segments(0, h.Styles.Short.Key)
		candidate := item
		if i > 0 {
			candidate = out.with(sep).with(item...)
		}
		if maxWidth > 0 && candidate.width() > maxWidth {
			if i == 0 {
				return nil
			}
			return out.with(h.truncationTail(out, maxWidth)...)
		}
		out = candidate
	}
	return out
}

type column struct {
	entries  []entry
	keyWidth int
	width    int // widest row, so separators stay aligned
}

func (h *Help) columns(groups [][]keybind.Keybind) []column {
	var columns []column
	for _, group := range groups {
		col := column{entries: h.entries(group, h.Styles.Full.Key, h.Styles.Full.Desc)}
		if len(col.entries) == 0 {
			continue
		}
		for _, e := range col.entries {
			col.keyWidth = max(col.keyWidth, tview.StringWidth(e.key))
		}
		for _, e := range col.entries {
			col.width = max(col.width, e.segments(col.keyWidth, h.Styles.Full.Key).width())
		}
		columns = append(columns, col)
	}
	return columns
}

func (h *Help) fullHelpSegments(groups [][]keybind.Keybind, maxWidth int) []line {
	columns := h.columns(groups)
	if len(columns) == 0 {
		return nil
	}
	sep := segment{text: orSpace(h.fullSeparator), style: h.Styles.Full.Separator}
	sepWidth := tview.StringWidth(sep.text)

	// Columns are taken left to right until the next one would overflow.
	included, total := 0, 0
	for i, col := range columns {
		next := col.width
		if i > 0 {
			next += sepWidth
		}
		if maxWidth > 0 && total+next > maxWidth {
			break
		}
		included++
		total += next
	}
	if included == 0 {
		return []line{{{text: h.ellipsis, style: h.Styles.Ellipsis}}}
	}
	truncated := included < len(columns)
	columns = columns[:included]

	rows := 0
	for _, col := range columns {
		rows = max(rows, len(col.entries))
	}
	lines := make([]line, rows)
	for row := range lines {
		var l line
		for i, col := range columns {
			if i > 0 {
				l = append(l, sep)
			}
			var cell line
			if row < len(col.entries) {
				cell = col.entries[row].segments(col.keyWidth, h.Styles.Full.Key)
			}
			// Blank rows keep their width so separators do not drift. The last
			// column is left ragged.
			if i < len(columns)-1 || row >= len(col.entries) {
				cell = cell.padded(col.width, h.Styles.Full.Desc)
			}
			l = append(l, cell...)
		}
		lines[row] = l
	}

	if truncated {
		lines[0] = lines[0].with(h.truncationTail(lines[0], maxWidth)...)
	}
	return lines
}

// truncationTail returns " …" when it fits after current. A clipped ellipsis
// looks broken, so nothing is returned otherwise.
func (h *Help) truncationTail(current line, maxWidth int) line {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	tail := line{{text: " ", style: h.Styles.Ellipsis}, {text: h.ellipsis, style: h.Styles.Ellipsis}}
	if current.width()+tail.width() <= maxWidth {
		return tail
	}
	return nil
}

func orSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}
