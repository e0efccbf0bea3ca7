package tview

// BorderSet holds the glyphs of a box border.
type BorderSet struct {
	Top, Bottom, Left, Right                   string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

func lineBorderSet(horizontal, vertical, topLeft, topRight, bottomLeft, bottomRight string) BorderSet {
	return BorderSet{
		Top:         horizontal,
		Bottom:      horizontal,
		Left:        vertical,
		Right:       vertical,
		TopLeft:     topLeft,
		TopRight:    topRight,
		BottomLeft:  bottomLeft,
		BottomRight: bottomRight,
	}
}

// BorderSetPlain uses light lines with square corners.
func BorderSetPlain() BorderSet {
	return lineBorderSet(BoxDrawingsLightHorizontal, BoxDrawingsLightVertical,
		BoxDrawingsLightDownAndRight, BoxDrawingsLightDownAndLeft,
		BoxDrawingsLightUpAndRight, BoxDrawingsLightUpAndLeft)
}

// BorderSetRound uses light lines with arc corners.
func BorderSetRound() BorderSet {
	return lineBorderSet(BoxDrawingsLightHorizontal, BoxDrawingsLightVertical,
		BoxDrawingsLightArcDownAndRight, BoxDrawingsLightArcDownAndLeft,
		BoxDrawingsLightArcUpAndRight, BoxDrawingsLightArcUpAndLeft)
}

// BorderSetThick uses heavy lines.
func BorderSetThick() BorderSet {
	return lineBorderSet(BoxDrawingsHeavyHorizontal, BoxDrawingsHeavyVertical,
		BoxDrawingsHeavyDownAndRight, BoxDrawingsHeavyDownAndLeft,
		BoxDrawingsHeavyUpAndRight, BoxDrawingsHeavyUpAndLeft)
}

var borderSets = map[string]func() BorderSet{
	"plain": BorderSetPlain,
	"round": BorderSetRound,
	"thick": BorderSetThick,
}

// BorderSetByName resolves plain, round and thick.
func BorderSetByName(name string) (BorderSet, bool) {
	if set, ok := borderSets[name]; ok {
		return set(), true
	}
	return BorderSet{}, false
}

// Borders selects the sides of a box that get a border.
type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether any side in flag is set.
func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}
