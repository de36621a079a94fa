package font

// Align specifies text alignment. One horizontal and one vertical flag
// may be combined.
type Align int

const (
	// AlignLeft aligns the left edge of the text to x (default).
	AlignLeft Align = 1 << iota
	// AlignCenter centers the text on x.
	AlignCenter
	// AlignRight aligns the right edge of the text to x.
	AlignRight
	// AlignTop aligns the ascender line to y.
	AlignTop
	// AlignMiddle aligns the middle between ascender and descender to y.
	AlignMiddle
	// AlignBottom aligns the descender line to y.
	AlignBottom
	// AlignBaseline aligns the baseline to y (default).
	AlignBaseline
)

const (
	horizontalMask = AlignLeft | AlignCenter | AlignRight
	verticalMask   = AlignTop | AlignMiddle | AlignBottom | AlignBaseline
)

// DefaultAlign is left-baseline alignment.
const DefaultAlign = AlignLeft | AlignBaseline

// Horizontal returns the horizontal component, AlignLeft if unset.
func (a Align) Horizontal() Align {
	switch {
	case a&AlignCenter != 0:
		return AlignCenter
	case a&AlignRight != 0:
		return AlignRight
	default:
		return AlignLeft
	}
}

// Vertical returns the vertical component, AlignBaseline if unset.
func (a Align) Vertical() Align {
	switch {
	case a&AlignTop != 0:
		return AlignTop
	case a&AlignMiddle != 0:
		return AlignMiddle
	case a&AlignBottom != 0:
		return AlignBottom
	default:
		return AlignBaseline
	}
}

func (a Align) String() string {
	names := map[Align]string{
		AlignLeft: "Left", AlignCenter: "Center", AlignRight: "Right",
		AlignTop: "Top", AlignMiddle: "Middle", AlignBottom: "Bottom", AlignBaseline: "Baseline",
	}
	return names[a.Horizontal()] + "|" + names[a.Vertical()]
}
