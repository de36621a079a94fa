package font

import "math"

// Row is one line produced by BreakLines. Start and End delimit the
// visible text of the row as byte offsets; Next is where the following
// row begins.
type Row struct {
	Start, End, Next int

	// Width is the logical width of the row; MinX and MaxX are its ink
	// extents relative to the row start.
	Width, MinX, MaxX float64
}

type breakClass uint8

const (
	breakSpace breakClass = iota
	breakNewline
	breakChar
	breakCJK
)

func (c breakClass) isChar() bool { return c == breakChar || c == breakCJK }

// classify returns the break class of r given the previous rune. A CR LF
// or LF CR pair counts as a single newline.
func classify(r, prev rune) breakClass {
	switch r {
	case '\t', '\v', '\f', ' ', 0x00a0:
		return breakSpace
	case '\n':
		if prev == '\r' {
			return breakSpace
		}
		return breakNewline
	case '\r':
		if prev == '\n' {
			return breakSpace
		}
		return breakNewline
	case 0x0085:
		return breakNewline
	}
	if isCJKRune(r) {
		return breakCJK
	}
	return breakChar
}

// isCJKRune reports whether r is an ideograph or syllable that may break
// on either side.
func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3000 && r <= 0x30FF) || // CJK punctuation, Hiragana, Katakana
		(r >= 0x1100 && r <= 0x11FF) || // Hangul Jamo
		(r >= 0x3130 && r <= 0x318F) || // Hangul Compatibility Jamo
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth forms
}

// BreakLines splits s into rows no wider than breakWidth. Rows break at
// newlines, after spaces, and around CJK characters; a word longer than
// breakWidth is split between characters. Leading white space of a row
// is skipped. It fills dst and returns the number of rows written, at
// most len(dst); callers continue from the last row's Next.
func (r *Registry) BreakLines(style Style, s string, breakWidth float64, dst []Row) (int, error) {
	if len(dst) == 0 || s == "" {
		return 0, nil
	}
	style.Align = AlignLeft | AlignBaseline
	glyphs, _, err := r.layout(style, 0, 0, s, nil, false)
	if err != nil {
		return 0, err
	}

	n := 0
	emit := func(row Row) bool {
		dst[n] = row
		n++
		return n == len(dst)
	}

	var (
		rowStartX, rowWidth, rowMinX, rowMaxX = 0.0, 0.0, 0.0, 0.0
		rowStart, rowEnd                      = -1, -1
		wordStart, breakEnd                   = -1, -1
		wordStartX, wordMinX                  float64
		breakWidthSoFar, breakMaxX            float64
		ptype                                 = breakSpace
		prev                                  rune
	)
	startRow := func(g Glyph, x0, x1 float64) {
		rowStartX = g.X
		rowStart = g.Index
		rowEnd = g.Next
		rowWidth = g.X + g.Advance - rowStartX
		rowMinX = x0 - rowStartX
		rowMaxX = x1 - rowStartX
		wordStart = g.Index
		wordStartX = g.X
		wordMinX = x0
	}

	for _, g := range glyphs {
		typ := classify(g.Rune, prev)
		x0, x1 := r.glyphExtents(style, g)
		nextX := g.X + g.Advance

		switch {
		case typ == breakNewline:
			row := Row{Start: g.Index, End: g.Index, Next: g.Next}
			if rowStart >= 0 {
				row.Start, row.End = rowStart, rowEnd
				row.Width, row.MinX, row.MaxX = rowWidth, rowMinX, rowMaxX
			}
			if emit(row) {
				return n, nil
			}
			rowStart, rowEnd = -1, -1
			rowWidth, rowMinX, rowMaxX = 0, 0, 0
			breakEnd, breakWidthSoFar, breakMaxX = -1, 0, 0

		case rowStart < 0:
			if typ.isChar() {
				startRow(g, x0, x1)
				breakEnd, breakWidthSoFar, breakMaxX = rowStart, 0, 0
			}

		default:
			if (ptype.isChar() && typ == breakSpace) || typ == breakCJK {
				breakEnd = g.Index
				breakWidthSoFar = rowWidth
				breakMaxX = rowMaxX
			}
			if (ptype == breakSpace && typ.isChar()) || typ == breakCJK {
				wordStart = g.Index
				wordStartX = g.X
				wordMinX = x0
			}
			if !typ.isChar() {
				break
			}
			if nextX-rowStartX <= breakWidth {
				rowEnd = g.Next
				rowWidth = nextX - rowStartX
				rowMaxX = math.Max(rowMaxX, x1-rowStartX)
				break
			}
			if breakEnd == rowStart {
				// The word does not fit on a row; split it here.
				if emit(Row{Start: rowStart, End: g.Index, Next: g.Index,
					Width: rowWidth, MinX: rowMinX, MaxX: rowMaxX}) {
					return n, nil
				}
				startRow(g, x0, x1)
			} else {
				if emit(Row{Start: rowStart, End: breakEnd, Next: wordStart,
					Width: breakWidthSoFar, MinX: rowMinX, MaxX: breakMaxX}) {
					return n, nil
				}
				rowStartX = wordStartX
				rowStart = wordStart
				rowEnd = g.Next
				rowWidth = nextX - rowStartX
				rowMinX = wordMinX - rowStartX
				rowMaxX = x1 - rowStartX
			}
			breakEnd, breakWidthSoFar, breakMaxX = rowStart, 0, 0
		}
		prev = g.Rune
		ptype = typ
	}

	if rowStart >= 0 {
		emit(Row{Start: rowStart, End: rowEnd, Next: len(s),
			Width: rowWidth, MinX: rowMinX, MaxX: rowMaxX})
	}
	return n, nil
}
