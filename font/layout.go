package font

import (
	"math"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Style selects the font and size used by layout queries.
type Style struct {
	Font          ID
	Size          float64
	Blur          float64
	LetterSpacing float64
	Align         Align

	// Scale is the number of device pixels per layout unit. Glyphs are
	// rasterized at Size*Scale. Zero means 1.
	Scale float64
}

func (s Style) scale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// Glyph is a positioned glyph of a laid-out string.
type Glyph struct {
	Font ID
	ID   GlyphID
	Rune rune

	// Index and Next are the byte offsets of the source rune and of the
	// rune that follows it in the input string.
	Index, Next int

	// X and Y are the pen position on the baseline; the glyph is drawn at
	// (X+XOffset, Y+YOffset).
	X, Y             float64
	XOffset, YOffset float64
	Advance          float64
}

// GlyphPosition is the result of a glyph position query.
type GlyphPosition struct {
	// Index is the byte offset of the glyph's rune in the input string.
	Index int
	// X is the pen position of the glyph.
	X float64
	// MinX and MaxX are the horizontal extents of the glyph, including
	// its advance.
	MinX, MaxX float64
}

type runeItem struct {
	r     rune
	index int
	next  int
}

// normalize converts s to NFC, keeping the byte offset of the source
// segment each rune came from.
func normalize(s string, dst []runeItem) []runeItem {
	var it norm.Iter
	it.InitString(norm.NFC, s)
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		end := it.Pos()
		for len(seg) > 0 {
			r, n := utf8.DecodeRune(seg)
			seg = seg[n:]
			dst = append(dst, runeItem{r: r, index: start, next: end})
		}
	}
	return dst
}

// Metrics returns the vertical metrics of the style's font.
func (r *Registry) Metrics(style Style) (Metrics, error) {
	e := r.get(style.Font)
	if e == nil {
		return Metrics{}, ErrInvalidHandle
	}
	return e.face.Metrics(style.Size), nil
}

// verticalOffset returns the baseline shift for the vertical alignment.
func verticalOffset(m Metrics, a Align) float64 {
	switch a.Vertical() {
	case AlignTop:
		return m.Ascender
	case AlignMiddle:
		return (m.Ascender + m.Descender) / 2
	case AlignBottom:
		return m.Descender
	default:
		return 0
	}
}

// Layout positions the glyphs of s with the pen starting at (x, y) and
// applies the style's alignment. Mixed-direction text is reordered for
// display. It returns the glyphs appended to dst and the pen position
// after the last glyph.
func (r *Registry) Layout(style Style, x, y float64, s string, dst []Glyph) ([]Glyph, float64, error) {
	return r.layout(style, x, y, s, dst, true)
}

// layout is Layout. With visual false, glyphs stay in logical order and
// right-to-left runs advance left to right.
func (r *Registry) layout(style Style, x, y float64, s string, dst []Glyph, visual bool) ([]Glyph, float64, error) {
	e := r.get(style.Font)
	if e == nil {
		return dst, x, ErrInvalidHandle
	}
	start := len(dst)
	items := normalize(s, nil)
	dst, end, err := r.place(style, items, x, dst, visual)
	if err != nil {
		return dst, x, err
	}

	dx := 0.0
	switch style.Align.Horizontal() {
	case AlignCenter:
		dx = -(end - x) / 2
	case AlignRight:
		dx = -(end - x)
	}
	dy := verticalOffset(e.face.Metrics(style.Size), style.Align)
	for i := start; i < len(dst); i++ {
		dst[i].X += dx
		dst[i].Y = y + dy
	}
	return dst, end + dx, nil
}

type resolvedGlyph struct {
	font ID
	id   GlyphID
}

// place appends unaligned glyphs for items starting at pen x.
func (r *Registry) place(style Style, items []runeItem, x float64, dst []Glyph, visual bool) ([]Glyph, float64, error) {
	res := make([]resolvedGlyph, len(items))
	for i, it := range items {
		fid, gid, err := r.Resolve(style.Font, it.r)
		if err != nil {
			return dst, x, err
		}
		res[i] = resolvedGlyph{fid, gid}
	}

	runs := segment(items)
	order := make([]int, len(runs))
	for i := range order {
		order[i] = i
	}
	if visual {
		order = visualOrder(runs)
	}
	for _, ri := range order {
		run := runs[ri]
		var spans [][2]int
		for i := run.start; i < run.end; {
			j := i + 1
			for j < run.end && res[j].font == res[i].font {
				j++
			}
			spans = append(spans, [2]int{i, j})
			i = j
		}
		if run.rtl() && visual {
			slices.Reverse(spans)
		}
		for _, sp := range spans {
			first := len(dst)
			var w float64
			dst, w = r.shapeRun(style, items[sp[0]:sp[1]], res[sp[0]:sp[1]], run, dst)
			if run.rtl() && !visual {
				slices.Reverse(dst[first:])
				for k := first; k < len(dst); k++ {
					dst[k].X = w - dst[k].X - dst[k].Advance
				}
			}
			for k := first; k < len(dst); k++ {
				dst[k].X += x
			}
			x += w
		}
	}
	return dst, x, nil
}

// shapeRun appends the glyphs of a run that resolved to one font, in
// visual order with pen positions relative to the run start. It returns
// the run advance.
func (r *Registry) shapeRun(style Style, items []runeItem, res []resolvedGlyph, run textRun, dst []Glyph) ([]Glyph, float64) {
	face := r.get(res[0].font).face
	x := 0.0
	if r.shaper != nil {
		runes := make([]rune, len(items))
		for k, it := range items {
			runes[k] = it.r
		}
		if shaped, ok := r.shaper.shape(face, runes, style.Size, run.direction(), run.script); ok {
			for _, sg := range shaped {
				it := items[sg.item]
				dst = append(dst, Glyph{
					Font: res[0].font, ID: sg.id, Rune: it.r,
					Index: it.index, Next: it.next,
					X: x, XOffset: sg.xOffset, YOffset: sg.yOffset,
					Advance: sg.advance + style.LetterSpacing,
				})
				x += sg.advance + style.LetterSpacing
			}
			return dst, x
		}
	}

	var prev GlyphID
	for n := range items {
		k := n
		if run.rtl() {
			k = len(items) - 1 - n
		}
		gid := res[k].id
		if n > 0 {
			x += face.Kern(prev, gid, style.Size)
		}
		adv := face.Advance(gid, style.Size) + style.LetterSpacing
		dst = append(dst, Glyph{
			Font: res[k].font, ID: gid, Rune: items[k].r,
			Index: items[k].index, Next: items[k].next,
			X: x, Advance: adv,
		})
		x += adv
		prev = gid
	}
	return dst, x
}

// glyphExtents returns the horizontal extent of g including its advance.
func (r *Registry) glyphExtents(style Style, g Glyph) (minX, maxX float64) {
	minX, maxX = g.X, g.X+g.Advance
	if e := r.get(g.Font); e != nil {
		x0, _, x1, _ := e.face.Bounds(g.ID, style.Size)
		if x1 > x0 {
			minX = math.Min(minX, g.X+g.XOffset+x0)
			maxX = math.Max(maxX, g.X+g.XOffset+x1)
		}
	}
	return minX, maxX
}

// GlyphPositions writes the positions of the glyphs of s into dst and
// returns the number written, at most len(dst).
func (r *Registry) GlyphPositions(style Style, x, y float64, s string, dst []GlyphPosition) (int, error) {
	if len(dst) == 0 || s == "" {
		return 0, nil
	}
	glyphs, _, err := r.Layout(style, x, y, s, nil)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, g := range glyphs {
		if n == len(dst) {
			break
		}
		minX, maxX := r.glyphExtents(style, g)
		dst[n] = GlyphPosition{Index: g.Index, X: g.X, MinX: minX, MaxX: maxX}
		n++
	}
	return n, nil
}

// TextBounds measures s drawn at (x, y). It returns the horizontal
// advance and the bounds [minX, minY, maxX, maxY]. The vertical bounds
// span the line box of the style's font.
func (r *Registry) TextBounds(style Style, x, y float64, s string) (float64, [4]float64, error) {
	e := r.get(style.Font)
	if e == nil {
		return 0, [4]float64{}, ErrInvalidHandle
	}
	glyphs, end, err := r.Layout(style, x, y, s, nil)
	if err != nil {
		return 0, [4]float64{}, err
	}
	m := e.face.Metrics(style.Size)
	base := y + verticalOffset(m, style.Align)
	minX, maxX := end, end
	if len(glyphs) > 0 {
		minX, maxX = glyphs[0].X, glyphs[0].X
	}
	for _, g := range glyphs {
		gx0, gx1 := r.glyphExtents(style, g)
		minX = math.Min(minX, gx0)
		maxX = math.Max(maxX, gx1)
	}
	advance := end - x
	if len(glyphs) > 0 {
		advance = end - glyphs[0].X
	}
	minY := base - m.Ascender
	return advance, [4]float64{minX, minY, maxX, minY + m.LineHeight()}, nil
}
