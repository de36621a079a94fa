package nvg

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/font"
)

// GlyphPosition is the position of one glyph of a measured string.
type GlyphPosition = font.GlyphPosition

// TextRow is one row produced by TextBreakLines.
type TextRow = font.Row

// FontSize sets the font size in user units.
func (c *Context) FontSize(size float64) {
	if st := c.mutate("FontSize"); st != nil {
		st.FontSize = size
	}
}

// FontBlur sets the blur radius of text.
func (c *Context) FontBlur(blur float64) {
	if st := c.mutate("FontBlur"); st != nil {
		st.FontBlur = blur
	}
}

// TextLetterSpacing sets the extra space between characters.
func (c *Context) TextLetterSpacing(spacing float64) {
	if st := c.mutate("TextLetterSpacing"); st != nil {
		st.LetterSpacing = spacing
	}
}

// TextLineHeight sets the line height of TextBox as a multiple of the
// font's line height.
func (c *Context) TextLineHeight(lineHeight float64) {
	if st := c.mutate("TextLineHeight"); st != nil {
		st.LineHeight = lineHeight
	}
}

// TextAlign sets the text alignment.
func (c *Context) TextAlign(align Align) {
	if st := c.mutate("TextAlign"); st != nil {
		st.TextAlign = align
	}
}

// FontFaceID selects the font used for text.
func (c *Context) FontFaceID(id FontID) {
	if st := c.mutate("FontFaceID"); st != nil {
		st.Font = id
	}
}

// FontFace selects the font registered under name. An unknown name
// clears the selection and reports ErrInvalidHandle.
func (c *Context) FontFace(name string) {
	st := c.mutate("FontFace")
	if st == nil {
		return
	}
	st.Font = c.fonts.Find(name)
	if !st.Font.Valid() {
		c.report(fmt.Errorf("%w: font %q", ErrInvalidHandle, name))
	}
}

// textStyle returns the layout style of the active state. A deleted font
// is cleared from the state.
func (c *Context) textStyle(op string) (*RenderState, font.Style, bool) {
	st := c.states.top()
	if !st.Font.Valid() {
		c.report(usage(op, errNoFont))
		return st, font.Style{}, false
	}
	if !c.fonts.Contains(st.Font) {
		c.report(fmt.Errorf("%w: font %d", ErrInvalidHandle, st.Font))
		st.Font = InvalidFont
		return st, font.Style{}, false
	}
	return st, font.Style{
		Font:          st.Font,
		Size:          st.FontSize,
		Blur:          st.FontBlur,
		LetterSpacing: st.LetterSpacing,
		Align:         st.TextAlign,
		Scale:         st.Transform.AverageScale() * c.dpr,
	}, true
}

// Text draws s at (x, y) and returns the x position after the last
// glyph.
func (c *Context) Text(x, y float64, s string) float64 {
	if !c.frameOp("Text") {
		return x
	}
	st, style, ok := c.textStyle("Text")
	if !ok {
		return x
	}
	return c.drawText(st, style, x, y, s)
}

func (c *Context) drawText(st *RenderState, style font.Style, x, y float64, s string) float64 {
	glyphs, end, err := c.fonts.Layout(style, x, y, s, c.glyphBuf[:0])
	c.glyphBuf = glyphs
	if err != nil {
		c.report(fmt.Errorf("nvg: Text: %w", err))
		return x
	}
	bp, ok := c.backendPaint(&st.Fill, st.Alpha)
	if !ok {
		return end
	}

	b := textBatch{c: c, st: st, paint: bp}
	for _, g := range glyphs {
		q, ok, err := c.fonts.GlyphQuad(style, g)
		if errors.Is(err, font.ErrAtlasFull) {
			b.flush()
			if !c.growAtlas() {
				c.report(fmt.Errorf("nvg: Text: %w", err))
				break
			}
			q, ok, err = c.fonts.GlyphQuad(style, g)
		}
		if err != nil {
			c.report(fmt.Errorf("nvg: Text: %w", err))
			break
		}
		if ok {
			b.add(q)
		}
	}
	b.flush()
	return end
}

// textBatch collects glyph quads that share an atlas page and mode.
type textBatch struct {
	c     *Context
	st    *RenderState
	paint backend.Paint
	mode  backend.GlyphMode
}

func (b *textBatch) add(q font.Quad) {
	mode := glyphMode(q.Mode, q.Color)
	if mode != b.mode && len(b.c.vertBuf) > 0 {
		b.flush()
	}
	b.mode = mode
	xf := b.st.Transform
	corner := func(x, y, u, v float64) backend.Vertex {
		px, py := xf.Apply(x, y)
		return backend.Vertex{X: px, Y: py, U: u, V: v}
	}
	v0 := corner(q.X0, q.Y0, q.S0, q.T0)
	v1 := corner(q.X1, q.Y0, q.S1, q.T0)
	v2 := corner(q.X1, q.Y1, q.S1, q.T1)
	v3 := corner(q.X0, q.Y1, q.S0, q.T1)
	b.c.vertBuf = append(b.c.vertBuf, v0, v1, v2, v0, v2, v3)
}

func (b *textBatch) flush() {
	c := b.c
	if len(c.vertBuf) == 0 {
		return
	}
	verts := make([]backend.Vertex, len(c.vertBuf))
	copy(verts, c.vertBuf)
	c.vertBuf = c.vertBuf[:0]
	c.be.Triangles(&backend.TrianglesCall{
		Paint:   b.paint,
		Blend:   b.st.Composite.blend(),
		Scissor: b.st.Scissor.backend(),
		Mode:    b.mode,
		Texture: c.pages[len(c.pages)-1].tex,
		Verts:   verts,
	})
	c.stats.DrawCalls++
	c.stats.TextTriangles += len(verts) / 3
}

// TextBox draws s as multiple lines wrapped at breakRowWidth. The
// horizontal alignment aligns each row within the box; the vertical
// alignment applies to each row's baseline.
func (c *Context) TextBox(x, y, breakRowWidth float64, s string) {
	if !c.frameOp("TextBox") {
		return
	}
	st, style, ok := c.textStyle("TextBox")
	if !ok {
		return
	}
	halign := style.Align.Horizontal()
	style.Align = AlignLeft | style.Align.Vertical()
	m, err := c.fonts.Metrics(style)
	if err != nil {
		c.report(fmt.Errorf("nvg: TextBox: %w", err))
		return
	}
	lineh := m.LineHeight() * st.LineHeight

	var rows [2]TextRow
	for s != "" {
		n, err := c.fonts.BreakLines(style, s, breakRowWidth, rows[:])
		if err != nil {
			c.report(fmt.Errorf("nvg: TextBox: %w", err))
			return
		}
		if n == 0 {
			break
		}
		for _, row := range rows[:n] {
			c.drawText(st, style, x+rowOffset(halign, breakRowWidth, row.Width), y, s[row.Start:row.End])
			y += lineh
		}
		next := rows[n-1].Next
		if next <= 0 {
			break
		}
		s = s[next:]
	}
}

func rowOffset(halign Align, boxWidth, rowWidth float64) float64 {
	switch halign {
	case AlignCenter:
		return boxWidth*0.5 - rowWidth*0.5
	case AlignRight:
		return boxWidth - rowWidth
	default:
		return 0
	}
}

// TextBounds measures s drawn at (x, y). It returns the horizontal
// advance and the bounds [xmin, ymin, xmax, ymax].
func (c *Context) TextBounds(x, y float64, s string) (float64, [4]float64) {
	_, style, ok := c.textStyle("TextBounds")
	if !ok {
		return 0, [4]float64{}
	}
	adv, b, err := c.fonts.TextBounds(style, x, y, s)
	if err != nil {
		c.report(fmt.Errorf("nvg: TextBounds: %w", err))
		return 0, [4]float64{}
	}
	return adv, b
}

// TextBoxBounds returns the bounds [xmin, ymin, xmax, ymax] of the text
// TextBox would draw.
func (c *Context) TextBoxBounds(x, y, breakRowWidth float64, s string) [4]float64 {
	st, style, ok := c.textStyle("TextBoxBounds")
	if !ok {
		return [4]float64{}
	}
	halign := style.Align.Horizontal()
	style.Align = AlignLeft | style.Align.Vertical()
	m, err := c.fonts.Metrics(style)
	if err != nil {
		c.report(fmt.Errorf("nvg: TextBoxBounds: %w", err))
		return [4]float64{}
	}
	lineh := m.LineHeight() * st.LineHeight
	_, line, _ := c.fonts.TextBounds(style, 0, 0, "")
	rminy, rmaxy := line[1], line[3]

	minx, miny, maxx, maxy := x, y, x, y
	var rows [2]TextRow
	for s != "" {
		n, err := c.fonts.BreakLines(style, s, breakRowWidth, rows[:])
		if err != nil {
			c.report(fmt.Errorf("nvg: TextBoxBounds: %w", err))
			break
		}
		if n == 0 {
			break
		}
		for _, row := range rows[:n] {
			dx := rowOffset(halign, breakRowWidth, row.Width)
			minx = math.Min(minx, x+row.MinX+dx)
			maxx = math.Max(maxx, x+row.MaxX+dx)
			miny = math.Min(miny, y+rminy)
			maxy = math.Max(maxy, y+rmaxy)
			y += lineh
		}
		next := rows[n-1].Next
		if next <= 0 {
			break
		}
		s = s[next:]
	}
	return [4]float64{minx, miny, maxx, maxy}
}

// TextGlyphPositions writes the positions of the glyphs of s drawn at
// (x, y) into dst and returns the number written.
func (c *Context) TextGlyphPositions(x, y float64, s string, dst []GlyphPosition) int {
	_, style, ok := c.textStyle("TextGlyphPositions")
	if !ok {
		return 0
	}
	n, err := c.fonts.GlyphPositions(style, x, y, s, dst)
	if err != nil {
		c.report(fmt.Errorf("nvg: TextGlyphPositions: %w", err))
	}
	return n
}

// TextBreakLines splits s into rows no wider than breakRowWidth and
// returns the number of rows written to dst.
func (c *Context) TextBreakLines(s string, breakRowWidth float64, dst []TextRow) int {
	_, style, ok := c.textStyle("TextBreakLines")
	if !ok {
		return 0
	}
	n, err := c.fonts.BreakLines(style, s, breakRowWidth, dst)
	if err != nil {
		c.report(fmt.Errorf("nvg: TextBreakLines: %w", err))
	}
	return n
}

// TextMetrics returns the ascender, descender and line height of the
// current font at the current size.
func (c *Context) TextMetrics() (ascender, descender, lineh float64) {
	_, style, ok := c.textStyle("TextMetrics")
	if !ok {
		return 0, 0, 0
	}
	m, err := c.fonts.Metrics(style)
	if err != nil {
		c.report(fmt.Errorf("nvg: TextMetrics: %w", err))
		return 0, 0, 0
	}
	return m.Ascender, m.Descender, m.LineHeight()
}
