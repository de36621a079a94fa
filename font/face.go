package font

// GlyphID is a glyph index within one face. Glyph 0 is the missing glyph.
type GlyphID uint32

// Metrics are vertical font metrics at a given size. Ascender is positive
// (above the baseline), Descender negative.
type Metrics struct {
	Ascender  float64
	Descender float64
	LineGap   float64
}

// LineHeight returns the baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 {
	return m.Ascender - m.Descender + m.LineGap
}

// Bitmap is a rasterized glyph. Left and Top locate the top-left pixel
// relative to the pen position on the baseline (Top is negative above
// the baseline).
type Bitmap struct {
	// Pix holds W*H coverage bytes, or W*H*4 premultiplied RGBA bytes
	// when Color is set.
	Pix       []byte
	W, H      int
	Left, Top int
	Color     bool
}

// Face is a parsed font face. Sizes are font sizes as described in the
// package documentation. Faces are used from a single goroutine.
type Face interface {
	// Name returns the family name, or "" if unknown.
	Name() string

	// Glyph maps r to a glyph and reports whether the face covers r.
	Glyph(r rune) (GlyphID, bool)

	// Advance returns the horizontal advance of g.
	Advance(g GlyphID, size float64) float64

	// Kern returns the kerning adjustment between a and b.
	Kern(a, b GlyphID, size float64) float64

	// Bounds returns the ink bounds of g relative to the pen position.
	Bounds(g GlyphID, size float64) (minX, minY, maxX, maxY float64)

	// Metrics returns the vertical metrics.
	Metrics(size float64) Metrics

	// Rasterize renders the coverage of g.
	Rasterize(g GlyphID, size float64) (Bitmap, error)
}

// ColorFace is implemented by faces that can supply color glyph bitmaps.
type ColorFace interface {
	RasterizeColor(g GlyphID, size float64) (Bitmap, bool)
}

// Parser parses font data into faces.
type Parser interface {
	// Parse returns face index of the font container in data.
	Parse(data []byte, index int) (Face, error)
}
