package font

import (
	"math"
	"strings"
)

// fakeFace is a monospaced face: every glyph advances size/2 and fills
// a size/2 x size box from the ascender to the descender line.
type fakeFace struct {
	name  string
	runes string // covered runes; empty covers everything
}

func (f *fakeFace) Name() string { return f.name }

func (f *fakeFace) Glyph(r rune) (GlyphID, bool) {
	if f.runes != "" && !strings.ContainsRune(f.runes, r) {
		return 0, false
	}
	return GlyphID(r), true
}

func (f *fakeFace) Advance(_ GlyphID, size float64) float64 { return size / 2 }

func (f *fakeFace) Kern(GlyphID, GlyphID, float64) float64 { return 0 }

func (f *fakeFace) Bounds(g GlyphID, size float64) (minX, minY, maxX, maxY float64) {
	if g == ' ' {
		return 0, 0, 0, 0
	}
	return 0, -0.8 * size, size / 2, 0.2 * size
}

func (f *fakeFace) Metrics(size float64) Metrics {
	return Metrics{Ascender: 0.8 * size, Descender: -0.2 * size}
}

func (f *fakeFace) Rasterize(g GlyphID, size float64) (Bitmap, error) {
	if g == ' ' {
		return Bitmap{}, nil
	}
	w, h := int(math.Ceil(size/2)), int(math.Ceil(size))
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = 0xff
	}
	return Bitmap{Pix: pix, W: w, H: h, Top: -int(math.Round(0.8 * size))}, nil
}

func newFake(name, runes string) Face {
	return &fakeFace{name: name, runes: runes}
}

type recordingFields struct {
	calls int
	mode  Mode
}

func (g *recordingFields) GenerateField(mode Mode, pixels []byte, w, h, spread int) ([]byte, error) {
	g.calls++
	g.mode = mode
	return make([]byte, w*h*4), nil
}
