package font

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // color glyph bitmaps
	_ "image/png"  // color glyph bitmaps
	"math"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// SFNTParser parses TrueType and OpenType fonts and collections with
// golang.org/x/image/font/sfnt.
type SFNTParser struct{}

// Parse implements Parser.
func (SFNTParser) Parse(data []byte, index int) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("face index %d out of range [0, %d)", index, c.NumFonts())
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, err
	}
	face := &sfntFace{font: f, data: data, index: index}
	face.upem = float64(f.UnitsPerEm())
	m, err := f.Metrics(&face.buf, fixed.I(int(f.UnitsPerEm())), xfont.HintingNone)
	if err == nil {
		face.height = fromFixed(m.Ascent + m.Descent)
	}
	if face.height <= 0 {
		face.height = face.upem
	}
	return face, nil
}

// sfntFace implements Face using sfnt.Font.
type sfntFace struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	upem   float64
	height float64 // ascent+descent in font units

	data  []byte
	index int

	gt     *gotext.Face
	gtErr  error
	gtInit bool
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// ppem converts a font size to pixels per em.
func (f *sfntFace) ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * f.upem / f.height * 64))
}

func (f *sfntFace) Name() string {
	if n, err := f.font.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		return n
	}
	return ""
}

func (f *sfntFace) Glyph(r rune) (GlyphID, bool) {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

func (f *sfntFace) Advance(g GlyphID, size float64) float64 {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(g), f.ppem(size), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

func (f *sfntFace) Kern(a, b GlyphID, size float64) float64 {
	k, err := f.font.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), f.ppem(size), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

func (f *sfntFace) Bounds(g GlyphID, size float64) (minX, minY, maxX, maxY float64) {
	b, _, err := f.font.GlyphBounds(&f.buf, sfnt.GlyphIndex(g), f.ppem(size), xfont.HintingNone)
	if err != nil {
		return 0, 0, 0, 0
	}
	return fromFixed(b.Min.X), fromFixed(b.Min.Y), fromFixed(b.Max.X), fromFixed(b.Max.Y)
}

func (f *sfntFace) Metrics(size float64) Metrics {
	m, err := f.font.Metrics(&f.buf, f.ppem(size), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascender: size * 0.8, Descender: -size * 0.2}
	}
	return Metrics{
		Ascender:  fromFixed(m.Ascent),
		Descender: -fromFixed(m.Descent),
		LineGap:   math.Max(0, fromFixed(m.Height-m.Ascent-m.Descent)),
	}
}

func (f *sfntFace) Rasterize(g GlyphID, size float64) (Bitmap, error) {
	segs, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(g), f.ppem(size), nil)
	if err != nil {
		return Bitmap{}, err
	}
	if len(segs) == 0 {
		return Bitmap{}, nil
	}
	b := segs.Bounds()
	left := b.Min.X.Floor()
	top := b.Min.Y.Floor()
	w := b.Max.X.Ceil() - left
	h := b.Max.Y.Ceil() - top
	if w <= 0 || h <= 0 {
		return Bitmap{}, nil
	}

	ox, oy := float32(-left), float32(-top)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + ox, float32(p.Y)/64 + oy
	}
	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	r.ClosePath()
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return Bitmap{Pix: dst.Pix, W: w, H: h, Left: left, Top: top}, nil
}

// goText returns the go-text view of the same face, used for shaping and
// color bitmaps.
func (f *sfntFace) goText() (*gotext.Face, error) {
	if f.gtInit {
		return f.gt, f.gtErr
	}
	f.gtInit = true
	faces, err := gotext.ParseTTC(bytes.NewReader(f.data))
	switch {
	case err != nil:
		f.gtErr = err
	case f.index >= len(faces):
		f.gtErr = fmt.Errorf("face index %d out of range", f.index)
	default:
		f.gt = faces[f.index]
	}
	return f.gt, f.gtErr
}

// RasterizeColor implements ColorFace for fonts with layered COLR glyphs
// or embedded PNG or JPEG glyph bitmaps (CBDT, sbix).
func (f *sfntFace) RasterizeColor(g GlyphID, size float64) (Bitmap, bool) {
	gt, err := f.goText()
	if err != nil {
		return Bitmap{}, false
	}
	if layers, ok := f.colrLayers(gt, g, size); ok {
		return compositeLayers(layers)
	}
	data, ok := gt.GlyphData(gotext.GID(g)).(gotext.GlyphBitmap)
	if !ok || (data.Format != gotext.PNG && data.Format != gotext.JPG) {
		return Bitmap{}, false
	}
	src, _, err := image.Decode(bytes.NewReader(data.Data))
	if err != nil {
		return Bitmap{}, false
	}
	sb := src.Bounds()
	if sb.Dy() == 0 {
		return Bitmap{}, false
	}
	h := max(1, int(math.Round(size)))
	w := max(1, int(math.Round(float64(sb.Dx())*float64(h)/float64(sb.Dy()))))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	m := f.Metrics(size)
	return Bitmap{
		Pix:   dst.Pix,
		W:     w,
		H:     h,
		Top:   int(math.Round(-m.Ascender)),
		Color: true,
	}, true
}
