package font

import (
	"image"
	"image/color"
	"math"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"golang.org/x/image/draw"
)

// foregroundPalette is the COLR palette index meaning "text color".
// Glyphs are cached independently of the fill color, so those layers
// are painted opaque black.
const foregroundPalette = 0xFFFF

// colorLayer is one outline layer of a layered color glyph.
type colorLayer struct {
	mask  Bitmap
	color color.NRGBA
}

// colrLayers rasterizes the COLR layers of g. Only flat layer lists
// (COLR version 0) are supported; version 1 paint graphs report false.
func (f *sfntFace) colrLayers(gt *gotext.Face, g GlyphID, size float64) ([]colorLayer, bool) {
	if g > math.MaxUint16 {
		return nil, false
	}
	data, ok := gt.GlyphDataColor(tables.GlyphID(g))
	if !ok {
		return nil, false
	}
	layers, ok := data.Paint.(tables.PaintColrLayersResolved)
	if !ok {
		logger().Debug("font: unsupported COLR paint", "glyph", g, "paint", data.Paint)
		return nil, false
	}
	out := make([]colorLayer, 0, len(layers))
	for _, l := range layers {
		bm, err := f.Rasterize(GlyphID(l.GlyphID), size)
		if err != nil {
			logger().Debug("font: COLR layer", "glyph", l.GlyphID, "err", err)
			return nil, false
		}
		out = append(out, colorLayer{mask: bm, color: paletteColor(gt.CPAL, l.PaletteIndex)})
	}
	return out, len(out) > 0
}

// paletteColor looks idx up in the first palette.
func paletteColor(cpal gotext.CPAL, idx uint16) color.NRGBA {
	if idx == foregroundPalette || len(cpal) == 0 || int(idx) >= len(cpal[0]) {
		return color.NRGBA{A: 0xff}
	}
	c := cpal[0][idx]
	return color.NRGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}
}

// compositeLayers paints every layer's coverage in its color over the
// layers before it. The result is a premultiplied RGBA bitmap covering
// the union of the layers.
func compositeLayers(layers []colorLayer) (Bitmap, bool) {
	var box image.Rectangle
	for _, l := range layers {
		if l.mask.W > 0 && l.mask.H > 0 {
			box = box.Union(image.Rect(l.mask.Left, l.mask.Top, l.mask.Left+l.mask.W, l.mask.Top+l.mask.H))
		}
	}
	if box.Empty() {
		return Bitmap{}, false
	}
	dst := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	for _, l := range layers {
		if l.mask.W == 0 || l.mask.H == 0 {
			continue
		}
		mask := &image.Alpha{Pix: l.mask.Pix, Stride: l.mask.W, Rect: image.Rect(0, 0, l.mask.W, l.mask.H)}
		at := image.Pt(l.mask.Left-box.Min.X, l.mask.Top-box.Min.Y)
		r := image.Rectangle{Min: at, Max: at.Add(image.Pt(l.mask.W, l.mask.H))}
		draw.DrawMask(dst, r, image.NewUniform(l.color), image.Point{}, mask, image.Point{}, draw.Over)
	}
	return Bitmap{
		Pix:   dst.Pix,
		W:     box.Dx(),
		H:     box.Dy(),
		Left:  box.Min.X,
		Top:   box.Min.Y,
		Color: true,
	}, true
}
