package font

import (
	"fmt"
	"math"
)

// Atlas page sizes.
const (
	DefaultAtlasSize    = 512
	DefaultMaxAtlasSize = 2048
	VirtualAtlasSize    = 8192
)

// FieldSpread is the distance-field range in pixels on each side of a
// glyph edge.
const FieldSpread = 4

// FieldGenerator turns coverage bitmaps into distance fields.
type FieldGenerator interface {
	// GenerateField converts w*h coverage bytes into w*h RGBA texels.
	GenerateField(mode Mode, pixels []byte, w, h, spread int) ([]byte, error)
}

type glyphKey struct {
	font ID
	id   GlyphID
	size int // size*scale*10
	blur int // blur*scale*10
}

type atlasGlyph struct {
	x, y, w, h int
	left, top  int
	empty      bool
	mode       Mode
	color      bool
	generation int
}

// Quad is a textured glyph rectangle. Positions are in layout units,
// texture coordinates are normalized to the atlas page.
type Quad struct {
	X0, Y0, X1, Y1 float64
	S0, T0, S1, T1 float64

	// Mode is the effective rendering mode of the texels.
	Mode Mode
	// Color marks premultiplied color texels.
	Color bool
}

// Atlas returns the current atlas page.
func (r *Registry) Atlas() *Atlas {
	return r.atlas
}

// NextAtlasSize returns the size of the page that replaces a full one:
// the shorter side doubles, up to the maximum page size.
func (r *Registry) NextAtlasSize() (width, height int) {
	w, h := r.atlas.Size()
	if w > h {
		h *= 2
	} else {
		w *= 2
	}
	return min(w, r.maxAtlas), min(h, r.maxAtlas)
}

// ResetAtlas starts a new, empty atlas page and drops every cached glyph.
// Quads produced earlier keep referring to the previous page.
func (r *Registry) ResetAtlas(width, height int) {
	r.atlas.reset(width, height)
	clear(r.glyphs)
	logger().Debug("font: atlas reset", "w", width, "h", height, "generation", r.atlas.generation)
}

// GlyphQuad rasterizes g into the atlas if needed and returns its quad.
// ok is false for glyphs without ink. ErrAtlasFull reports that the
// current page has no room; the caller starts a new page with ResetAtlas
// and retries.
func (r *Registry) GlyphQuad(style Style, g Glyph) (q Quad, ok bool, err error) {
	e := r.get(g.Font)
	if e == nil {
		return Quad{}, false, ErrInvalidHandle
	}
	scale := style.scale()
	ag, err := r.rasterize(g.Font, e, g.ID, style.Size*scale, style.Blur*scale)
	if err != nil || ag.empty {
		return Quad{}, false, err
	}
	aw, ah := r.atlas.Size()
	inv := 1 / scale
	x0 := g.X + g.XOffset + float64(ag.left)*inv
	y0 := g.Y + g.YOffset + float64(ag.top)*inv
	return Quad{
		X0:    x0,
		Y0:    y0,
		X1:    x0 + float64(ag.w)*inv,
		Y1:    y0 + float64(ag.h)*inv,
		S0:    float64(ag.x) / float64(aw),
		T0:    float64(ag.y) / float64(ah),
		S1:    float64(ag.x+ag.w) / float64(aw),
		T1:    float64(ag.y+ag.h) / float64(ah),
		Mode:  ag.mode,
		Color: ag.color,
	}, true, nil
}

func (r *Registry) rasterize(fid ID, e *entry, gid GlyphID, px, blur float64) (atlasGlyph, error) {
	key := glyphKey{
		font: fid,
		id:   gid,
		size: int(math.Round(px * 10)),
		blur: int(math.Round(blur * 10)),
	}
	if ag, ok := r.glyphs[key]; ok {
		return ag, nil
	}
	px = float64(key.size) / 10

	var bm Bitmap
	color := false
	if r.color && fid == r.emoji {
		if cf, ok := e.face.(ColorFace); ok {
			bm, color = cf.RasterizeColor(gid, px)
		}
	}
	if !color {
		var err error
		bm, err = e.face.Rasterize(gid, px)
		if err != nil {
			return atlasGlyph{}, fmt.Errorf("font: rasterize glyph %d of %q: %w", gid, e.name, err)
		}
	}
	if bm.W == 0 || bm.H == 0 {
		ag := atlasGlyph{empty: true, generation: r.atlas.generation}
		r.glyphs[key] = ag
		return ag, nil
	}

	mode := ModeBitmap
	var texels []byte
	switch {
	case color:
		texels = bm.Pix
	case e.mode != ModeBitmap && r.fields != nil:
		bm = pad(bm, FieldSpread)
		field, err := r.fields.GenerateField(e.mode, bm.Pix, bm.W, bm.H, FieldSpread)
		if err != nil {
			logger().Warn("font: field generation failed, using coverage", "font", e.name, "err", err)
			texels = expandCoverage(bm.Pix)
		} else {
			texels = field
			mode = e.mode
		}
	default:
		if b := int(math.Ceil(blur)); b > 0 {
			bm = pad(bm, b+1)
			boxBlur(bm.Pix, bm.W, bm.H, b)
		}
		texels = expandCoverage(bm.Pix)
	}

	x, y, ok := r.atlas.alloc.allocate(bm.W, bm.H)
	if !ok {
		return atlasGlyph{}, ErrAtlasFull
	}
	r.atlas.put(x, y, bm.W, bm.H, texels)
	ag := atlasGlyph{
		x: x, y: y, w: bm.W, h: bm.H,
		left: bm.Left, top: bm.Top,
		mode:       mode,
		color:      color,
		generation: r.atlas.generation,
	}
	r.glyphs[key] = ag
	return ag, nil
}

// pad surrounds a coverage bitmap with n empty pixels on every side.
func pad(bm Bitmap, n int) Bitmap {
	w, h := bm.W+2*n, bm.H+2*n
	pix := make([]byte, w*h)
	for y := range bm.H {
		copy(pix[(y+n)*w+n:(y+n)*w+n+bm.W], bm.Pix[y*bm.W:(y+1)*bm.W])
	}
	return Bitmap{Pix: pix, W: w, H: h, Left: bm.Left - n, Top: bm.Top - n}
}

// expandCoverage replicates coverage into all four RGBA channels.
func expandCoverage(cov []byte) []byte {
	out := make([]byte, len(cov)*4)
	for i, c := range cov {
		out[i*4+0] = c
		out[i*4+1] = c
		out[i*4+2] = c
		out[i*4+3] = c
	}
	return out
}

// boxBlur applies two passes of a separable box blur of radius rad.
func boxBlur(pix []byte, w, h, rad int) {
	tmp := make([]byte, len(pix))
	for range 2 {
		blurLine(tmp, pix, w, h, rad, 1, w)
		blurLine(pix, tmp, h, w, rad, w, 1)
	}
}

// blurLine blurs n-element lines of src into dst. step is the distance
// between elements of a line, stride between lines.
func blurLine(dst, src []byte, n, lines, rad, step, stride int) {
	div := 2*rad + 1
	for l := range lines {
		base := l * stride
		sum := 0
		for i := -rad; i <= rad; i++ {
			if i >= 0 && i < n {
				sum += int(src[base+i*step])
			}
		}
		for i := range n {
			dst[base+i*step] = byte(sum / div)
			if out := i - rad; out >= 0 {
				sum -= int(src[base+out*step])
			}
			if in := i + rad + 1; in < n {
				sum += int(src[base+in*step])
			}
		}
	}
}
