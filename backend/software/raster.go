package software

import (
	"image"
	"math"

	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/internal/path"
	"github.com/gogpu/nvg/internal/stroke"
)

// coverage rasterizes polys, given in logical units, with the nonzero
// rule. It returns the coverage mask and the device rectangle it covers.
func (b *Backend) coverage(bounds image.Rectangle, polys [][]path.Point) (*image.Alpha, image.Rectangle) {
	s := b.dpr
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pts := range polys {
		for _, p := range pts {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if minX > maxX {
		return nil, image.Rectangle{}
	}
	r := image.Rect(
		int(math.Floor(minX*s)), int(math.Floor(minY*s)),
		int(math.Ceil(maxX*s))+1, int(math.Ceil(maxY*s))+1,
	).Intersect(bounds)
	if r.Empty() {
		return nil, image.Rectangle{}
	}

	w, h := r.Dx(), r.Dy()
	b.rast.Reset(w, h)
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	pt := func(p path.Point) (float32, float32) {
		return float32(p.X*s - ox), float32(p.Y*s - oy)
	}
	for _, pts := range polys {
		if len(pts) < 3 {
			continue
		}
		b.rast.MoveTo(pt(pts[0]))
		for _, p := range pts[1:] {
			b.rast.LineTo(pt(p))
		}
		b.rast.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	b.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, r
}

// shadeMask blends the paint into dst wherever mask has coverage.
func (b *Backend) shadeMask(dst *image.RGBA, mask *image.Alpha, r image.Rectangle, antialias bool,
	p backend.Paint, bl backend.Blend, sc backend.Scissor) {
	sh := b.newShader(p)
	cl := newClip(sc, b.dpr)
	inv := 1 / b.dpr
	for j := 0; j < r.Dy(); j++ {
		for i := 0; i < r.Dx(); i++ {
			cov := float64(mask.Pix[j*mask.Stride+i]) / 255
			if !antialias {
				cov = math.Round(cov)
			}
			if cov == 0 {
				continue
			}
			px, py := r.Min.X+i, r.Min.Y+j
			lx, ly := (float64(px)+0.5)*inv, (float64(py)+0.5)*inv
			cov *= cl.alpha(lx, ly)
			if cov == 0 {
				continue
			}
			blendPixel(dst, px, py, bl, sh.color(lx, ly).scale(cov))
		}
	}
}

func toPathPoints(pts []backend.Point) []path.Point {
	out := make([]path.Point, len(pts))
	for i, p := range pts {
		out[i] = path.Point{X: p.X, Y: p.Y}
	}
	return out
}

func (b *Backend) renderFill(dst *image.RGBA, call *backend.FillCall) {
	if !b.paintReady(call.Paint) {
		return
	}
	polys := make([][]path.Point, 0, len(call.Paths))
	for _, p := range call.Paths {
		polys = append(polys, toPathPoints(p.Points))
	}
	mask, r := b.coverage(dst.Rect, polys)
	if mask == nil {
		return
	}
	b.shadeMask(dst, mask, r, call.Antialias, call.Paint, call.Blend, call.Scissor)
}

// renderStroke expands every path and fills the union of the outlines,
// so overlapping segments blend once.
func (b *Backend) renderStroke(dst *image.RGBA, call *backend.StrokeCall) {
	if !b.paintReady(call.Paint) {
		return
	}
	style := stroke.Style{
		Width:      call.Width,
		Cap:        stroke.Cap(call.Cap),
		Join:       stroke.Join(call.Join),
		MiterLimit: call.MiterLimit,
	}
	tol := 0.25 / b.dpr
	var polys [][]path.Point
	for _, p := range call.Paths {
		polys = stroke.Expand(polys, toPathPoints(p.Points), p.Closed, style, tol)
	}
	mask, r := b.coverage(dst.Rect, polys)
	if mask == nil {
		return
	}
	b.shadeMask(dst, mask, r, call.Antialias, call.Paint, call.Blend, call.Scissor)
}

// edge is the signed area of (a, b, p), positive when p is left of a->b
// in y-down coordinates.
func edge(a, b backend.Vertex, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// topLeft reports whether a pixel center on edge a->b belongs to the
// triangle. Of the two triangles sharing an edge exactly one owns it.
func topLeft(a, b backend.Vertex) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dy < 0 || (dy == 0 && dx > 0)
}

// paintReady reports whether the texture an image paint samples still
// exists. Calls whose texture was deleted after submission draw nothing.
func (b *Backend) paintReady(p backend.Paint) bool {
	if p.Image == 0 || b.textures[p.Image] != nil {
		return true
	}
	logger().Warn("software: paint references unknown texture", "id", p.Image)
	return false
}

func (b *Backend) renderTriangles(dst *image.RGBA, call *backend.TrianglesCall) {
	tex := b.textures[call.Texture]
	if call.Mode != backend.GlyphNone && tex == nil {
		logger().Warn("software: triangles reference unknown texture", "id", call.Texture)
		return
	}
	sh := b.newShader(call.Paint)
	cl := newClip(call.Scissor, b.dpr)
	for i := 0; i+2 < len(call.Verts); i += 3 {
		b.triangle(dst, call, tex, &sh, &cl, call.Verts[i], call.Verts[i+1], call.Verts[i+2])
	}
}

func (b *Backend) triangle(dst *image.RGBA, call *backend.TrianglesCall, tex *texture, sh *shader, cl *clip,
	v0, v1, v2 backend.Vertex) {
	s := b.dpr
	for _, v := range []*backend.Vertex{&v0, &v1, &v2} {
		v.X *= s
		v.Y *= s
	}
	area := edge(v0, v1, v2.X, v2.Y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}
	r := image.Rect(
		int(math.Floor(min(v0.X, v1.X, v2.X))), int(math.Floor(min(v0.Y, v1.Y, v2.Y))),
		int(math.Ceil(max(v0.X, v1.X, v2.X))), int(math.Ceil(max(v0.Y, v1.Y, v2.Y))),
	).Intersect(dst.Rect)
	tl0, tl1, tl2 := topLeft(v1, v2), topLeft(v2, v0), topLeft(v0, v1)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			w0 := edge(v1, v2, cx, cy)
			w1 := edge(v2, v0, cx, cy)
			w2 := edge(v0, v1, cx, cy)
			if w0 < 0 || w1 < 0 || w2 < 0 ||
				(w0 == 0 && !tl0) || (w1 == 0 && !tl1) || (w2 == 0 && !tl2) {
				continue
			}
			lx, ly := cx/s, cy/s
			a := cl.alpha(lx, ly)
			if a == 0 {
				continue
			}
			src := sh.color(lx, ly)
			if tex != nil {
				u := (w0*v0.U + w1*v1.U + w2*v2.U) / area
				v := (w0*v0.V + w1*v1.V + w2*v2.V) / area
				src = b.glyphColor(call.Mode, tex, u, v, src)
			}
			blendPixel(dst, px, py, call.Blend, src.scale(a))
		}
	}
}

// glyphColor modulates the paint color by a texture sample according to
// the glyph mode.
func (b *Backend) glyphColor(mode backend.GlyphMode, tex *texture, u, v float64, paint rgba) rgba {
	t := tex.sample(u, v)
	switch mode {
	case backend.GlyphBitmap:
		return paint.scale(t[0])
	case backend.GlyphSDF:
		return paint.scale(b.fieldCoverage(t[0]))
	case backend.GlyphMSDF:
		return paint.scale(b.fieldCoverage(median(t[0], t[1], t[2])))
	case backend.GlyphColor:
		return t.scale(paint[3])
	default:
		return t.mul(paint)
	}
}

func median(a, b, c float64) float64 {
	return max(min(a, b), min(max(a, b), c))
}
