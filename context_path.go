package nvg

import (
	"fmt"
	"math"

	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/internal/path"
)

// kappa90 is the control point distance of a cubic quarter circle.
const kappa90 = 0.5522847493

// BeginPath clears the current path.
func (c *Context) BeginPath() {
	if c.frameOp("BeginPath") {
		c.path.reset()
	}
}

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	if st := c.mutate("MoveTo"); st != nil {
		c.path.moveTo(st.Transform, x, y)
	}
}

// LineTo adds a line from the current point to (x, y).
func (c *Context) LineTo(x, y float64) {
	if st := c.mutate("LineTo"); st != nil {
		c.path.lineTo(st.Transform, x, y)
	}
}

// BezierTo adds a cubic Bezier segment through the control points
// (c1x, c1y) and (c2x, c2y) to (x, y).
func (c *Context) BezierTo(c1x, c1y, c2x, c2y, x, y float64) {
	if st := c.mutate("BezierTo"); st != nil {
		c.path.bezierTo(st.Transform, c1x, c1y, c2x, c2y, x, y)
	}
}

// QuadTo adds a quadratic Bezier segment through (cx, cy) to (x, y).
func (c *Context) QuadTo(cx, cy, x, y float64) {
	if st := c.mutate("QuadTo"); st != nil {
		c.path.quadTo(st.Transform, cx, cy, x, y)
	}
}

// ArcTo adds an arc of the given radius tangent to the lines from the
// current point to (x1, y1) and from (x1, y1) to (x2, y2). Degenerate
// input adds a straight line to (x1, y1).
func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) {
	if st := c.mutate("ArcTo"); st != nil {
		c.path.arcTo(st.Transform, x1, y1, x2, y2, radius, c.distTol)
	}
}

// Arc adds a circular arc centered at (cx, cy) from angle a0 to a1 in
// direction dir. The arc is connected to the current subpath by a line,
// or starts a new subpath when none is open.
func (c *Context) Arc(cx, cy, r, a0, a1 float64, dir Winding) {
	if st := c.mutate("Arc"); st != nil {
		c.path.arc(st.Transform, cx, cy, r, a0, a1, dir)
	}
}

// ClosePath closes the current subpath with a line to its first point.
func (c *Context) ClosePath() {
	if c.frameOp("ClosePath") {
		c.path.closePath()
	}
}

// PathWinding sets the winding of the current subpath. Solid subpaths
// fill, holes cut out.
func (c *Context) PathWinding(w Winding) {
	if !c.frameOp("PathWinding") {
		return
	}
	if w != Solid && w != Hole {
		c.report(usage("PathWinding", fmt.Errorf("invalid winding %d", w)))
		return
	}
	c.path.setWinding(w)
}

// Rect adds a closed rectangle subpath.
func (c *Context) Rect(x, y, w, h float64) {
	st := c.mutate("Rect")
	if st == nil {
		return
	}
	xf := st.Transform
	c.path.moveTo(xf, x, y)
	c.path.lineTo(xf, x, y+h)
	c.path.lineTo(xf, x+w, y+h)
	c.path.lineTo(xf, x+w, y)
	c.path.closePath()
}

// RoundedRect adds a rectangle subpath with rounded corners.
func (c *Context) RoundedRect(x, y, w, h, r float64) {
	c.RoundedRectVarying(x, y, w, h, r, r, r, r)
}

// RoundedRectVarying adds a rectangle subpath with a separate radius per
// corner. Radii are clamped to half the rectangle size.
func (c *Context) RoundedRectVarying(x, y, w, h, radTopLeft, radTopRight, radBottomRight, radBottomLeft float64) {
	if radTopLeft < 0.1 && radTopRight < 0.1 && radBottomRight < 0.1 && radBottomLeft < 0.1 {
		c.Rect(x, y, w, h)
		return
	}
	st := c.mutate("RoundedRectVarying")
	if st == nil {
		return
	}
	xf := st.Transform
	halfw, halfh := math.Abs(w)*0.5, math.Abs(h)*0.5
	sx, sy := sign(w), sign(h)
	corner := func(r float64) (float64, float64) {
		return math.Min(r, halfw) * sx, math.Min(r, halfh) * sy
	}
	rxBL, ryBL := corner(radBottomLeft)
	rxBR, ryBR := corner(radBottomRight)
	rxTR, ryTR := corner(radTopRight)
	rxTL, ryTL := corner(radTopLeft)
	const k = 1 - kappa90

	pb := &c.path
	pb.moveTo(xf, x, y+ryTL)
	pb.lineTo(xf, x, y+h-ryBL)
	pb.bezierTo(xf, x, y+h-ryBL*k, x+rxBL*k, y+h, x+rxBL, y+h)
	pb.lineTo(xf, x+w-rxBR, y+h)
	pb.bezierTo(xf, x+w-rxBR*k, y+h, x+w, y+h-ryBR*k, x+w, y+h-ryBR)
	pb.lineTo(xf, x+w, y+ryTR)
	pb.bezierTo(xf, x+w, y+ryTR*k, x+w-rxTR*k, y, x+w-rxTR, y)
	pb.lineTo(xf, x+rxTL, y)
	pb.bezierTo(xf, x+rxTL*k, y, x, y+ryTL*k, x, y+ryTL)
	pb.closePath()
}

func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// Ellipse adds a closed ellipse subpath.
func (c *Context) Ellipse(cx, cy, rx, ry float64) {
	st := c.mutate("Ellipse")
	if st == nil {
		return
	}
	xf := st.Transform
	pb := &c.path
	pb.moveTo(xf, cx-rx, cy)
	pb.bezierTo(xf, cx-rx, cy+ry*kappa90, cx-rx*kappa90, cy+ry, cx, cy+ry)
	pb.bezierTo(xf, cx+rx*kappa90, cy+ry, cx+rx, cy+ry*kappa90, cx+rx, cy)
	pb.bezierTo(xf, cx+rx, cy-ry*kappa90, cx+rx*kappa90, cy-ry, cx, cy-ry)
	pb.bezierTo(xf, cx-rx*kappa90, cy-ry, cx-rx, cy-ry*kappa90, cx-rx, cy)
	pb.closePath()
}

// Circle adds a closed circle subpath.
func (c *Context) Circle(cx, cy, r float64) {
	c.Ellipse(cx, cy, r, r)
}

// IsPointInPath reports whether the user space point (x, y), under the
// current transform, lies inside the current path with the nonzero rule.
func (c *Context) IsPointInPath(x, y float64) bool {
	p := xformPoint(c.states.top().Transform, x, y)
	return c.path.contains(p, c.tessTol, c.distTol)
}

// Fill fills the current path with the fill paint.
func (c *Context) Fill() {
	if !c.frameOp("Fill") {
		return
	}
	st := c.states.top()
	bp, ok := c.backendPaint(&st.Fill, st.Alpha)
	if !ok {
		return
	}
	paths := c.backendPaths(3, true)
	if len(paths) == 0 {
		return
	}
	c.be.Fill(&backend.FillCall{
		Paint:     bp,
		Blend:     st.Composite.blend(),
		Scissor:   st.Scissor.backend(),
		Fringe:    c.fringe,
		Antialias: st.ShapeAntiAlias && c.flags.Has(FlagAntialias),
		Paths:     paths,
	})
	c.stats.DrawCalls++
	c.stats.FillPaths += len(paths)
}

// Stroke strokes the current path with the stroke paint. Strokes thinner
// than one device pixel are drawn one pixel wide with reduced alpha.
func (c *Context) Stroke() {
	if !c.frameOp("Stroke") {
		return
	}
	st := c.states.top()
	width := math.Max(0, math.Min(st.StrokeWidth*st.Transform.AverageScale(), 200))
	alpha := st.Alpha
	if width < c.fringe {
		a := math.Max(0, math.Min(width/c.fringe, 1))
		alpha *= a * a
		width = c.fringe
	}
	bp, ok := c.backendPaint(&st.Stroke, alpha)
	if !ok {
		return
	}
	paths := c.backendPaths(1, false)
	if len(paths) == 0 {
		return
	}
	c.be.Stroke(&backend.StrokeCall{
		Paint:      bp,
		Blend:      st.Composite.blend(),
		Scissor:    st.Scissor.backend(),
		Fringe:     c.fringe,
		Antialias:  st.ShapeAntiAlias && c.flags.Has(FlagAntialias),
		Width:      width,
		Cap:        st.LineCap,
		Join:       st.LineJoin,
		MiterLimit: st.MiterLimit,
		Paths:      paths,
	})
	c.stats.DrawCalls++
	c.stats.StrokePaths += len(paths)
}

// backendPaths copies the flattened subpaths with at least minPoints
// points.
func (c *Context) backendPaths(minPoints int, fill bool) []backend.Path {
	subs := c.path.flatten(c.tessTol, c.distTol)
	paths := make([]backend.Path, 0, len(subs))
	for _, sp := range subs {
		if len(sp.points) < minPoints {
			continue
		}
		paths = append(paths, backend.Path{
			Points: toBackendPoints(sp.points),
			Closed: sp.closed || fill,
			Convex: sp.convex,
			Hole:   sp.winding == Hole,
		})
	}
	return paths
}

func toBackendPoints(pts []path.Point) []backend.Point {
	out := make([]backend.Point, len(pts))
	for i, p := range pts {
		out[i] = backend.Point{X: p.X, Y: p.Y}
	}
	return out
}

// backendPaint resolves p with alpha applied. A paint bound to a deleted
// image is reset to a transparent paint, the error reported, and false
// returned.
func (c *Context) backendPaint(p *Paint, alpha float64) (backend.Paint, bool) {
	var tex backend.TextureID
	if p.Image.Valid() {
		img, ok := c.images.Lookup(p.Image)
		if !ok {
			c.report(fmt.Errorf("%w: image %d", ErrInvalidHandle, p.Image))
			*p = SolidPaint(Transparent)
			return backend.Paint{}, false
		}
		tex = img.Texture
	}
	pa := p.withAlpha(alpha)
	return backend.Paint{
		Xform:   pa.Xform.affine(),
		Extent:  pa.Extent,
		Radius:  pa.Radius,
		Feather: pa.Feather,
		Inner:   pa.InnerColor.premul(),
		Outer:   pa.OuterColor.premul(),
		Image:   tex,
	}, true
}

func (s Scissor) backend() backend.Scissor {
	if !s.Enabled() {
		return backend.NoScissor()
	}
	return backend.Scissor{Xform: s.Xform.affine(), Extent: s.Extent}
}
