package nvg

import (
	"fmt"
	"math"
)

// Save pushes a copy of the active state. At most MaxStates states can be
// saved; further calls report a UsageError and push nothing.
func (c *Context) Save() {
	if !c.frameOp("Save") {
		return
	}
	if err := c.states.save(); err != nil {
		c.report(usage("Save", err))
	}
}

// Restore pops the state pushed by the matching Save. Restoring with no
// saved state reports a UsageError and leaves the state unchanged.
func (c *Context) Restore() {
	if !c.frameOp("Restore") {
		return
	}
	if err := c.states.restore(); err != nil {
		c.report(usage("Restore", err))
	}
}

// Reset replaces the active state with DefaultRenderState. Saved states
// are kept.
func (c *Context) Reset() {
	if !c.frameOp("Reset") {
		return
	}
	c.states.reset()
}

// State returns a copy of the active state.
func (c *Context) State() RenderState {
	return *c.states.top()
}

// StateDepth returns the number of saved states.
func (c *Context) StateDepth() int {
	return c.states.depth()
}

func (c *Context) mutate(op string) *RenderState {
	if !c.frameOp(op) {
		return nil
	}
	return c.states.top()
}

// ShapeAntiAlias enables or disables antialiasing of fills and strokes.
func (c *Context) ShapeAntiAlias(enabled bool) {
	if st := c.mutate("ShapeAntiAlias"); st != nil {
		st.ShapeAntiAlias = enabled
	}
}

// StrokeWidth sets the stroke width in user units.
func (c *Context) StrokeWidth(width float64) {
	if st := c.mutate("StrokeWidth"); st != nil {
		st.StrokeWidth = width
	}
}

// MiterLimit sets the limit at which miter joins turn into bevels.
func (c *Context) MiterLimit(limit float64) {
	if st := c.mutate("MiterLimit"); st != nil {
		st.MiterLimit = limit
	}
}

// LineCap sets the shape of stroke ends.
func (c *Context) LineCap(lineCap LineCap) {
	if st := c.mutate("LineCap"); st != nil {
		st.LineCap = lineCap
	}
}

// LineJoin sets the shape of stroke corners.
func (c *Context) LineJoin(join LineJoin) {
	if st := c.mutate("LineJoin"); st != nil {
		st.LineJoin = join
	}
}

// GlobalAlpha sets the alpha applied to everything drawn.
func (c *Context) GlobalAlpha(alpha float64) {
	if st := c.mutate("GlobalAlpha"); st != nil {
		st.Alpha = alpha
	}
}

// StrokeColor sets a solid stroke color.
func (c *Context) StrokeColor(color Color) {
	if st := c.mutate("StrokeColor"); st != nil {
		st.Stroke = SolidPaint(color)
	}
}

// StrokePaint sets the stroke paint. The paint is placed in the current
// coordinate system: later transform changes do not move it.
func (c *Context) StrokePaint(p Paint) {
	if st := c.mutate("StrokePaint"); st != nil {
		p.Xform = p.Xform.Multiply(st.Transform)
		st.Stroke = p
	}
}

// FillColor sets a solid fill color.
func (c *Context) FillColor(color Color) {
	if st := c.mutate("FillColor"); st != nil {
		st.Fill = SolidPaint(color)
	}
}

// FillPaint sets the fill paint. The paint is placed in the current
// coordinate system: later transform changes do not move it.
func (c *Context) FillPaint(p Paint) {
	if st := c.mutate("FillPaint"); st != nil {
		p.Xform = p.Xform.Multiply(st.Transform)
		st.Fill = p
	}
}

// GlobalCompositeOperation sets the composite operation.
func (c *Context) GlobalCompositeOperation(op CompositeOperation) {
	if st := c.mutate("GlobalCompositeOperation"); st != nil {
		st.Composite = CompositeOperationState(op)
	}
}

// GlobalCompositeBlendFunc sets the blend factors for color and alpha.
func (c *Context) GlobalCompositeBlendFunc(src, dst BlendFactor) {
	c.GlobalCompositeBlendFuncSeparate(src, dst, src, dst)
}

// GlobalCompositeBlendFuncSeparate sets separate color and alpha blend
// factors.
func (c *Context) GlobalCompositeBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor) {
	st := c.mutate("GlobalCompositeBlendFuncSeparate")
	if st == nil {
		return
	}
	for _, f := range []BlendFactor{srcRGB, dstRGB, srcAlpha, dstAlpha} {
		if !validBlendFactor(f) {
			c.report(usage("GlobalCompositeBlendFuncSeparate", fmt.Errorf("invalid blend factor %v", f)))
			return
		}
	}
	st.Composite = CompositeState{SrcRGB: srcRGB, DstRGB: dstRGB, SrcAlpha: srcAlpha, DstAlpha: dstAlpha}
}

// ResetTransform sets the current transform to identity.
func (c *Context) ResetTransform() {
	if st := c.mutate("ResetTransform"); st != nil {
		st.Transform = Identity()
	}
}

// Transform premultiplies the current transform by (a, b, c, d, e, f).
func (c *Context) Transform(a, b, cc, d, e, f float64) {
	c.premultiply("Transform", Transform{A: a, B: b, C: cc, D: d, E: e, F: f})
}

// Translate translates the current coordinate system.
func (c *Context) Translate(x, y float64) {
	c.premultiply("Translate", TranslateTransform(x, y))
}

// Rotate rotates the current coordinate system by angle radians.
func (c *Context) Rotate(angle float64) {
	c.premultiply("Rotate", RotateTransform(angle))
}

// SkewX skews the current coordinate system along the x axis.
func (c *Context) SkewX(angle float64) {
	c.premultiply("SkewX", SkewXTransform(angle))
}

// SkewY skews the current coordinate system along the y axis.
func (c *Context) SkewY(angle float64) {
	c.premultiply("SkewY", SkewYTransform(angle))
}

// Scale scales the current coordinate system.
func (c *Context) Scale(x, y float64) {
	c.premultiply("Scale", ScaleTransform(x, y))
}

func (c *Context) premultiply(op string, t Transform) {
	if st := c.mutate(op); st != nil {
		st.Transform = st.Transform.Premultiply(t)
	}
}

// CurrentTransform returns the current transform.
func (c *Context) CurrentTransform() Transform {
	return c.states.top().Transform
}

// Scissor sets the clip rectangle to (x, y, w, h) in the current
// coordinate system.
func (c *Context) Scissor(x, y, w, h float64) {
	if st := c.mutate("Scissor"); st != nil {
		st.Scissor = scissorRect(st.Transform, x, y, w, h)
	}
}

func scissorRect(xf Transform, x, y, w, h float64) Scissor {
	w = math.Max(0, w)
	h = math.Max(0, h)
	return Scissor{
		Xform:  TranslateTransform(x+w*0.5, y+h*0.5).Multiply(xf),
		Extent: [2]float64{w * 0.5, h * 0.5},
	}
}

// IntersectScissor intersects the clip rectangle with (x, y, w, h) in the
// current coordinate system. When the transforms of the two rectangles
// differ, the previous rectangle is first replaced by its bounding box in
// the current coordinate system.
func (c *Context) IntersectScissor(x, y, w, h float64) {
	st := c.mutate("IntersectScissor")
	if st == nil {
		return
	}
	if !st.Scissor.Enabled() {
		st.Scissor = scissorRect(st.Transform, x, y, w, h)
		return
	}
	inv, ok := st.Transform.Inverse()
	if !ok {
		c.report(fmt.Errorf("nvg: IntersectScissor: %w", ErrSingularMatrix))
		return
	}
	px := st.Scissor.Xform.Multiply(inv)
	ex, ey := st.Scissor.Extent[0], st.Scissor.Extent[1]
	tex := ex*math.Abs(px.A) + ey*math.Abs(px.C)
	tey := ex*math.Abs(px.B) + ey*math.Abs(px.D)

	minX := math.Max(px.E-tex, x)
	minY := math.Max(px.F-tey, y)
	maxX := math.Min(px.E+tex, x+w)
	maxY := math.Min(px.F+tey, y+h)
	st.Scissor = scissorRect(st.Transform, minX, minY, math.Max(0, maxX-minX), math.Max(0, maxY-minY))
}

// ResetScissor removes the clip rectangle.
func (c *Context) ResetScissor() {
	if st := c.mutate("ResetScissor"); st != nil {
		st.Scissor = NoScissor()
	}
}
