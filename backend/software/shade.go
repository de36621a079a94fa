package software

import (
	"math"

	"github.com/gogpu/nvg/backend"
)

// rgba is a premultiplied color with components in [0, 1].
type rgba [4]float64

func fromColor(c backend.Color) rgba {
	return rgba{c.R, c.G, c.B, c.A}
}

func (c rgba) scale(s float64) rgba {
	return rgba{c[0] * s, c[1] * s, c[2] * s, c[3] * s}
}

func (c rgba) mul(o rgba) rgba {
	return rgba{c[0] * o[0], c[1] * o[1], c[2] * o[2], c[3] * o[3]}
}

func mix(a, b rgba, t float64) rgba {
	return rgba{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// shader evaluates a resolved paint at logical screen positions.
type shader struct {
	paint backend.Paint
	inv   backend.Affine
	solid bool
	tex   *texture
	inner rgba
	outer rgba
}

func (b *Backend) newShader(p backend.Paint) shader {
	s := shader{paint: p, inner: fromColor(p.Inner), outer: fromColor(p.Outer)}
	inv, ok := p.Xform.Invert()
	s.inv = inv
	s.solid = !ok || p.Inner == p.Outer && p.Image == 0
	if p.Image != 0 {
		s.tex = b.textures[p.Image]
		s.solid = s.tex == nil || !ok
	}
	return s
}

// sdRoundRect returns the signed distance from (x, y) to the rounded
// rectangle of half-size (ex, ey) and corner radius r centered at the
// origin. Points inside have negative distance.
func sdRoundRect(x, y, ex, ey, r float64) float64 {
	dx := math.Abs(x) - (ex - r)
	dy := math.Abs(y) - (ey - r)
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	return math.Min(math.Max(dx, dy), 0) + outside - r
}

func (s *shader) color(x, y float64) rgba {
	if s.solid {
		return s.inner
	}
	qx, qy := s.inv.Apply(x, y)
	if s.tex != nil {
		u := qx / s.paint.Extent[0]
		v := qy / s.paint.Extent[1]
		return s.tex.sample(u, v).mul(s.inner)
	}
	d := sdRoundRect(qx, qy, s.paint.Extent[0], s.paint.Extent[1], s.paint.Radius)
	var t float64
	if s.paint.Feather > 0 {
		t = clamp01(d/s.paint.Feather + 0.5)
	} else if d >= 0 {
		t = 1
	}
	return mix(s.inner, s.outer, t)
}

// clip evaluates a scissor with a one device pixel soft edge.
type clip struct {
	on     bool
	inv    backend.Affine
	extent [2]float64
	scale  [2]float64
}

func newClip(sc backend.Scissor, dpr float64) clip {
	if !sc.Enabled() {
		return clip{}
	}
	inv, ok := sc.Xform.Invert()
	if !ok {
		return clip{on: true, extent: [2]float64{-1, -1}}
	}
	m := sc.Xform
	return clip{
		on:     true,
		inv:    inv,
		extent: sc.Extent,
		scale: [2]float64{
			math.Hypot(m[0], m[2]) * dpr,
			math.Hypot(m[1], m[3]) * dpr,
		},
	}
}

func (c *clip) alpha(x, y float64) float64 {
	if !c.on {
		return 1
	}
	if c.extent[0] < 0 {
		return 0
	}
	qx, qy := c.inv.Apply(x, y)
	sx := clamp01(0.5 - (math.Abs(qx)-c.extent[0])*c.scale[0])
	sy := clamp01(0.5 - (math.Abs(qy)-c.extent[1])*c.scale[1])
	return sx * sy
}
