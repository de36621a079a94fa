package nvg

import (
	"math"

	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/resource"
)

// LineCap specifies the shape of open stroke endpoints.
type LineCap = backend.LineCap

const (
	// CapButt ends strokes flat at the endpoint.
	CapButt = backend.CapButt
	// CapRound ends strokes with a half circle.
	CapRound = backend.CapRound
	// CapSquare ends strokes with a half square past the endpoint.
	CapSquare = backend.CapSquare
)

// LineJoin specifies the shape of stroke corners.
type LineJoin = backend.LineJoin

const (
	// JoinMiter extends corners to a point, up to the miter limit.
	JoinMiter = backend.JoinMiter
	// JoinRound rounds corners.
	JoinRound = backend.JoinRound
	// JoinBevel cuts corners off.
	JoinBevel = backend.JoinBevel
)

// ImageID identifies an image created by a Context.
type ImageID = resource.ImageID

// Paint is a fill or stroke style: a solid color, a gradient or an image
// pattern. Paints are plain values evaluated in their own coordinate
// space, given by Xform.
//
// The paint is a rounded rectangle of half-size Extent and corner Radius
// centered at the origin of paint space. InnerColor is used inside it and
// fades to OuterColor over Feather units across its edge. Image patterns
// tile Image with tiles of size Extent, tinted by InnerColor.
type Paint struct {
	Xform      Transform
	Extent     [2]float64
	Radius     float64
	Feather    float64
	InnerColor Color
	OuterColor Color
	Image      ImageID
}

// gradientExtent is the half-length used for the unbounded axes of a
// linear gradient.
const gradientExtent = 1e5

// SolidPaint returns a paint of a single color.
func SolidPaint(c Color) Paint {
	return Paint{
		Xform:      Identity(),
		Feather:    1,
		InnerColor: c,
		OuterColor: c,
	}
}

// LinearGradient returns a gradient from icol at (sx, sy) to ocol at
// (ex, ey).
func LinearGradient(sx, sy, ex, ey float64, icol, ocol Color) Paint {
	dx, dy := ex-sx, ey-sy
	d := math.Hypot(dx, dy)
	if d > 0.0001 {
		dx /= d
		dy /= d
	} else {
		dx, dy = 0, 1
	}
	return Paint{
		Xform: Transform{
			A: dy, B: -dx,
			C: dx, D: dy,
			E: sx - dx*gradientExtent, F: sy - dy*gradientExtent,
		},
		Extent:     [2]float64{gradientExtent, gradientExtent + d*0.5},
		Feather:    math.Max(1, d),
		InnerColor: icol,
		OuterColor: ocol,
	}
}

// RadialGradient returns a gradient centered at (cx, cy) from icol at
// radius inr to ocol at radius outr.
func RadialGradient(cx, cy, inr, outr float64, icol, ocol Color) Paint {
	r := (inr + outr) * 0.5
	return Paint{
		Xform:      TranslateTransform(cx, cy),
		Extent:     [2]float64{r, r},
		Radius:     r,
		Feather:    math.Max(1, outr-inr),
		InnerColor: icol,
		OuterColor: ocol,
	}
}

// BoxGradient returns a gradient following the rounded rectangle
// (x, y, w, h) with corner radius r. The colors blend over f units across
// the rectangle's edge; f = 0 gives a hard edge.
func BoxGradient(x, y, w, h, r, f float64, icol, ocol Color) Paint {
	return Paint{
		Xform:      TranslateTransform(x+w*0.5, y+h*0.5),
		Extent:     [2]float64{w * 0.5, h * 0.5},
		Radius:     r,
		Feather:    math.Max(0, f),
		InnerColor: icol,
		OuterColor: ocol,
	}
}

// ImagePattern returns a paint that tiles image with tiles of size
// (w, h), the first one at (ox, oy), rotated by angle radians around the
// origin.
func ImagePattern(ox, oy, w, h, angle float64, image ImageID, alpha float64) Paint {
	xf := RotateTransform(angle)
	xf.E, xf.F = ox, oy
	white := RGBAf(1, 1, 1, alpha)
	return Paint{
		Xform:      xf,
		Extent:     [2]float64{w, h},
		Image:      image,
		InnerColor: white,
		OuterColor: white,
	}
}

// withAlpha returns p with both colors multiplied by alpha.
func (p Paint) withAlpha(alpha float64) Paint {
	p.InnerColor.A *= alpha
	p.OuterColor.A *= alpha
	return p
}
