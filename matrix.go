package nvg

import (
	"math"

	"github.com/gogpu/nvg/backend"
)

// Transform is a 2D affine transformation stored as six scalars
// (a, b, c, d, e, f) mapping
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// TranslateTransform returns a translation by (tx, ty).
func TranslateTransform(tx, ty float64) Transform {
	return Transform{A: 1, D: 1, E: tx, F: ty}
}

// ScaleTransform returns a scale by (sx, sy).
func ScaleTransform(sx, sy float64) Transform {
	return Transform{A: sx, D: sy}
}

// RotateTransform returns a rotation by angle radians.
func RotateTransform(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{A: cos, B: sin, C: -sin, D: cos}
}

// SkewXTransform returns a skew along the x axis by angle radians.
func SkewXTransform(angle float64) Transform {
	return Transform{A: 1, C: math.Tan(angle), D: 1}
}

// SkewYTransform returns a skew along the y axis by angle radians.
func SkewYTransform(angle float64) Transform {
	return Transform{A: 1, B: math.Tan(angle), D: 1}
}

// Multiply returns t*s: the transform that applies t, then s.
func (t Transform) Multiply(s Transform) Transform {
	return Transform{
		A: t.A*s.A + t.B*s.C,
		B: t.A*s.B + t.B*s.D,
		C: t.C*s.A + t.D*s.C,
		D: t.C*s.B + t.D*s.D,
		E: t.E*s.A + t.F*s.C + s.E,
		F: t.E*s.B + t.F*s.D + s.F,
	}
}

// Premultiply returns s*t: the transform that applies s, then t.
func (t Transform) Premultiply(s Transform) Transform {
	return s.Multiply(t)
}

// Determinant returns a*d - b*c.
func (t Transform) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Inverse returns the inverse of t. It reports false, and returns t
// unchanged, when t is singular.
func (t Transform) Inverse() (Transform, bool) {
	det := t.Determinant()
	if det > -1e-6 && det < 1e-6 {
		return t, false
	}
	inv := 1 / det
	return Transform{
		A: t.D * inv,
		B: -t.B * inv,
		C: -t.C * inv,
		D: t.A * inv,
		E: (t.C*t.F - t.D*t.E) * inv,
		F: (t.B*t.E - t.A*t.F) * inv,
	}, true
}

// Invert replaces t with its inverse. When t is singular it returns
// ErrSingularMatrix and leaves t untouched.
func (t *Transform) Invert() error {
	inv, ok := t.Inverse()
	if !ok {
		return ErrSingularMatrix
	}
	*t = inv
	return nil
}

// Apply transforms the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// AverageScale returns the mean length of the transformed unit axes.
func (t Transform) AverageScale() float64 {
	sx := math.Sqrt(t.A*t.A + t.C*t.C)
	sy := math.Sqrt(t.B*t.B + t.D*t.D)
	return (sx + sy) * 0.5
}

// Array returns the six scalars in (a, b, c, d, e, f) order.
func (t Transform) Array() [6]float64 {
	return [6]float64{t.A, t.B, t.C, t.D, t.E, t.F}
}

func (t Transform) affine() backend.Affine {
	return backend.Affine(t.Array())
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg / 180 * math.Pi
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad / math.Pi * 180
}
