// Package path provides polyline utilities shared by path resolution and
// the software rasterizer: curve flattening, polygon orientation and
// winding-number containment.
package path

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// MaxDepth bounds recursive subdivision of a single curve.
const MaxDepth = 10

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Equal reports whether p and q are within tol of each other.
func (p Point) Equal(q Point, tol float64) bool {
	d := p.Sub(q)
	return d.X*d.X+d.Y*d.Y < tol*tol
}

// AppendCubic flattens the cubic Bezier p0..p3 and appends the resulting
// points to dst, excluding p0 and including p3. The maximum deviation of
// the polyline from the curve is bounded by tolerance.
func AppendCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	return appendCubicRec(dst, p0, p1, p2, p3, tolerance, 0)
}

func appendCubicRec(dst []Point, p0, p1, p2, p3 Point, tolerance float64, depth int) []Point {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	if math.Max(d1, d2) <= tolerance || depth >= MaxDepth {
		return append(dst, p3)
	}

	// de Casteljau subdivision at t=0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	dst = appendCubicRec(dst, p0, q0, r0, s, tolerance, depth+1)
	return appendCubicRec(dst, s, r1, q2, p3, tolerance, depth+1)
}

// AppendQuad flattens the quadratic Bezier p0..p2 by elevating it to a cubic.
func AppendQuad(dst []Point, p0, p1, p2 Point, tolerance float64) []Point {
	c1 := p0.Add(p1.Sub(p0).Mul(2.0 / 3.0))
	c2 := p2.Add(p1.Sub(p2).Mul(2.0 / 3.0))
	return AppendCubic(dst, p0, c1, c2, p2, tolerance)
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
