package stroke

import (
	"math"

	"github.com/gogpu/nvg/internal/path"
)

// Point is the polyline vertex type.
type Point = path.Point

// Cap specifies the shape of open polyline endpoints.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join specifies the shape of polyline corners.
type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style defines the stroke geometry.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// Expand appends the fill polygons of the stroked polyline pts to dst.
// Every appended polygon has positive orientation (see path.Area).
// tolerance controls the subdivision of round caps and joins.
func Expand(dst [][]Point, pts []Point, closed bool, style Style, tolerance float64) [][]Point {
	pts = dedupe(pts, closed)
	hw := style.Width * 0.5
	if hw <= 0 || len(pts) == 0 {
		return dst
	}
	if tolerance <= 0 {
		tolerance = 0.25
	}

	if len(pts) == 1 {
		if closed {
			return dst
		}
		switch style.Cap {
		case CapRound:
			dst = append(dst, circle(pts[0], hw, tolerance))
		case CapSquare:
			p := pts[0]
			dst = append(dst, orient([]Point{
				{X: p.X - hw, Y: p.Y - hw}, {X: p.X + hw, Y: p.Y - hw},
				{X: p.X + hw, Y: p.Y + hw}, {X: p.X - hw, Y: p.Y + hw},
			}))
		}
		return dst
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a := pts[i]
		b := pts[(i+1)%n]
		if !closed && style.Cap == CapSquare {
			d := unit(b.Sub(a)).Mul(hw)
			if i == 0 {
				a = a.Sub(d)
			}
			if i == segs-1 {
				b = b.Add(d)
			}
		}
		dst = append(dst, segmentQuad(a, b, hw))
	}

	first, last := 1, n-1
	if closed {
		first, last = 0, n
	}
	for i := first; i < last; i++ {
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		dst = appendJoin(dst, prev, cur, next, hw, style, tolerance)
	}

	if !closed && style.Cap == CapRound {
		dst = append(dst, circle(pts[0], hw, tolerance), circle(pts[n-1], hw, tolerance))
	}
	return dst
}

func dedupe(pts []Point, closed bool) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Equal(p, 1e-9) {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0].Equal(out[len(out)-1], 1e-9) {
		out = out[:len(out)-1]
	}
	return out
}

func unit(v Point) Point {
	l := v.Length()
	if l < 1e-12 {
		return Point{}
	}
	return v.Mul(1 / l)
}

// left returns the left normal of d scaled to hw.
func left(d Point, hw float64) Point {
	u := unit(d)
	return Point{X: u.Y * hw, Y: -u.X * hw}
}

func segmentQuad(a, b Point, hw float64) []Point {
	n := left(b.Sub(a), hw)
	return orient([]Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

func appendJoin(dst [][]Point, prev, cur, next Point, hw float64, style Style, tol float64) [][]Point {
	d0 := unit(cur.Sub(prev))
	d1 := unit(next.Sub(cur))
	cross := d0.X*d1.Y - d0.Y*d1.X
	if math.Abs(cross) < 1e-9 && d0.Dot(d1) > 0 {
		return dst
	}
	if style.Join == JoinRound {
		return append(dst, circle(cur, hw, tol))
	}

	// Outer side of the turn.
	n0 := left(d0, hw)
	n1 := left(d1, hw)
	if n0.Dot(d1) > 0 {
		n0 = n0.Mul(-1)
		n1 = n1.Mul(-1)
	}
	a := cur.Add(n0)
	b := cur.Add(n1)

	if style.Join == JoinMiter {
		cosHalf := math.Sqrt(math.Max(0, (1+d0.Dot(d1))*0.5))
		if cosHalf > 1e-9 && 1/cosHalf <= style.MiterLimit {
			mid := unit(n0.Add(n1)).Mul(hw / cosHalf)
			return append(dst, orient([]Point{cur, a, cur.Add(mid), b}))
		}
	}
	return append(dst, orient([]Point{cur, a, b}))
}

// Segments returns the number of segments approximating an arc of angle
// arc with radius r within tol.
func Segments(r, arc, tol float64) int {
	da := math.Acos(r/(r+tol)) * 2
	if da <= 0 || math.IsNaN(da) {
		return 2
	}
	return max(2, int(math.Ceil(arc/da)))
}

func circle(c Point, r, tol float64) []Point {
	n := max(8, Segments(r, 2*math.Pi, tol))
	pts := make([]Point, n)
	for i := range n {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = Point{X: c.X + math.Cos(a)*r, Y: c.Y + math.Sin(a)*r}
	}
	return orient(pts)
}

func orient(pts []Point) []Point {
	if path.Area(pts) < 0 {
		path.Reverse(pts)
	}
	return pts
}
