package path

import "math"

// Area returns the signed area of the closed polygon pts. The sign follows
// the y-down screen convention: counter-clockwise polygons as seen on
// screen have positive area.
func Area(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var area float64
	a := pts[0]
	for i := 2; i < len(pts); i++ {
		b := pts[i-1]
		c := pts[i]
		area += (c.X-a.X)*(b.Y-a.Y) - (b.X-a.X)*(c.Y-a.Y)
	}
	return area * 0.5
}

// Reverse reverses pts in place.
func Reverse(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// Winding returns the winding number of the closed polygon pts around p.
func Winding(pts []Point, p Point) int {
	n := len(pts)
	if n < 3 {
		return 0
	}
	w := 0
	for i := range n {
		a := pts[i]
		b := pts[(i+1)%n]
		if a.Y <= p.Y {
			if b.Y > p.Y && isLeft(a, b, p) > 0 {
				w++
			}
		} else if b.Y <= p.Y && isLeft(a, b, p) < 0 {
			w--
		}
	}
	return w
}

func isLeft(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// Convex reports whether the closed polygon pts is convex. Collinear
// points are tolerated.
func Convex(pts []Point) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	sign := 0
	for i := range n {
		a := pts[i]
		b := pts[(i+1)%n]
		c := pts[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 1e-12:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < -1e-12:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

// Bounds returns the axis-aligned bounds of pts as minX, minY, maxX, maxY.
func Bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
