package path

import (
	"math"
	"testing"
)

func TestAppendCubicEndpoints(t *testing.T) {
	p0 := Point{0, 0}
	p3 := Point{100, 0}
	pts := AppendCubic(nil, p0, Point{0, 50}, Point{100, 50}, p3, 0.25)

	if len(pts) < 2 {
		t.Fatalf("expected subdivision, got %d points", len(pts))
	}
	if pts[len(pts)-1] != p3 {
		t.Errorf("last point = %v, want %v", pts[len(pts)-1], p3)
	}
	for _, p := range pts {
		if p.Y < -1e-9 || p.Y > 37.5+1e-9 {
			t.Errorf("point %v outside curve hull", p)
		}
	}
}

func TestAppendCubicStraight(t *testing.T) {
	pts := AppendCubic(nil, Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{3, 0}, 0.25)
	if len(pts) != 1 {
		t.Errorf("straight cubic produced %d points, want 1", len(pts))
	}
}

func TestToleranceMonotonic(t *testing.T) {
	coarse := AppendQuad(nil, Point{0, 0}, Point{50, 100}, Point{100, 0}, 1)
	fine := AppendQuad(nil, Point{0, 0}, Point{50, 100}, Point{100, 0}, 0.01)
	if len(fine) <= len(coarse) {
		t.Errorf("fine tolerance produced %d points, coarse %d", len(fine), len(coarse))
	}
}

func TestArea(t *testing.T) {
	square := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	a := Area(square)
	if math.Abs(math.Abs(a)-100) > 1e-9 {
		t.Fatalf("|Area| = %v, want 100", math.Abs(a))
	}
	Reverse(square)
	if b := Area(square); math.Abs(a+b) > 1e-9 {
		t.Errorf("reversed area = %v, want %v", b, -a)
	}
}

func TestWinding(t *testing.T) {
	outer := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	inner := []Point{{25, 25}, {25, 75}, {75, 75}, {75, 25}}
	center := Point{50, 50}

	tests := []struct {
		name string
		poly []Point
		p    Point
		want int
	}{
		{"outer contains center", outer, center, Winding(outer, Point{10, 10})},
		{"outside", outer, Point{150, 50}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Winding(tt.poly, tt.p); got != tt.want {
				t.Errorf("Winding = %d, want %d", got, tt.want)
			}
		})
	}

	if Winding(outer, center)+Winding(inner, center) != 0 {
		t.Error("opposite windings should cancel at the center")
	}
	if Winding(outer, center) == 0 {
		t.Error("outer polygon should wind around its center")
	}
}

func TestConvex(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !Convex(square) {
		t.Error("square reported concave")
	}
	arrow := []Point{{0, 0}, {10, 5}, {0, 10}, {3, 5}}
	if Convex(arrow) {
		t.Error("arrow reported convex")
	}
}
