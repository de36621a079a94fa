package nvg

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func transformNear(a, b Transform, tol float64) bool {
	x, y := a.Array(), b.Array()
	for i := range x {
		if math.Abs(x[i]-y[i]) > tol {
			return false
		}
	}
	return true
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name   string
		t      Transform
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", TranslateTransform(10, -2), 3, 4, 13, 2},
		{"scale", ScaleTransform(2, 3), 3, 4, 6, 12},
		{"rotate 90", RotateTransform(math.Pi / 2), 1, 0, 0, 1},
		{"skew x 45", SkewXTransform(math.Pi / 4), 0, 2, 2, 2},
		{"skew y 45", SkewYTransform(math.Pi / 4), 2, 0, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.t.Apply(tt.x, tt.y)
			if math.Abs(x-tt.wx) > eps || math.Abs(y-tt.wy) > eps {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestTransformMultiplyOrder(t *testing.T) {
	tr := TranslateTransform(10, 0)
	sc := ScaleTransform(2, 2)

	// Multiply applies the receiver first.
	x, y := tr.Multiply(sc).Apply(1, 1)
	if x != 22 || y != 2 {
		t.Errorf("translate then scale = (%v, %v), want (22, 2)", x, y)
	}
	// Premultiply applies the argument first.
	x, y = tr.Premultiply(sc).Apply(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("scale then translate = (%v, %v), want (12, 2)", x, y)
	}
}

func TestTransformAssociative(t *testing.T) {
	a := RotateTransform(0.3).Multiply(TranslateTransform(5, 7))
	b := SkewXTransform(0.2).Multiply(ScaleTransform(1.5, 0.5))
	c := TranslateTransform(-3, 2).Multiply(RotateTransform(-1.1))
	if !transformNear(a.Multiply(b).Multiply(c), a.Multiply(b.Multiply(c)), 1e-9) {
		t.Error("Multiply is not associative")
	}
}

func TestTransformInverse(t *testing.T) {
	xfs := []Transform{
		Identity(),
		TranslateTransform(3, -8),
		RotateTransform(1.2).Multiply(ScaleTransform(2, 0.5)),
		SkewYTransform(0.4).Multiply(TranslateTransform(1, 2)),
	}
	for _, xf := range xfs {
		inv := xf
		if err := inv.Invert(); err != nil {
			t.Fatalf("Invert(%v): %v", xf, err)
		}
		if !transformNear(xf.Multiply(inv), Identity(), 1e-9) {
			t.Errorf("%v * inverse = %v", xf, xf.Multiply(inv))
		}
		x, y := xf.Apply(4, 5)
		x, y = inv.Apply(x, y)
		if math.Abs(x-4) > 1e-9 || math.Abs(y-5) > 1e-9 {
			t.Errorf("round trip = (%v, %v)", x, y)
		}
	}
}

func TestTransformInvertSingular(t *testing.T) {
	xf := ScaleTransform(0, 1)
	xf.E = 7
	orig := xf
	err := xf.Invert()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Fatalf("Invert = %v, want ErrSingularMatrix", err)
	}
	if xf != orig {
		t.Errorf("singular Invert modified the transform: %v", xf)
	}
	if _, ok := orig.Inverse(); ok {
		t.Error("Inverse reported success for a singular transform")
	}
}

func TestAverageScale(t *testing.T) {
	if got := ScaleTransform(2, 4).AverageScale(); got != 3 {
		t.Errorf("AverageScale = %v, want 3", got)
	}
	if got := RotateTransform(0.7).AverageScale(); math.Abs(got-1) > eps {
		t.Errorf("rotation AverageScale = %v, want 1", got)
	}
}

func TestDegRad(t *testing.T) {
	if got := DegToRad(180); math.Abs(got-math.Pi) > eps {
		t.Errorf("DegToRad(180) = %v", got)
	}
	if got := RadToDeg(math.Pi / 2); math.Abs(got-90) > eps {
		t.Errorf("RadToDeg(pi/2) = %v", got)
	}
	if got := RadToDeg(DegToRad(33)); math.Abs(got-33) > eps {
		t.Errorf("round trip = %v", got)
	}
}
