package font

import (
	"image"
	"testing"
)

func TestShelfAllocate(t *testing.T) {
	a := newShelfAllocator(32, 32, 1)

	x, y, ok := a.allocate(10, 10)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first = %d,%d,%v", x, y, ok)
	}
	x, y, ok = a.allocate(10, 5)
	if !ok || x != 11 || y != 0 {
		t.Errorf("second = %d,%d,%v; want same shelf at x=11", x, y, ok)
	}
	x, y, ok = a.allocate(15, 10)
	if !ok || x != 0 || y != 11 {
		t.Errorf("third = %d,%d,%v; want new shelf at y=11", x, y, ok)
	}
	if _, _, ok := a.allocate(40, 1); ok {
		t.Error("oversized rectangle allocated")
	}
}

func TestShelfFull(t *testing.T) {
	a := newShelfAllocator(16, 16, 0)
	n := 0
	for {
		if _, _, ok := a.allocate(8, 8); !ok {
			break
		}
		n++
	}
	if n != 4 {
		t.Errorf("allocated %d 8x8 cells in 16x16, want 4", n)
	}
	a.reset(32, 32)
	if _, _, ok := a.allocate(8, 8); !ok {
		t.Error("allocation failed after reset")
	}
}

func TestAtlasDirty(t *testing.T) {
	a := newAtlas(8, 8)
	if _, ok := a.Dirty(); ok {
		t.Fatal("new atlas reported dirty")
	}
	a.put(2, 3, 2, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	r, ok := a.Dirty()
	if !ok || r != image.Rect(2, 3, 4, 4) {
		t.Fatalf("Dirty = %v, %v", r, ok)
	}
	if got := a.Pixels(r); len(got) != 8 || got[4] != 5 {
		t.Errorf("Pixels = %v", got)
	}
	a.ClearDirty()
	gen := a.Generation()
	a.reset(16, 8)
	if w, h := a.Size(); w != 16 || h != 8 || a.Generation() != gen+1 {
		t.Errorf("after reset: %dx%d gen %d", w, h, a.Generation())
	}
}
