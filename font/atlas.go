package font

import "image"

// shelfAllocator implements shelf-based rectangle packing.
//
// Rectangles are placed left to right on horizontal shelves. A shelf is
// as tall as the tallest item placed on it; the last shelf may grow while
// there is room below it.
type shelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf
}

// shelf represents a horizontal strip in the atlas.
type shelf struct {
	y      int // Y position of shelf top
	height int // Height of the shelf (tallest item so far)
	x      int // Current X position (next free slot)
}

func newShelfAllocator(width, height, padding int) *shelfAllocator {
	return &shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a w x h rectangle.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	pw := w + a.padding
	ph := h + a.padding
	if pw > a.width {
		return -1, -1, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+pw > a.width {
			continue
		}
		if h > s.height {
			if i != len(a.shelves)-1 || s.y+ph > a.height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += pw
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + a.padding
	}
	if newY+ph > a.height {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: pw})
	return 0, newY, true
}

func (a *shelfAllocator) reset(width, height int) {
	a.width = width
	a.height = height
	a.shelves = a.shelves[:0]
}

// Atlas is the CPU copy of the current glyph atlas page. Texels are RGBA.
// Modified texels are tracked in a dirty rectangle for incremental upload.
type Atlas struct {
	width, height int
	pix           []byte
	alloc         *shelfAllocator
	dirty         image.Rectangle
	generation    int
}

func newAtlas(width, height int) *Atlas {
	return &Atlas{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
		alloc:  newShelfAllocator(width, height, 1),
	}
}

// Size returns the atlas dimensions.
func (a *Atlas) Size() (width, height int) {
	return a.width, a.height
}

// Generation counts resets. Glyph quads from an older generation refer to
// a previous page.
func (a *Atlas) Generation() int {
	return a.generation
}

// Dirty returns the region modified since the last ClearDirty.
func (a *Atlas) Dirty() (image.Rectangle, bool) {
	return a.dirty, !a.dirty.Empty()
}

// ClearDirty marks the atlas as uploaded.
func (a *Atlas) ClearDirty() {
	a.dirty = image.Rectangle{}
}

// Pixels returns the tightly packed RGBA texels of r.
func (a *Atlas) Pixels(r image.Rectangle) []byte {
	r = r.Intersect(image.Rect(0, 0, a.width, a.height))
	out := make([]byte, 0, r.Dx()*r.Dy()*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := (y*a.width + r.Min.X) * 4
		out = append(out, a.pix[off:off+r.Dx()*4]...)
	}
	return out
}

// reset empties the atlas and resizes it.
func (a *Atlas) reset(width, height int) {
	a.width = width
	a.height = height
	a.pix = make([]byte, width*height*4)
	a.alloc.reset(width, height)
	a.dirty = image.Rect(0, 0, width, height)
	a.generation++
}

// put copies a w x h RGBA block into the atlas at (x, y).
func (a *Atlas) put(x, y, w, h int, rgba []byte) {
	for row := range h {
		dst := ((y+row)*a.width + x) * 4
		copy(a.pix[dst:dst+w*4], rgba[row*w*4:(row+1)*w*4])
	}
	a.dirty = a.dirty.Union(image.Rect(x, y, x+w, y+h))
}
