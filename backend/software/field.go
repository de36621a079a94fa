package software

import (
	"fmt"
	"math"

	"github.com/gogpu/nvg/backend"
)

// defaultSpread is the field spread assumed before GenerateField is
// first called.
const defaultSpread = 4

// GenerateField implements backend.FieldGenerator. Distances are found
// by brute force within spread pixels; a texel stores 0.5 on the outline,
// 1 at spread pixels inside and 0 at spread pixels outside. MSDF fields
// carry the same distance in every color channel, which the median
// decoder reads back unchanged.
func (b *Backend) GenerateField(mode backend.GlyphMode, pixels []byte, w, h, spread int) ([]byte, error) {
	if mode != backend.GlyphSDF && mode != backend.GlyphMSDF {
		return nil, fmt.Errorf("software: no field for glyph mode %s", mode)
	}
	if w <= 0 || h <= 0 || len(pixels) < w*h {
		return nil, fmt.Errorf("%w: %dx%d field", backend.ErrTextureBounds, w, h)
	}
	if spread <= 0 {
		spread = defaultSpread
	}
	b.spread = spread

	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return pixels[y*w+x] >= 128
	}
	out := make([]byte, w*h*4)
	limit := float64(spread)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			in := inside(x, y)
			best := limit
			for dy := -spread; dy <= spread; dy++ {
				for dx := -spread; dx <= spread; dx++ {
					if inside(x+dx, y+dy) == in {
						continue
					}
					if d := math.Hypot(float64(dx), float64(dy)) - 0.5; d < best {
						best = d
					}
				}
			}
			if !in {
				best = -best
			}
			v := uint8(math.Round(clamp01(0.5+best/(2*limit)) * 255))
			i := (y*w + x) * 4
			out[i], out[i+1], out[i+2], out[i+3] = v, v, v, 255
		}
	}
	return out, nil
}

// fieldCoverage converts a field sample to pixel coverage.
func (b *Backend) fieldCoverage(v float64) float64 {
	return clamp01((v-0.5)*2*float64(b.spread) + 0.5)
}
