package software

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nvg/backend"
)

// texture is a CPU copy of a backend texture. Mipmaps are not built;
// sampling always reads the base level.
type texture struct {
	desc backend.TextureDesc
	bpp  int
	pix  []byte
}

// CreateTexture implements backend.Backend.
func (b *Backend) CreateTexture(desc backend.TextureDesc, data []byte) (backend.TextureID, error) {
	bpp := backend.BytesPerPixel(desc.Format)
	if bpp == 0 {
		return 0, fmt.Errorf("software: unsupported texture format %v", desc.Format)
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", backend.ErrTextureBounds, desc.Width, desc.Height)
	}
	size := desc.Width * desc.Height * bpp
	if data != nil && len(data) != size {
		return 0, fmt.Errorf("%w: %d bytes for %dx%d", backend.ErrTextureBounds, len(data), desc.Width, desc.Height)
	}
	t := &texture{desc: desc, bpp: bpp, pix: make([]byte, size)}
	copy(t.pix, data)
	b.nextTex++
	b.textures[b.nextTex] = t
	logger().Debug("software: texture created", "id", b.nextTex, "label", desc.Label, "w", desc.Width, "h", desc.Height)
	return b.nextTex, nil
}

// UpdateTexture implements backend.Backend.
func (b *Backend) UpdateTexture(id backend.TextureID, x, y, w, h int, data []byte) error {
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", backend.ErrUnknownTexture, id)
	}
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > t.desc.Width || y+h > t.desc.Height || len(data) < w*h*t.bpp {
		return fmt.Errorf("%w: %d,%d %dx%d", backend.ErrTextureBounds, x, y, w, h)
	}
	stride := t.desc.Width * t.bpp
	row := w * t.bpp
	for j := 0; j < h; j++ {
		off := (y+j)*stride + x*t.bpp
		copy(t.pix[off:off+row], data[j*row:(j+1)*row])
	}
	return nil
}

// DeleteTexture implements backend.Backend.
func (b *Backend) DeleteTexture(id backend.TextureID) error {
	if _, ok := b.textures[id]; !ok {
		return fmt.Errorf("%w: %d", backend.ErrUnknownTexture, id)
	}
	delete(b.textures, id)
	return nil
}

// TextureSize implements backend.Backend.
func (b *Backend) TextureSize(id backend.TextureID) (int, int, error) {
	t, ok := b.textures[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", backend.ErrUnknownTexture, id)
	}
	return t.desc.Width, t.desc.Height, nil
}

// TextureData returns a copy of the pixels of id.
func (b *Backend) TextureData(id backend.TextureID) ([]byte, error) {
	t, ok := b.textures[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", backend.ErrUnknownTexture, id)
	}
	return append([]byte(nil), t.pix...), nil
}

// Textures returns the number of live textures.
func (b *Backend) Textures() int {
	return len(b.textures)
}

// texel returns the premultiplied color at integer coordinates. Single
// channel textures replicate their value into every component.
func (t *texture) texel(x, y int) rgba {
	if t.desc.FlipY {
		y = t.desc.Height - 1 - y
	}
	i := (y*t.desc.Width + x) * t.bpp
	if t.bpp == 1 {
		v := float64(t.pix[i]) / 255
		return rgba{v, v, v, v}
	}
	c := rgba{
		float64(t.pix[i]) / 255,
		float64(t.pix[i+1]) / 255,
		float64(t.pix[i+2]) / 255,
		float64(t.pix[i+3]) / 255,
	}
	if !t.desc.Premultiplied {
		c[0] *= c[3]
		c[1] *= c[3]
		c[2] *= c[3]
	}
	return c
}

func wrap(i, n int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		return ((i % n) + n) % n
	case gputypes.AddressModeMirrorRepeat:
		p := ((i % (2 * n)) + 2*n) % (2 * n)
		if p >= n {
			p = 2*n - 1 - p
		}
		return p
	default:
		return min(max(i, 0), n-1)
	}
}

// sample reads the texture at normalized coordinates (u, v) with the
// texture's sampler.
func (t *texture) sample(u, v float64) rgba {
	w, h := t.desc.Width, t.desc.Height
	s := t.desc.Sampler
	if s.MagFilter == gputypes.FilterModeNearest {
		x := wrap(int(math.Floor(u*float64(w))), w, s.AddressModeU)
		y := wrap(int(math.Floor(v*float64(h))), h, s.AddressModeV)
		return t.texel(x, y)
	}

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)
	xa, xb := wrap(x0, w, s.AddressModeU), wrap(x0+1, w, s.AddressModeU)
	ya, yb := wrap(y0, h, s.AddressModeV), wrap(y0+1, h, s.AddressModeV)

	c00, c10 := t.texel(xa, ya), t.texel(xb, ya)
	c01, c11 := t.texel(xa, yb), t.texel(xb, yb)
	var out rgba
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*tx
		bot := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bot-top)*ty
	}
	return out
}
