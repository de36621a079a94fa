package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/gputypes"
	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/internal/handle"
)

// Table errors.
var (
	// ErrInvalidHandle is returned for unknown or deleted images.
	ErrInvalidHandle = errors.New("resource: invalid image handle")

	// ErrDecode is returned when image data cannot be decoded.
	ErrDecode = errors.New("resource: cannot decode image")

	// ErrImageSize is returned for non-positive dimensions or pixel buffers
	// that do not match the image size.
	ErrImageSize = errors.New("resource: invalid image size")
)

// ImageID identifies an image. The zero ID is never a valid image.
type ImageID uint64

// Valid reports whether id is structurally valid. Use Table.Lookup to
// check that it is live.
func (id ImageID) Valid() bool { return id != 0 }

// Image describes a live image.
type Image struct {
	Width, Height int
	Flags         ImageFlags
	Texture       backend.TextureID
	Format        gputypes.TextureFormat

	refs int
}

// TextureStore is the subset of backend.Backend used to hold pixel data.
type TextureStore interface {
	CreateTexture(desc backend.TextureDesc, data []byte) (backend.TextureID, error)
	UpdateTexture(id backend.TextureID, x, y, w, h int, data []byte) error
	DeleteTexture(id backend.TextureID) error
}

// Table owns the images of one context. It is not safe for concurrent use.
type Table struct {
	store  TextureStore
	images handle.Arena[Image]
}

// NewTable creates an image table backed by store.
func NewTable(store TextureStore) *Table {
	return &Table{store: store}
}

// CreateRGBA creates an RGBA8 image from w*h*4 bytes of pixel data.
// data may be nil to create a zeroed image.
func (t *Table) CreateRGBA(w, h int, flags ImageFlags, data []byte) (ImageID, error) {
	return t.create(w, h, flags, gputypes.TextureFormatRGBA8Unorm, data)
}

// CreateAlpha creates a single-channel R8 image from w*h bytes.
func (t *Table) CreateAlpha(w, h int, flags ImageFlags, data []byte) (ImageID, error) {
	return t.create(w, h, flags, gputypes.TextureFormatR8Unorm, data)
}

func (t *Table) create(w, h int, flags ImageFlags, format gputypes.TextureFormat, data []byte) (ImageID, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrImageSize, w, h)
	}
	bpp := backend.BytesPerPixel(format)
	if data != nil && len(data) != w*h*bpp {
		return 0, fmt.Errorf("%w: %d bytes for %dx%d", ErrImageSize, len(data), w, h)
	}
	tex, err := t.store.CreateTexture(backend.TextureDesc{
		Width:         w,
		Height:        h,
		Format:        format,
		Mipmaps:       flags.Has(ImageGenerateMipmaps),
		FlipY:         flags.Has(ImageFlipY),
		Premultiplied: flags.Has(ImagePremultiplied),
		Sampler:       flags.Sampler(),
	}, data)
	if err != nil {
		return 0, fmt.Errorf("resource: create texture: %w", err)
	}
	id := t.images.Insert(Image{
		Width:   w,
		Height:  h,
		Flags:   flags,
		Texture: tex,
		Format:  format,
		refs:    1,
	})
	logger().Debug("resource: image created", "id", id, "w", w, "h", h, "flags", flags)
	return ImageID(id), nil
}

// CreateFromImage uploads img. Pixels are stored with straight alpha
// unless flags has ImagePremultiplied.
func (t *Table) CreateFromImage(img image.Image, flags ImageFlags) (ImageID, error) {
	b := img.Bounds()
	var pix []byte
	if flags.Has(ImagePremultiplied) {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		pix = dst.Pix
	} else {
		pix = ToNRGBA(img).Pix
	}
	return t.CreateRGBA(b.Dx(), b.Dy(), flags, pix)
}

// Decode decodes an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP).
func (t *Table) Decode(r io.Reader, flags ImageFlags) (ImageID, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	logger().Debug("resource: decoded image", "format", format, "bounds", img.Bounds())
	return t.CreateFromImage(img, flags)
}

// CreateFromMemory decodes an encoded image held in data.
func (t *Table) CreateFromMemory(data []byte, flags ImageFlags) (ImageID, error) {
	return t.Decode(bytes.NewReader(data), flags)
}

// CreateFromFile decodes the image file at path.
func (t *Table) CreateFromFile(path string, flags ImageFlags) (ImageID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return t.CreateFromMemory(data, flags)
}

// Lookup returns the image for id.
func (t *Table) Lookup(id ImageID) (Image, bool) {
	return t.images.Get(handle.ID(id))
}

// Size returns the pixel dimensions of id.
func (t *Table) Size(id ImageID) (w, h int, err error) {
	img, ok := t.Lookup(id)
	if !ok {
		return 0, 0, ErrInvalidHandle
	}
	return img.Width, img.Height, nil
}

// Update replaces the whole pixel content of id. Dimensions and flags
// never change.
func (t *Table) Update(id ImageID, data []byte) error {
	img, ok := t.Lookup(id)
	if !ok {
		return ErrInvalidHandle
	}
	return t.UpdateRegion(id, 0, 0, img.Width, img.Height, data)
}

// UpdateRegion replaces the pixels of the rectangle (x, y, w, h). data
// holds w*h tightly packed pixels.
func (t *Table) UpdateRegion(id ImageID, x, y, w, h int, data []byte) error {
	img, ok := t.Lookup(id)
	if !ok {
		return ErrInvalidHandle
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > img.Width || y+h > img.Height {
		return fmt.Errorf("%w: region %d,%d %dx%d", ErrImageSize, x, y, w, h)
	}
	if len(data) != w*h*backend.BytesPerPixel(img.Format) {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrImageSize, len(data), w, h)
	}
	return t.store.UpdateTexture(img.Texture, x, y, w, h, data)
}

// Retain adds a reference to id.
func (t *Table) Retain(id ImageID) error {
	p := t.images.Ptr(handle.ID(id))
	if p == nil {
		return ErrInvalidHandle
	}
	p.refs++
	return nil
}

// Release drops a reference to id and deletes the image when none remain.
func (t *Table) Release(id ImageID) error {
	p := t.images.Ptr(handle.ID(id))
	if p == nil {
		return ErrInvalidHandle
	}
	p.refs--
	if p.refs > 0 {
		return nil
	}
	img, _ := t.images.Remove(handle.ID(id))
	logger().Debug("resource: image deleted", "id", id)
	return t.store.DeleteTexture(img.Texture)
}

// Delete releases the creation reference of id.
func (t *Table) Delete(id ImageID) error {
	return t.Release(id)
}

// Len returns the number of live images.
func (t *Table) Len() int {
	return t.images.Len()
}

// Close deletes every image regardless of reference counts.
func (t *Table) Close() error {
	var errs []error
	for _, img := range t.images.All() {
		if err := t.store.DeleteTexture(img.Texture); err != nil {
			errs = append(errs, err)
		}
	}
	t.images.Clear()
	return errors.Join(errs...)
}

// ToNRGBA converts img to straight-alpha RGBA pixels.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
