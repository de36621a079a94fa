package nvg

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/nvg/resource"
)

// ImageFlags control how an image is sampled.
type ImageFlags = resource.ImageFlags

const (
	ImageGenerateMipmaps = resource.ImageGenerateMipmaps
	ImageRepeatX         = resource.ImageRepeatX
	ImageRepeatY         = resource.ImageRepeatY
	ImageFlipY           = resource.ImageFlipY
	ImagePremultiplied   = resource.ImagePremultiplied
	ImageNearest         = resource.ImageNearest
)

// imageError maps a resource table error onto the nvg error categories.
func imageError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, resource.ErrDecode), errors.Is(err, resource.ErrImageSize):
		return fmt.Errorf("%w: %s: %w", ErrResourceLoad, op, err)
	case errors.Is(err, resource.ErrInvalidHandle):
		return fmt.Errorf("nvg: %s: %w", op, ErrInvalidHandle)
	default:
		return fmt.Errorf("nvg: %s: %w", op, err)
	}
}

// CreateImage loads the image file at path.
func (c *Context) CreateImage(path string, flags ImageFlags) (ImageID, error) {
	id, err := c.images.CreateFromFile(path, flags)
	return id, imageError("CreateImage", err)
}

// CreateImageMem decodes an encoded image held in data.
func (c *Context) CreateImageMem(flags ImageFlags, data []byte) (ImageID, error) {
	id, err := c.images.CreateFromMemory(data, flags)
	return id, imageError("CreateImageMem", err)
}

// CreateImageRGBA creates an image from w*h RGBA pixels.
func (c *Context) CreateImageRGBA(w, h int, flags ImageFlags, data []byte) (ImageID, error) {
	id, err := c.images.CreateRGBA(w, h, flags, data)
	return id, imageError("CreateImageRGBA", err)
}

// CreateImageFromImage uploads img.
func (c *Context) CreateImageFromImage(img image.Image, flags ImageFlags) (ImageID, error) {
	id, err := c.images.CreateFromImage(img, flags)
	return id, imageError("CreateImageFromImage", err)
}

// UpdateImage replaces the pixels of id. data must hold as many bytes as
// the image was created with.
func (c *Context) UpdateImage(id ImageID, data []byte) error {
	return imageError("UpdateImage", c.images.Update(id, data))
}

// ImageSize returns the dimensions of id.
func (c *Context) ImageSize(id ImageID) (w, h int, err error) {
	w, h, err = c.images.Size(id)
	return w, h, imageError("ImageSize", err)
}

// RetainImage adds a reference to id. Each reference needs one
// DeleteImage.
func (c *Context) RetainImage(id ImageID) error {
	return imageError("RetainImage", c.images.Retain(id))
}

// DeleteImage drops a reference to id. The image is freed when no
// reference remains; paints still bound to it report ErrInvalidHandle.
func (c *Context) DeleteImage(id ImageID) error {
	return imageError("DeleteImage", c.images.Delete(id))
}
