// Package resource owns the images of a rendering context.
//
// Images are addressed by generational handles: deleting an image
// invalidates every copy of its ImageID, even after the slot is reused.
// Pixel data lives in backend textures; the table keeps dimensions, flags
// and a reference count per image.
//
// Decoders for PNG, JPEG and GIF (standard library) and BMP, TIFF and
// WebP (golang.org/x/image) are registered by this package.
package resource
