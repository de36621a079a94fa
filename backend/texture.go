package backend

import "github.com/gogpu/gputypes"

// TextureID identifies a backend texture. Zero is never a valid texture.
type TextureID uint32

// TextureDesc describes a texture to create.
type TextureDesc struct {
	// Label is an optional debug label.
	Label string

	Width, Height int

	// Format is TextureFormatRGBA8Unorm or TextureFormatR8Unorm.
	Format gputypes.TextureFormat

	// Mipmaps requests a full mip chain.
	Mipmaps bool

	// FlipY stores the image bottom row first.
	FlipY bool

	// Premultiplied marks color data as alpha-premultiplied.
	Premultiplied bool

	// Sampler describes addressing and filtering.
	Sampler gputypes.SamplerDescriptor
}

// BytesPerPixel returns the texel size of format, or 0 when unsupported.
func BytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm:
		return 4
	default:
		return 0
	}
}
