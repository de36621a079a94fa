package resource

import (
	"strings"

	"github.com/gogpu/gputypes"
)

// ImageFlags are fixed when an image is created.
type ImageFlags uint32

const (
	// ImageGenerateMipmaps builds a mip chain on upload.
	ImageGenerateMipmaps ImageFlags = 1 << iota
	// ImageRepeatX repeats the image horizontally.
	ImageRepeatX
	// ImageRepeatY repeats the image vertically.
	ImageRepeatY
	// ImageFlipY flips the image vertically when sampling.
	ImageFlipY
	// ImagePremultiplied marks pixel data as alpha-premultiplied.
	ImagePremultiplied
	// ImageNearest samples with nearest-neighbor filtering.
	ImageNearest
)

// Has reports whether all bits of o are set in f.
func (f ImageFlags) Has(o ImageFlags) bool {
	return f&o == o
}

func (f ImageFlags) String() string {
	if f == 0 {
		return "None"
	}
	names := []string{"GenerateMipmaps", "RepeatX", "RepeatY", "FlipY", "Premultiplied", "Nearest"}
	var parts []string
	for i, n := range names {
		if f&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// Sampler maps the flags to a sampler descriptor.
func (f ImageFlags) Sampler() gputypes.SamplerDescriptor {
	desc := gputypes.LinearSamplerDescriptor()
	desc.AddressModeU = gputypes.AddressModeClampToEdge
	desc.AddressModeV = gputypes.AddressModeClampToEdge
	desc.AddressModeW = gputypes.AddressModeClampToEdge
	if f.Has(ImageRepeatX) {
		desc.AddressModeU = gputypes.AddressModeRepeat
	}
	if f.Has(ImageRepeatY) {
		desc.AddressModeV = gputypes.AddressModeRepeat
	}

	filter := gputypes.FilterModeLinear
	mip := gputypes.MipmapFilterModeLinear
	if f.Has(ImageNearest) {
		filter = gputypes.FilterModeNearest
		mip = gputypes.MipmapFilterModeNearest
	}
	desc.MagFilter = filter
	desc.MinFilter = filter
	desc.MipmapFilter = mip
	if !f.Has(ImageGenerateMipmaps) {
		desc.LodMaxClamp = 0
	}
	return desc
}
