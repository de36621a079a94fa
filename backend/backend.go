package backend

import (
	"errors"
	"strings"

	"github.com/gogpu/gpucontext"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested driver is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when drivers are requested before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("backend: already initialized")

	// ErrUnsupportedFlags is returned when a descriptor requests capabilities
	// the driver does not provide.
	ErrUnsupportedFlags = errors.New("backend: unsupported flags")

	// ErrUnknownTexture is returned for texture ids the backend does not own.
	ErrUnknownTexture = errors.New("backend: unknown texture")

	// ErrTextureBounds is returned when an update region exceeds the texture.
	ErrTextureBounds = errors.New("backend: region out of texture bounds")
)

// Flags enumerates backend capabilities. Flags are fixed when a backend is
// created and never change afterwards.
type Flags uint32

const (
	// FlagAntialias enables geometry-based antialiasing of fills and strokes.
	FlagAntialias Flags = 1 << iota
	// FlagStencilStrokes renders strokes through the stencil buffer so
	// overlapping stroke segments do not double-blend.
	FlagStencilStrokes
	// FlagDebug enables validation and makes usage errors fatal.
	FlagDebug
	// FlagDynamicRendering selects render-pass-less submission.
	FlagDynamicRendering
	// FlagSDFText enables signed distance field glyphs.
	FlagSDFText
	// FlagSubpixelText enables horizontal subpixel glyph positioning.
	FlagSubpixelText
	// FlagMSDFText enables multi-channel signed distance field glyphs.
	FlagMSDFText
	// FlagColorText enables color glyph quads.
	FlagColorText
	// FlagVirtualAtlas allows glyph atlas pages larger than the default.
	FlagVirtualAtlas
	// FlagColorEmoji enables the secondary emoji font source.
	FlagColorEmoji
)

var flagNames = []string{
	"Antialias",
	"StencilStrokes",
	"Debug",
	"DynamicRendering",
	"SDFText",
	"SubpixelText",
	"MSDFText",
	"ColorText",
	"VirtualAtlas",
	"ColorEmoji",
}

// Has reports whether all bits of o are set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// String returns the set flag names joined by '|'.
func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var b strings.Builder
	for i, name := range flagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
	}
	return b.String()
}

// Fence is an opaque frame-completion fence owned by the backend.
type Fence uint64

// Semaphore is an opaque GPU semaphore owned by the backend.
type Semaphore uint64

// Backend consumes the resolved draw calls of one rendering context.
//
// Calls between Viewport and Flush (or Cancel) belong to one frame. The
// backend may record them lazily; nothing is presented before Flush.
type Backend interface {
	// Flags returns the capabilities the backend was created with.
	Flags() Flags

	// SetRenderTargets sets the attachments used by the next Flush.
	SetRenderTargets(color, depthStencil gpucontext.TextureView)

	// CommandBuffer returns the command encoder of the current frame so the
	// host can order it within a larger frame graph.
	CommandBuffer() gpucontext.CommandEncoder

	// RenderFinishedSemaphore returns the semaphore signalled when the
	// current frame finishes rendering.
	RenderFinishedSemaphore() Semaphore

	// FrameFence returns the fence of the current frame.
	FrameFence() Fence

	// CreateTexture creates a texture. data may be nil, otherwise it holds
	// Width*Height tightly packed pixels in desc.Format.
	CreateTexture(desc TextureDesc, data []byte) (TextureID, error)

	// UpdateTexture replaces the region (x, y, w, h) with data, which holds
	// w*h tightly packed pixels.
	UpdateTexture(id TextureID, x, y, w, h int, data []byte) error

	// DeleteTexture releases a texture.
	DeleteTexture(id TextureID) error

	// TextureSize returns the pixel dimensions of a texture.
	TextureSize(id TextureID) (width, height int, err error)

	// Viewport starts a frame of the given logical size.
	Viewport(width, height, devicePixelRatio float64)

	// Cancel discards every call recorded since Viewport.
	Cancel()

	// Flush submits the recorded calls to the render targets.
	Flush() error

	Fill(call *FillCall)
	Stroke(call *StrokeCall)
	Triangles(call *TrianglesCall)

	// Close releases the backend. It must not be called during a frame.
	Close() error
}

// FieldGenerator is implemented by backends that can turn glyph coverage
// into distance-field bitmaps.
type FieldGenerator interface {
	// GenerateField converts a coverage bitmap into a field of the same
	// size. pixels holds w*h coverage bytes. The result holds w*h RGBA
	// pixels. spread is the distance in pixels mapped to the full range.
	GenerateField(mode GlyphMode, pixels []byte, w, h, spread int) ([]byte, error)
}

// Descriptor configures backend creation.
type Descriptor struct {
	// Devices provides the host's GPU device and queue.
	Devices gpucontext.DeviceProvider

	// MaxFramesInFlight bounds how many frames the backend may queue.
	MaxFramesInFlight int

	// Flags are the requested capabilities.
	Flags Flags

	// Label is an optional debug label.
	Label string
}

// Driver creates backends of one kind.
type Driver interface {
	// Name returns the driver identifier (e.g., "software").
	Name() string

	// Capabilities returns every flag the driver can honor.
	Capabilities() Flags

	// Create builds a backend for desc.
	Create(desc Descriptor) (Backend, error)
}
