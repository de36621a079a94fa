package software

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/nvg/backend"
)

// Capabilities lists every flag the software backend honors.
const Capabilities = backend.FlagAntialias |
	backend.FlagStencilStrokes |
	backend.FlagDebug |
	backend.FlagDynamicRendering |
	backend.FlagSDFText |
	backend.FlagSubpixelText |
	backend.FlagMSDFText |
	backend.FlagColorText |
	backend.FlagVirtualAtlas |
	backend.FlagColorEmoji

// Call is one recorded draw call. Exactly one field is set.
type Call struct {
	Fill      *backend.FillCall
	Stroke    *backend.StrokeCall
	Triangles *backend.TrianglesCall
}

// Kind returns "fill", "stroke" or "triangles".
func (c Call) Kind() string {
	switch {
	case c.Fill != nil:
		return "fill"
	case c.Stroke != nil:
		return "stroke"
	default:
		return "triangles"
	}
}

// Frame is a flushed frame.
type Frame struct {
	Width, Height    float64
	DevicePixelRatio float64
	Calls            []Call
}

// Option configures a Backend.
type Option func(*Backend)

// WithFlags sets the backend flags. Flags outside Capabilities are
// ignored.
func WithFlags(f backend.Flags) Option {
	return func(b *Backend) {
		b.flags = f & Capabilities
	}
}

// WithTarget renders into img instead of an internal image.
func WithTarget(img *image.RGBA) Option {
	return func(b *Backend) {
		b.target = img
	}
}

// WithClearColor sets the color the internal image is cleared to at the
// start of each frame. External targets are never cleared.
func WithClearColor(c color.Color) Option {
	return func(b *Backend) {
		b.clear = c
	}
}

// WithMaxFramesInFlight records the frame queue depth requested by the
// host. Rendering is synchronous, so it only affects fence numbering.
func WithMaxFramesInFlight(n int) Option {
	return func(b *Backend) {
		b.framesInFlight = max(1, n)
	}
}

// Backend is the software backend. It is not safe for concurrent use.
type Backend struct {
	flags          backend.Flags
	framesInFlight int
	clear          color.Color

	target *image.RGBA
	own    *image.RGBA

	textures map[backend.TextureID]*texture
	nextTex  backend.TextureID

	width, height, dpr float64
	inFrame            bool
	calls              []Call
	last               Frame
	frames             uint64

	spread int
	rast   vector.Rasterizer
	closed bool
}

var (
	_ backend.Backend        = (*Backend)(nil)
	_ backend.FieldGenerator = (*Backend)(nil)
)

// New creates a software backend with every capability enabled unless
// WithFlags restricts them.
func New(opts ...Option) *Backend {
	b := &Backend{
		flags:          Capabilities,
		framesInFlight: 1,
		clear:          color.Transparent,
		textures:       make(map[backend.TextureID]*texture),
		dpr:            1,
		spread:         defaultSpread,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// TargetView wraps img as a render target view for SetRenderTargets.
func TargetView(img *image.RGBA) gpucontext.TextureView {
	return gpucontext.NewTextureView(unsafe.Pointer(img))
}

// Flags implements backend.Backend.
func (b *Backend) Flags() backend.Flags { return b.flags }

// SetRenderTargets implements backend.Backend. color must be a view
// created by TargetView or nil to render into the internal image;
// depthStencil is unused.
func (b *Backend) SetRenderTargets(color, _ gpucontext.TextureView) {
	if color.IsNil() {
		b.target = nil
		return
	}
	b.target = (*image.RGBA)(color.Pointer())
}

// CommandBuffer implements backend.Backend. The software backend has no
// command encoder and returns the nil handle.
func (b *Backend) CommandBuffer() gpucontext.CommandEncoder {
	return gpucontext.CommandEncoder{}
}

// RenderFinishedSemaphore implements backend.Backend.
func (b *Backend) RenderFinishedSemaphore() backend.Semaphore {
	return backend.Semaphore(b.frames%uint64(b.framesInFlight) + 1)
}

// FrameFence implements backend.Backend. The fence is the sequence number
// of the current frame, counting from 1.
func (b *Backend) FrameFence() backend.Fence {
	return backend.Fence(b.frames + 1)
}

// Viewport implements backend.Backend. The target is left untouched until
// Flush, so a cancelled frame never changes the presented image.
func (b *Backend) Viewport(width, height, devicePixelRatio float64) {
	b.width, b.height, b.dpr = width, height, devicePixelRatio
	b.calls = nil
	b.inFrame = true
}

// frameTarget returns the image the current frame renders into. The
// internal image is resized to the viewport and cleared.
func (b *Backend) frameTarget() *image.RGBA {
	if b.target != nil {
		return b.target
	}
	w := max(0, int(math.Ceil(b.width*b.dpr)))
	h := max(0, int(math.Ceil(b.height*b.dpr)))
	if b.own == nil || b.own.Rect.Dx() != w || b.own.Rect.Dy() != h {
		b.own = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(b.own, b.own.Rect, image.NewUniform(b.clear), image.Point{}, draw.Src)
	return b.own
}

// Cancel implements backend.Backend.
func (b *Backend) Cancel() {
	logger().Debug("software: frame cancelled", "calls", len(b.calls))
	b.calls = nil
	b.inFrame = false
}

// Flush implements backend.Backend. It rasterizes the recorded calls in
// submission order.
func (b *Backend) Flush() error {
	if b.closed {
		return fmt.Errorf("software: flush: backend closed")
	}
	if dst := b.frameTarget(); dst != nil {
		for _, c := range b.calls {
			switch {
			case c.Fill != nil:
				b.renderFill(dst, c.Fill)
			case c.Stroke != nil:
				b.renderStroke(dst, c.Stroke)
			case c.Triangles != nil:
				b.renderTriangles(dst, c.Triangles)
			}
		}
	}
	b.last = Frame{Width: b.width, Height: b.height, DevicePixelRatio: b.dpr, Calls: b.calls}
	b.frames++
	b.calls = nil
	b.inFrame = false
	logger().Debug("software: frame flushed", "frame", b.frames, "calls", len(b.last.Calls))
	return nil
}

// Fill implements backend.Backend.
func (b *Backend) Fill(call *backend.FillCall) {
	b.calls = append(b.calls, Call{Fill: call})
}

// Stroke implements backend.Backend.
func (b *Backend) Stroke(call *backend.StrokeCall) {
	b.calls = append(b.calls, Call{Stroke: call})
}

// Triangles implements backend.Backend.
func (b *Backend) Triangles(call *backend.TrianglesCall) {
	b.calls = append(b.calls, Call{Triangles: call})
}

// Recorded returns the calls recorded in the current frame.
func (b *Backend) Recorded() []Call {
	return b.calls
}

// LastFrame returns the most recently flushed frame.
func (b *Backend) LastFrame() Frame {
	return b.last
}

// Frames returns the number of flushed frames.
func (b *Backend) Frames() uint64 {
	return b.frames
}

// Target returns the image frames are rendered into. The internal image
// is nil until the first Flush.
func (b *Backend) Target() *image.RGBA {
	if b.target != nil {
		return b.target
	}
	return b.own
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.textures = nil
	b.calls = nil
	return nil
}

type driver struct {
	opts []Option
}

// Driver returns the "software" driver. opts apply to every backend it
// creates.
func Driver(opts ...Option) backend.Driver {
	return driver{opts: opts}
}

func (driver) Name() string { return "software" }

func (driver) Capabilities() backend.Flags { return Capabilities }

func (d driver) Create(desc backend.Descriptor) (backend.Backend, error) {
	opts := append([]Option{
		WithFlags(desc.Flags),
		WithMaxFramesInFlight(desc.MaxFramesInFlight),
	}, d.opts...)
	return New(opts...), nil
}
