package nvg

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/font"
	"github.com/gogpu/nvg/resource"
)

// maxFontPages bounds the glyph atlas pages used within one frame.
const maxFontPages = 4

// FrameStats counts the work submitted during the current frame.
type FrameStats struct {
	DrawCalls     int
	FillPaths     int
	StrokePaths   int
	TextTriangles int
}

type atlasPage struct {
	tex  backend.TextureID
	w, h int
}

// Context is an immediate-mode vector graphics context. A frame is drawn
// between BeginFrame and EndFrame; state changes and drawing calls outside
// a frame are usage errors. Images and fonts persist across frames.
//
// A Context must be used from a single goroutine.
type Context struct {
	cfg      Config
	be       backend.Backend
	ownsBE   bool
	flags    Flags
	images   *resource.Table
	fonts    *font.Registry
	pages    []atlasPage
	states   stateStack
	path     pathBuilder
	inFrame  bool
	closed   bool
	width    float64
	height   float64
	dpr      float64
	tessTol  float64
	distTol  float64
	fringe   float64
	stats    FrameStats
	err      error
	glyphBuf []font.Glyph
	vertBuf  []backend.Vertex
}

var _ io.Closer = (*Context)(nil)

// NewContext creates a context. Unless cfg.Backend is set, the backend is
// created with the driver named by cfg.Driver, which requires a prior
// backend.Init.
func NewContext(cfg Config) (*Context, error) {
	if cfg.MaxFramesInFlight <= 0 {
		cfg.MaxFramesInFlight = 2
	}
	if cfg.EmojiFontPath != "" && cfg.EmojiFontBytes != nil {
		return nil, usage("NewContext", errors.New("both EmojiFontPath and EmojiFontBytes set"))
	}

	c := &Context{cfg: cfg, flags: cfg.Flags, dpr: 1}
	if cfg.Backend != nil {
		if missing := cfg.Flags &^ cfg.Backend.Flags(); missing != 0 {
			return nil, fmt.Errorf("nvg: %w: backend lacks %s", backend.ErrUnsupportedFlags, missing)
		}
		c.be = cfg.Backend
	} else {
		devices := cfg.Devices
		if devices == nil {
			devices = backend.NullDevice{}
		}
		be, err := backend.Create(cfg.Driver, backend.Descriptor{
			Devices:           devices,
			MaxFramesInFlight: cfg.MaxFramesInFlight,
			Flags:             cfg.Flags,
			Label:             "nvg",
		})
		if err != nil {
			return nil, fmt.Errorf("nvg: create backend: %w", err)
		}
		c.be = be
		c.ownsBE = true
	}

	maxAtlas := font.DefaultMaxAtlasSize
	if c.flags.Has(FlagVirtualAtlas) {
		maxAtlas = font.VirtualAtlasSize
	}
	opts := []font.Option{
		font.WithSDF(c.flags.Has(FlagSDFText)),
		font.WithMSDF(c.flags.Has(FlagMSDFText)),
		font.WithColorGlyphs(c.flags.Has(FlagColorText)),
		font.WithShaping(cfg.Shaping),
		font.WithAtlasSize(font.DefaultAtlasSize, maxAtlas),
	}
	if g, ok := c.be.(backend.FieldGenerator); ok {
		opts = append(opts, font.WithFieldGenerator(fieldGenerator{g}))
	}
	c.fonts = font.NewRegistry(opts...)
	c.images = resource.NewTable(c.be)
	c.states = newStateStack()
	c.setTolerances(1)

	w, h := c.fonts.Atlas().Size()
	if err := c.addAtlasPage(w, h); err != nil {
		c.release()
		return nil, err
	}
	if err := c.loadEmoji(); err != nil {
		c.release()
		return nil, err
	}
	Logger().Info("nvg: context created", "flags", c.flags, "frames", cfg.MaxFramesInFlight)
	return c, nil
}

func (c *Context) loadEmoji() error {
	if !c.flags.Has(FlagColorEmoji) || (c.cfg.EmojiFontPath == "" && c.cfg.EmojiFontBytes == nil) {
		return nil
	}
	var id FontID
	var err error
	if c.cfg.EmojiFontPath != "" {
		id, err = c.fonts.Create("emoji", c.cfg.EmojiFontPath, 0)
	} else {
		id, err = c.fonts.CreateMem("emoji", c.cfg.EmojiFontBytes, false, 0)
	}
	if err != nil {
		return fmt.Errorf("%w: emoji font: %w", ErrResourceLoad, err)
	}
	return c.fonts.SetEmoji(id)
}

// fieldGenerator adapts a backend distance-field generator to the font
// registry.
type fieldGenerator struct {
	g backend.FieldGenerator
}

func (f fieldGenerator) GenerateField(mode font.Mode, pixels []byte, w, h, spread int) ([]byte, error) {
	return f.g.GenerateField(glyphMode(mode, false), pixels, w, h, spread)
}

func glyphMode(m font.Mode, color bool) backend.GlyphMode {
	switch {
	case color:
		return backend.GlyphColor
	case m == font.ModeSDF:
		return backend.GlyphSDF
	case m == font.ModeMSDF:
		return backend.GlyphMSDF
	default:
		return backend.GlyphBitmap
	}
}

// Close deletes the context, its images and fonts, and the backend if the
// context created it. Close fails with a UsageError while a frame is in
// progress. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	if c.inFrame {
		return usage("Close", errFrameOpen)
	}
	return c.release()
}

// Delete is an alias for Close.
func (c *Context) Delete() error {
	return c.Close()
}

func (c *Context) release() error {
	c.closed = true
	var errs []error
	if c.fonts != nil {
		errs = append(errs, c.fonts.Close())
	}
	if c.images != nil {
		errs = append(errs, c.images.Close())
	}
	for _, p := range c.pages {
		errs = append(errs, c.be.DeleteTexture(p.tex))
	}
	c.pages = nil
	if c.ownsBE {
		errs = append(errs, c.be.Close())
	}
	Logger().Debug("nvg: context closed")
	return errors.Join(errs...)
}

func (c *Context) setTolerances(ratio float64) {
	c.dpr = ratio
	c.tessTol = 0.25 / ratio
	c.distTol = 0.01 / ratio
	c.fringe = 1.0 / ratio
}

// BeginFrame starts a frame of the given logical size. devicePixelRatio
// is the number of device pixels per logical unit. The state stack is
// cleared and the active state reset to DefaultRenderState.
func (c *Context) BeginFrame(width, height, devicePixelRatio float64) error {
	if c.closed {
		return usage("BeginFrame", errors.New("context closed"))
	}
	if c.inFrame {
		return usage("BeginFrame", errFrameOpen)
	}
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	c.states.clear()
	c.path.reset()
	c.setTolerances(devicePixelRatio)
	c.width, c.height = width, height
	c.stats = FrameStats{}
	c.err = nil
	c.be.Viewport(width, height, devicePixelRatio)
	c.inFrame = true
	Logger().Debug("nvg: begin frame", "w", width, "h", height, "dpr", devicePixelRatio)
	return nil
}

// EndFrame submits the frame to the backend.
func (c *Context) EndFrame() error {
	if !c.inFrame {
		return usage("EndFrame", errNoFrame)
	}
	c.uploadAtlas()
	c.inFrame = false
	err := c.be.Flush()
	c.compactAtlas()
	Logger().Debug("nvg: end frame",
		"draws", c.stats.DrawCalls,
		"fills", c.stats.FillPaths,
		"strokes", c.stats.StrokePaths,
		"text", c.stats.TextTriangles)
	if err != nil {
		return fmt.Errorf("nvg: flush: %w", err)
	}
	return nil
}

// CancelFrame discards everything drawn since BeginFrame.
func (c *Context) CancelFrame() error {
	if !c.inFrame {
		return usage("CancelFrame", errNoFrame)
	}
	c.be.Cancel()
	c.uploadAtlas()
	c.compactAtlas()
	c.path.reset()
	c.stats = FrameStats{}
	c.inFrame = false
	Logger().Debug("nvg: frame cancelled")
	return nil
}

// InFrame reports whether a frame is in progress.
func (c *Context) InFrame() bool {
	return c.inFrame
}

// Flags returns the capabilities the context was created with.
func (c *Context) Flags() Flags {
	return c.flags
}

// Backend returns the backend the context draws with.
func (c *Context) Backend() backend.Backend {
	return c.be
}

// SetRenderTargets sets the color and depth-stencil attachments of the
// next EndFrame.
func (c *Context) SetRenderTargets(color, depthStencil TextureView) {
	c.be.SetRenderTargets(color, depthStencil)
}

// CommandBuffer returns the backend command encoder of the current frame.
func (c *Context) CommandBuffer() CommandEncoder {
	return c.be.CommandBuffer()
}

// RenderFinishedSemaphore returns the semaphore signalled when the
// current frame finishes rendering.
func (c *Context) RenderFinishedSemaphore() backend.Semaphore {
	return c.be.RenderFinishedSemaphore()
}

// FrameFence returns the backend fence of the current frame.
func (c *Context) FrameFence() backend.Fence {
	return c.be.FrameFence()
}

// FrameStats returns the counters of the current or last frame.
func (c *Context) FrameStats() FrameStats {
	return c.stats
}

// Err returns the first error reported by a drawing call since
// BeginFrame.
func (c *Context) Err() error {
	return c.err
}

// report records an error from a call that has no error result. Usage
// errors panic in contexts created with FlagDebug.
func (c *Context) report(err error) {
	if c.err == nil {
		c.err = err
	}
	Logger().Warn("nvg: "+err.Error(), "err", err)
	if c.cfg.OnError != nil {
		c.cfg.OnError(err)
	}
	if c.flags.Has(FlagDebug) && errors.Is(err, ErrUsage) {
		panic(err)
	}
}

// frameOp reports a usage error and returns false outside a frame.
func (c *Context) frameOp(op string) bool {
	if !c.inFrame {
		c.report(usage(op, errNoFrame))
		return false
	}
	return true
}

// addAtlasPage creates a backend texture for a new glyph atlas page.
func (c *Context) addAtlasPage(w, h int) error {
	sampler := gputypes.LinearSamplerDescriptor()
	tex, err := c.be.CreateTexture(backend.TextureDesc{
		Label:         "nvg glyph atlas",
		Width:         w,
		Height:        h,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Premultiplied: true,
		Sampler:       sampler,
	}, nil)
	if err != nil {
		return fmt.Errorf("nvg: create glyph atlas: %w", err)
	}
	c.pages = append(c.pages, atlasPage{tex: tex, w: w, h: h})
	return nil
}

// growAtlas starts a new atlas page. It reports false when the frame has
// used all its pages.
func (c *Context) growAtlas() bool {
	if len(c.pages) >= maxFontPages {
		return false
	}
	c.uploadAtlas()
	w, h := c.fonts.NextAtlasSize()
	if err := c.addAtlasPage(w, h); err != nil {
		c.report(err)
		return false
	}
	c.fonts.ResetAtlas(w, h)
	c.fonts.Atlas().ClearDirty()
	Logger().Debug("nvg: glyph atlas page added", "pages", len(c.pages), "w", w, "h", h)
	return true
}

// uploadAtlas copies the modified part of the CPU atlas to the current
// page texture.
func (c *Context) uploadAtlas() {
	atlas := c.fonts.Atlas()
	r, dirty := atlas.Dirty()
	if !dirty || len(c.pages) == 0 {
		return
	}
	page := c.pages[len(c.pages)-1]
	if err := c.be.UpdateTexture(page.tex, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), atlas.Pixels(r)); err != nil {
		c.report(fmt.Errorf("nvg: upload glyph atlas: %w", err))
		return
	}
	atlas.ClearDirty()
}

// compactAtlas keeps only the newest atlas page once a frame is done.
func (c *Context) compactAtlas() {
	if len(c.pages) <= 1 {
		return
	}
	last := c.pages[len(c.pages)-1]
	for _, p := range c.pages[:len(c.pages)-1] {
		if err := c.be.DeleteTexture(p.tex); err != nil {
			Logger().Warn("nvg: delete atlas page", "err", err)
		}
	}
	c.pages = append(c.pages[:0], last)
}
