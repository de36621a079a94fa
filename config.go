package nvg

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/nvg/backend"
)

// Flags are the capabilities a context is created with.
type Flags = backend.Flags

const (
	FlagAntialias        = backend.FlagAntialias
	FlagStencilStrokes   = backend.FlagStencilStrokes
	FlagDebug            = backend.FlagDebug
	FlagDynamicRendering = backend.FlagDynamicRendering
	FlagSDFText          = backend.FlagSDFText
	FlagSubpixelText     = backend.FlagSubpixelText
	FlagMSDFText         = backend.FlagMSDFText
	FlagColorText        = backend.FlagColorText
	FlagVirtualAtlas     = backend.FlagVirtualAtlas
	FlagColorEmoji       = backend.FlagColorEmoji
)

// Config configures NewContext.
type Config struct {
	// Flags are the requested capabilities. They are fixed for the
	// lifetime of the context.
	Flags Flags

	// MaxFramesInFlight bounds how many frames the backend may queue.
	MaxFramesInFlight int

	// Driver names the registered backend driver to use. Empty selects
	// the highest-priority driver registered with backend.Init.
	Driver string

	// Devices provides the host's GPU device and queue. Nil uses
	// backend.NullDevice.
	Devices gpucontext.DeviceProvider

	// Backend is an already created backend. When set, Driver and Devices
	// are ignored and the context does not close the backend.
	Backend backend.Backend

	// EmojiFontPath or EmojiFontBytes supply the color emoji font. At
	// most one may be set; both are ignored without FlagColorEmoji.
	EmojiFontPath  string
	EmojiFontBytes []byte

	// Shaping enables HarfBuzz shaping of text runs.
	Shaping bool

	// OnError, if set, receives every error reported by drawing calls.
	OnError func(error)
}

// DefaultConfig returns a configuration with antialiasing and stencil
// strokes enabled and two frames in flight.
func DefaultConfig() Config {
	return Config{
		Flags:             FlagAntialias | FlagStencilStrokes,
		MaxFramesInFlight: 2,
	}
}

// TextureView is a backend render target view.
type TextureView = gpucontext.TextureView

// CommandEncoder is a backend command encoder.
type CommandEncoder = gpucontext.CommandEncoder
