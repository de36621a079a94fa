// Package nvg provides an immediate-mode 2D vector graphics context.
//
// # Overview
//
// nvg draws antialiased paths, gradients, image patterns and text through
// a pluggable GPU backend. Drawing happens inside frames: state changes and
// path commands issued between BeginFrame and EndFrame are turned into
// backend draw calls, which the backend renders when the frame ends.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/nvg"
//		"github.com/gogpu/nvg/backend/software"
//	)
//
//	cfg := nvg.DefaultConfig()
//	cfg.Backend = software.New()
//	vg, err := nvg.NewContext(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer vg.Close()
//
//	vg.BeginFrame(640, 480, 1)
//	vg.BeginPath()
//	vg.RoundedRect(20, 20, 200, 100, 8)
//	vg.FillColor(nvg.RGB(40, 120, 220))
//	vg.Fill()
//	vg.EndFrame()
//
// # State
//
// Every context has a render state holding the transform, scissor, fill
// and stroke paints, stroke style, composite operation and text style.
// Save pushes a copy of it and Restore pops it; up to MaxStates states can
// be saved. Paints are bound by value: the current transform is applied to
// a paint when it is set, not when a shape is filled.
//
// # Resources
//
// Images and fonts are created with the context and outlive frames. Their
// handles are generational, so a handle to a deleted resource is detected
// rather than aliasing a newer one. Draws that reference a deleted
// resource are skipped and report ErrInvalidHandle.
//
// # Errors
//
// Functions that return values report failures as errors matching
// ErrResourceLoad, ErrInvalidHandle, ErrSingularMatrix or ErrUsage.
// Drawing calls have no error result; their errors are logged, stored for
// Err and passed to Config.OnError. A context created with FlagDebug
// panics on usage errors.
//
// # Backends
//
// The backend package defines the interface a renderer implements and a
// process-wide driver registry. backend/software is a CPU reference
// implementation that rasterizes into an *image.RGBA.
//
// # Logging
//
// nvg is silent by default. SetLogger installs a log/slog logger for the
// root package and its sub-packages.
package nvg
