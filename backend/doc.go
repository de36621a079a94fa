// Package backend defines the narrow boundary between the rendering context
// and a GPU backend.
//
// The context flattens paths, resolves paints into shader uniforms and
// packs text into atlas textures; a backend receives the resulting fill,
// stroke and triangle calls and turns them into GPU work. Device, queue,
// command buffer and synchronization management stay behind this boundary.
//
// # Driver Registration
//
// Drivers are registered once per process with an explicit call:
//
//	if err := backend.Init(software.Driver()); err != nil {
//	    log.Fatal(err)
//	}
//
// Init may be called only once; later calls return ErrAlreadyInitialized.
// Create then builds a backend for a device:
//
//	b, err := backend.Create("", backend.Descriptor{
//	    Devices:           provider,
//	    MaxFramesInFlight: 2,
//	    Flags:             backend.FlagAntialias | backend.FlagStencilStrokes,
//	})
//
// An empty driver name selects the highest-priority registered driver.
package backend
