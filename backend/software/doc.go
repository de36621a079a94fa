// Package software is the reference CPU backend.
//
// It records every call of a frame and, on Flush, rasterizes fills,
// strokes and textured triangles into an *image.RGBA with
// golang.org/x/image/vector. Paints, scissors and blend factors follow the
// same rules a GPU backend applies in its shaders, so the output can be
// compared against GPU renderings and inspected in tests.
//
// Register it as a driver:
//
//	backend.Init(software.Driver())
//
// or pass a backend directly to nvg.Config.Backend:
//
//	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
//	sw := software.New(software.WithTarget(img))
package software
