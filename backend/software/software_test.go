package software

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nvg/backend"
)

var sourceOver = backend.Blend{
	SrcRGB:   gputypes.BlendFactorOne,
	DstRGB:   gputypes.BlendFactorOneMinusSrcAlpha,
	SrcAlpha: gputypes.BlendFactorOne,
	DstAlpha: gputypes.BlendFactorOneMinusSrcAlpha,
}

func solid(r, g, b, a float64) backend.Paint {
	c := backend.Color{R: r * a, G: g * a, B: b * a, A: a}
	return backend.Paint{Xform: backend.IdentityAffine(), Feather: 1, Inner: c, Outer: c}
}

func rect(x0, y0, x1, y1 float64) []backend.Point {
	return []backend.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
}

func fill(paint backend.Paint, sc backend.Scissor, paths ...[]backend.Point) *backend.FillCall {
	call := &backend.FillCall{Paint: paint, Blend: sourceOver, Scissor: sc, Fringe: 1, Antialias: true}
	for _, p := range paths {
		call.Paths = append(call.Paths, backend.Path{Points: p, Closed: true})
	}
	return call
}

func pixel(img *image.RGBA, x, y int) [4]uint8 {
	i := img.PixOffset(x, y)
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

func TestFillRect(t *testing.T) {
	b := New()
	b.Viewport(10, 10, 1)
	b.Fill(fill(solid(1, 0, 0, 1), backend.NoScissor(), rect(2, 2, 8, 8)))
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	img := b.Target()
	if got := pixel(img, 5, 5); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("inside = %v", got)
	}
	if got := pixel(img, 0, 0); got != [4]uint8{} {
		t.Errorf("outside = %v", got)
	}
	if n := len(b.LastFrame().Calls); n != 1 {
		t.Errorf("recorded %d calls, want 1", n)
	}
}

func TestFillHole(t *testing.T) {
	outer := rect(0, 0, 10, 10)
	inner := []backend.Point{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}}

	b := New()
	b.Viewport(10, 10, 1)
	b.Fill(fill(solid(0, 0, 1, 1), backend.NoScissor(), outer, inner))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	img := b.Target()
	if got := pixel(img, 5, 5); got[3] != 0 {
		t.Errorf("hole alpha = %d, want 0", got[3])
	}
	if got := pixel(img, 1, 1); got[3] != 255 {
		t.Errorf("ring alpha = %d, want 255", got[3])
	}
}

func TestDevicePixelRatio(t *testing.T) {
	b := New()
	b.Viewport(5, 5, 2)
	b.Fill(fill(solid(1, 1, 1, 1), backend.NoScissor(), rect(0, 0, 2, 2)))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	img := b.Target()
	if got := img.Rect.Size(); got != (image.Point{X: 10, Y: 10}) {
		t.Fatalf("target size = %v", got)
	}
	if pixel(img, 3, 3)[3] != 255 || pixel(img, 4, 4)[3] != 0 {
		t.Errorf("2x2 logical rect did not cover 4x4 device pixels")
	}
}

func TestScissor(t *testing.T) {
	sc := backend.Scissor{Xform: backend.Affine{1, 0, 0, 1, 2.5, 5}, Extent: [2]float64{2.5, 5}}
	b := New()
	b.Viewport(10, 10, 1)
	b.Fill(fill(solid(1, 1, 1, 1), sc, rect(0, 0, 10, 10)))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	img := b.Target()
	tests := []struct {
		x     int
		alpha uint8
	}{
		{0, 255},
		{4, 255},
		{5, 0},
		{9, 0},
	}
	for _, tt := range tests {
		if got := pixel(img, tt.x, 5)[3]; got != tt.alpha {
			t.Errorf("x=%d alpha = %d, want %d", tt.x, got, tt.alpha)
		}
	}
}

func TestStroke(t *testing.T) {
	b := New()
	b.Viewport(10, 10, 1)
	b.Stroke(&backend.StrokeCall{
		Paint:      solid(0, 1, 0, 1),
		Blend:      sourceOver,
		Scissor:    backend.NoScissor(),
		Antialias:  true,
		Width:      2,
		Cap:        backend.CapButt,
		Join:       backend.JoinMiter,
		MiterLimit: 10,
		Paths:      []backend.Path{{Points: []backend.Point{{X: 1, Y: 5}, {X: 9, Y: 5}}}},
	})
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	img := b.Target()
	if got := pixel(img, 5, 4); got != [4]uint8{0, 255, 0, 255} {
		t.Errorf("on line = %v", got)
	}
	if got := pixel(img, 5, 1); got[3] != 0 {
		t.Errorf("off line alpha = %d", got[3])
	}
	if got := pixel(img, 0, 5); got[3] != 0 {
		t.Errorf("beyond butt cap alpha = %d", got[3])
	}
}

func TestTrianglesSharedEdge(t *testing.T) {
	v := func(x, y float64) backend.Vertex { return backend.Vertex{X: x, Y: y} }
	b := New()
	b.Viewport(4, 4, 1)
	b.Triangles(&backend.TrianglesCall{
		Paint:   solid(1, 1, 1, 0.5),
		Blend:   sourceOver,
		Scissor: backend.NoScissor(),
		Verts: []backend.Vertex{
			v(0, 0), v(4, 0), v(4, 4),
			v(0, 0), v(4, 4), v(0, 4),
		},
	})
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	img := b.Target()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := pixel(img, x, y)[3]; got != 128 {
				t.Errorf("pixel %d,%d alpha = %d, want 128", x, y, got)
			}
		}
	}
}

func TestImagePaint(t *testing.T) {
	b := New()
	desc := backend.TextureDesc{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm, Premultiplied: true}
	desc.Sampler.MagFilter = gputypes.FilterModeNearest
	tex, err := b.CreateTexture(desc, []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	})
	if err != nil {
		t.Fatal(err)
	}
	white := backend.Color{R: 1, G: 1, B: 1, A: 1}
	paint := backend.Paint{Xform: backend.IdentityAffine(), Extent: [2]float64{2, 2}, Inner: white, Outer: white, Image: tex}

	b.Viewport(2, 2, 1)
	b.Fill(fill(paint, backend.NoScissor(), rect(0, 0, 2, 2)))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	img := b.Target()
	tests := []struct {
		x, y int
		want [4]uint8
	}{
		{0, 0, [4]uint8{255, 0, 0, 255}},
		{1, 0, [4]uint8{0, 255, 0, 255}},
		{0, 1, [4]uint8{0, 0, 255, 255}},
		{1, 1, [4]uint8{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := pixel(img, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel %d,%d = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCancel(t *testing.T) {
	b := New()
	b.Viewport(10, 10, 1)
	b.Fill(fill(solid(0, 0, 1, 1), backend.NoScissor(), rect(0, 0, 10, 10)))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	presented := append([]uint8(nil), b.Target().Pix...)

	b.Viewport(10, 10, 1)
	b.Fill(fill(solid(1, 0, 0, 1), backend.NoScissor(), rect(0, 0, 10, 10)))
	if len(b.Recorded()) != 1 {
		t.Fatalf("recorded %d calls", len(b.Recorded()))
	}
	b.Cancel()
	if len(b.Recorded()) != 0 {
		t.Errorf("Cancel kept %d calls", len(b.Recorded()))
	}
	if string(b.Target().Pix) != string(presented) {
		t.Error("cancelled frame changed the presented image")
	}
	if b.Frames() != 1 {
		t.Errorf("Frames = %d after cancel, want 1", b.Frames())
	}
}

func TestViewportDefersClear(t *testing.T) {
	b := New(WithClearColor(color.White))
	if b.Target() != nil {
		t.Fatal("Target allocated before the first flush")
	}
	b.Viewport(4, 4, 1)
	if b.Target() != nil {
		t.Fatal("Viewport allocated the target")
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := pixel(b.Target(), 1, 1); got != [4]uint8{255, 255, 255, 255} {
		t.Errorf("cleared pixel = %v, want white", got)
	}
	b.Viewport(6, 3, 1)
	if got := b.Target().Rect.Dx(); got != 4 {
		t.Errorf("Viewport resized the presented image to width %d", got)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := b.Target().Rect; got != image.Rect(0, 0, 6, 3) {
		t.Errorf("target after resize = %v", got)
	}
}

func TestDeletedTextureSkipsPaint(t *testing.T) {
	desc := backend.TextureDesc{Width: 1, Height: 1, Format: gputypes.TextureFormatRGBA8Unorm, Premultiplied: true}
	white := backend.Color{R: 1, G: 1, B: 1, A: 1}
	tests := []struct {
		name   string
		submit func(b *Backend, p backend.Paint)
	}{
		{"fill", func(b *Backend, p backend.Paint) {
			b.Fill(fill(p, backend.NoScissor(), rect(0, 0, 4, 4)))
		}},
		{"stroke", func(b *Backend, p backend.Paint) {
			b.Stroke(&backend.StrokeCall{
				Paint:      p,
				Blend:      sourceOver,
				Scissor:    backend.NoScissor(),
				Antialias:  true,
				Width:      2,
				MiterLimit: 10,
				Paths:      []backend.Path{{Points: []backend.Point{{X: 0, Y: 2}, {X: 4, Y: 2}}}},
			})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tex, err := b.CreateTexture(desc, []byte{255, 0, 0, 255})
			if err != nil {
				t.Fatal(err)
			}
			b.Viewport(4, 4, 1)
			tt.submit(b, backend.Paint{Xform: backend.IdentityAffine(), Extent: [2]float64{1, 1}, Inner: white, Outer: white, Image: tex})
			if err := b.DeleteTexture(tex); err != nil {
				t.Fatal(err)
			}
			if err := b.Flush(); err != nil {
				t.Fatal(err)
			}
			if got := pixel(b.Target(), 2, 2); got[3] != 0 {
				t.Errorf("pixel = %v, want transparent", got)
			}
		})
	}
}

func TestRenderTarget(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := New()
	b.SetRenderTargets(TargetView(img), TargetView(nil))
	b.Viewport(4, 4, 1)
	b.Fill(fill(solid(1, 1, 1, 1), backend.NoScissor(), rect(0, 0, 4, 4)))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if b.Target() != img {
		t.Fatal("Target is not the external image")
	}
	if pixel(img, 2, 2)[3] != 255 {
		t.Error("external target not drawn")
	}
	if !b.CommandBuffer().IsNil() {
		t.Error("CommandBuffer should be nil")
	}
	if b.FrameFence() != 2 {
		t.Errorf("FrameFence = %d, want 2", b.FrameFence())
	}
}

func TestBlend(t *testing.T) {
	half := rgba{0.5, 0, 0, 0.5}
	dst := rgba{0, 0, 1, 1}
	tests := []struct {
		name string
		b    backend.Blend
		want rgba
	}{
		{"source-over", sourceOver, rgba{0.5, 0, 0.5, 1}},
		{"copy", backend.Blend{
			SrcRGB: gputypes.BlendFactorOne, DstRGB: gputypes.BlendFactorZero,
			SrcAlpha: gputypes.BlendFactorOne, DstAlpha: gputypes.BlendFactorZero,
		}, half},
		{"destination-out", backend.Blend{
			SrcRGB: gputypes.BlendFactorZero, DstRGB: gputypes.BlendFactorOneMinusSrcAlpha,
			SrcAlpha: gputypes.BlendFactorZero, DstAlpha: gputypes.BlendFactorOneMinusSrcAlpha,
		}, rgba{0, 0, 0.5, 0.5}},
		{"lighter", backend.Blend{
			SrcRGB: gputypes.BlendFactorOne, DstRGB: gputypes.BlendFactorOne,
			SrcAlpha: gputypes.BlendFactorOne, DstAlpha: gputypes.BlendFactorOne,
		}, rgba{0.5, 0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blend(tt.b, half, dst)
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("blend = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSdRoundRect(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"center", 0, 0, -5},
		{"edge", 5, 0, 0},
		{"outside", 8, 0, 3},
		{"corner", 8, 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sdRoundRect(tt.x, tt.y, 5, 5, 0); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("sdRoundRect(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTextureLifecycle(t *testing.T) {
	b := New()
	desc := backend.TextureDesc{Width: 4, Height: 4, Format: gputypes.TextureFormatR8Unorm}
	id, err := b.CreateTexture(desc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.UpdateTexture(id, 2, 2, 2, 2, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("UpdateTexture: %v", err)
	}
	data, _ := b.TextureData(id)
	if data[2*4+2] != 1 || data[3*4+3] != 4 {
		t.Errorf("update landed wrong: %v", data)
	}
	if err := b.UpdateTexture(id, 3, 3, 2, 2, []byte{1, 2, 3, 4}); !errors.Is(err, backend.ErrTextureBounds) {
		t.Errorf("out of bounds update err = %v", err)
	}
	if _, err := b.CreateTexture(desc, []byte{1}); !errors.Is(err, backend.ErrTextureBounds) {
		t.Errorf("short data err = %v", err)
	}
	if err := b.DeleteTexture(id); err != nil {
		t.Fatal(err)
	}
	if _, _, err := b.TextureSize(id); !errors.Is(err, backend.ErrUnknownTexture) {
		t.Errorf("deleted texture err = %v", err)
	}
}

func TestGenerateField(t *testing.T) {
	const n = 12
	cov := make([]byte, n*n)
	for y := 3; y < 9; y++ {
		for x := 3; x < 9; x++ {
			cov[y*n+x] = 255
		}
	}
	b := New()
	field, err := b.GenerateField(backend.GlyphSDF, cov, n, n, 4)
	if err != nil {
		t.Fatal(err)
	}
	at := func(x, y int) uint8 { return field[(y*n+x)*4] }
	if at(6, 6) <= 128 {
		t.Errorf("inside = %d, want > 128", at(6, 6))
	}
	if at(0, 0) >= 128 {
		t.Errorf("outside = %d, want < 128", at(0, 0))
	}
	if at(5, 5) < at(3, 3) {
		t.Errorf("distance does not grow inward: %d < %d", at(5, 5), at(3, 3))
	}
	if _, err := b.GenerateField(backend.GlyphBitmap, cov, n, n, 4); err == nil {
		t.Error("bitmap mode should fail")
	}
	if got := b.fieldCoverage(1); got != 1 {
		t.Errorf("fieldCoverage(1) = %v", got)
	}
	if got := b.fieldCoverage(0); got != 0 {
		t.Errorf("fieldCoverage(0) = %v", got)
	}
}

func TestDriver(t *testing.T) {
	d := Driver()
	if d.Name() != "software" {
		t.Errorf("Name = %q", d.Name())
	}
	if d.Capabilities() != Capabilities {
		t.Errorf("Capabilities = %v", d.Capabilities())
	}
	be, err := d.Create(backend.Descriptor{Flags: backend.FlagAntialias, MaxFramesInFlight: 2})
	if err != nil {
		t.Fatal(err)
	}
	if be.Flags() != backend.FlagAntialias {
		t.Errorf("Flags = %v", be.Flags())
	}
	if err := be.Close(); err != nil {
		t.Fatal(err)
	}
}
