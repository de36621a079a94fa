// Command nvgdemo renders a frame with the software backend and writes it
// as a PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/nvg"
	"github.com/gogpu/nvg/backend/software"
)

func main() {
	var (
		width   = flag.Float64("width", 800, "frame width in logical units")
		height  = flag.Float64("height", 600, "frame height in logical units")
		ratio   = flag.Float64("dpr", 1, "device pixel ratio")
		output  = flag.String("output", "demo.png", "output file")
		sdf     = flag.Bool("sdf", false, "render text as signed distance fields")
		verbose = flag.Bool("v", false, "log frame details")
	)
	flag.Parse()

	if *verbose {
		nvg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := nvg.DefaultConfig()
	if *sdf {
		cfg.Flags |= nvg.FlagSDFText
	}
	be := software.New(software.WithClearColor(nvg.RGB(25, 30, 45)))
	cfg.Backend = be
	cfg.OnError = func(err error) { log.Printf("draw: %v", err) }

	vg, err := nvg.NewContext(cfg)
	if err != nil {
		log.Fatalf("create context: %v", err)
	}
	defer vg.Close()

	if _, err := vg.CreateFontMem("sans", goregular.TTF, false); err != nil {
		log.Fatalf("load font: %v", err)
	}

	if err := vg.BeginFrame(*width, *height, *ratio); err != nil {
		log.Fatal(err)
	}
	drawBackground(vg, *width, *height)
	drawShapes(vg)
	drawTransforms(vg)
	drawPaths(vg)
	drawText(vg, *width)
	if err := vg.EndFrame(); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, be.Target()); err != nil {
		log.Fatalf("encode: %v", err)
	}
	st := vg.FrameStats()
	log.Printf("demo saved to %s (%d draw calls)", *output, st.DrawCalls)
}

func drawBackground(vg *nvg.Context, w, h float64) {
	vg.BeginPath()
	vg.Rect(0, 0, w, h)
	vg.FillPaint(nvg.LinearGradient(0, 0, 0, h, nvg.RGBf(0.1, 0.2, 0.4), nvg.RGBf(0.5, 0.5, 0.6)))
	vg.Fill()
}

func drawShapes(vg *nvg.Context) {
	circles := []struct {
		x, y float64
		c    nvg.Color
	}{
		{150, 150, nvg.RGBAf(1, 0.3, 0.3, 0.8)},
		{200, 150, nvg.RGBAf(0.3, 1, 0.3, 0.8)},
		{175, 200, nvg.RGBAf(0.3, 0.3, 1, 0.8)},
	}
	for _, c := range circles {
		vg.BeginPath()
		vg.Circle(c.x, c.y, 60)
		vg.FillColor(c.c)
		vg.Fill()
	}

	// Drop shadow under a rounded panel.
	vg.BeginPath()
	vg.Rect(330, 90, 170, 130)
	vg.RoundedRect(350, 100, 120, 80, 15)
	vg.PathWinding(nvg.Hole)
	vg.FillPaint(nvg.BoxGradient(350, 104, 120, 80, 15, 12, nvg.RGBA(0, 0, 0, 128), nvg.RGBA(0, 0, 0, 0)))
	vg.Fill()

	vg.BeginPath()
	vg.RoundedRect(350, 100, 120, 80, 15)
	vg.FillColor(nvg.RGBf(1, 0.8, 0))
	vg.Fill()
	vg.StrokeColor(nvg.White)
	vg.StrokeWidth(4)
	vg.Stroke()
}

func drawTransforms(vg *nvg.Context) {
	for i := 0; i < 8; i++ {
		vg.Save()
		vg.Translate(640, 150)
		vg.Rotate(float64(i) * math.Pi / 4)
		vg.BeginPath()
		vg.Rect(-30, -30, 60, 60)
		vg.FillColor(nvg.HSL(float64(i)/8, 0.8, 0.6))
		vg.Fill()
		vg.Restore()
	}
}

func drawPaths(vg *nvg.Context) {
	vg.Save()
	defer vg.Restore()
	vg.Translate(150, 400)

	vg.BeginPath()
	vg.MoveTo(0, 0)
	vg.BezierTo(50, -50, 100, 50, 150, 0)
	vg.BezierTo(200, -30, 250, 30, 300, 0)
	vg.StrokeColor(nvg.RGBf(1, 0.5, 0))
	vg.StrokeWidth(6)
	vg.LineCap(nvg.CapRound)
	vg.Stroke()

	vg.Translate(400, 0)
	const points = 5
	vg.BeginPath()
	for i := 0; i < points*2; i++ {
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		a := float64(i)*math.Pi/points - math.Pi/2
		x, y := r*math.Cos(a), r*math.Sin(a)
		if i == 0 {
			vg.MoveTo(x, y)
		} else {
			vg.LineTo(x, y)
		}
	}
	vg.ClosePath()
	vg.FillPaint(nvg.RadialGradient(0, 0, 10, 60, nvg.RGBf(1, 1, 0.6), nvg.RGBf(1, 0.7, 0)))
	vg.Fill()
}

func drawText(vg *nvg.Context, w float64) {
	vg.FontFace("sans")
	vg.FontSize(28)
	vg.FillColor(nvg.White)
	vg.TextAlign(nvg.AlignCenter | nvg.AlignTop)
	vg.Text(w/2, 20, "nvg software renderer")

	vg.FontSize(16)
	vg.TextAlign(nvg.AlignLeft | nvg.AlignTop)
	vg.FillColor(nvg.RGBA(220, 220, 220, 255))
	vg.TextBox(40, 500, w-80,
		"Paths, paints and text are recorded into backend calls and rasterized on the CPU. "+
			"Pass -sdf to render glyphs as signed distance fields.")
}
