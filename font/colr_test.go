package font

import (
	"image/color"
	"testing"

	gotext "github.com/go-text/typesetting/font"
)

func solidMask(w, h, left, top int) Bitmap {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = 0xff
	}
	return Bitmap{Pix: pix, W: w, H: h, Left: left, Top: top}
}

func TestCompositeLayers(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	halfBlue := color.NRGBA{B: 255, A: 128}
	bm, ok := compositeLayers([]colorLayer{
		{mask: solidMask(2, 2, 0, -2), color: red},
		{mask: Bitmap{}, color: red},
		{mask: solidMask(2, 2, 1, -1), color: halfBlue},
	})
	if !ok {
		t.Fatal("compositeLayers failed")
	}
	if !bm.Color || bm.W != 3 || bm.H != 3 || bm.Left != 0 || bm.Top != -2 {
		t.Fatalf("bitmap %dx%d at (%d, %d), color %v", bm.W, bm.H, bm.Left, bm.Top, bm.Color)
	}

	tests := []struct {
		name string
		x, y int
		want [4]uint8
	}{
		{"bottom layer", 0, 0, [4]uint8{255, 0, 0, 255}},
		{"overlap", 1, 1, [4]uint8{127, 0, 128, 255}},
		{"top layer", 2, 2, [4]uint8{0, 0, 128, 128}},
		{"uncovered", 2, 0, [4]uint8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := (tt.y*bm.W + tt.x) * 4
			for c := range 4 {
				if d := int(bm.Pix[i+c]) - int(tt.want[c]); d < -1 || d > 1 {
					t.Errorf("pixel = %v, want %v", bm.Pix[i:i+4], tt.want)
					break
				}
			}
		})
	}

	if _, ok := compositeLayers([]colorLayer{{mask: Bitmap{}}}); ok {
		t.Error("empty layers composited")
	}
}

func TestPaletteColor(t *testing.T) {
	cpal := gotext.CPAL{{{Blue: 3, Green: 2, Red: 1, Alpha: 4}}}
	black := color.NRGBA{A: 255}
	tests := []struct {
		name string
		cpal gotext.CPAL
		idx  uint16
		want color.NRGBA
	}{
		{"entry", cpal, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4}},
		{"foreground", cpal, foregroundPalette, black},
		{"out of range", cpal, 5, black},
		{"no palette", nil, 0, black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paletteColor(tt.cpal, tt.idx); got != tt.want {
				t.Errorf("paletteColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColrLayersWithoutTable(t *testing.T) {
	r, id := loadGo(t)
	face, _ := r.Face(id)
	sf := face.(*sfntFace)
	gt, err := sf.goText()
	if err != nil {
		t.Fatal(err)
	}
	g, _ := sf.Glyph('a')
	if _, ok := sf.colrLayers(gt, g, 16); ok {
		t.Error("face without COLR reported layers")
	}
	if _, ok := sf.RasterizeColor(g, 16); ok {
		t.Error("RasterizeColor succeeded for an outline glyph")
	}
}
