package nvg

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/nvg/font"
)

func newTextContext(t *testing.T, flags Flags) (*Context, FontID) {
	t.Helper()
	c := newTestContext(t, flags)
	id, err := c.CreateFontMem("sans", goregular.TTF, false)
	if err != nil {
		t.Fatalf("CreateFontMem: %v", err)
	}
	return c, id
}

func TestCreateFont(t *testing.T) {
	c, id := newTextContext(t, 0)
	if !id.Valid() {
		t.Fatal("invalid font id")
	}
	if got := c.FindFont("sans"); got != id {
		t.Errorf("FindFont = %v, want %v", got, id)
	}
	if got := c.FindFont("serif"); got.Valid() {
		t.Errorf("FindFont(unknown) = %v", got)
	}
	if _, err := c.CreateFontMem("empty", nil, false); !errors.Is(err, ErrResourceLoad) {
		t.Errorf("empty data = %v, want ErrResourceLoad", err)
	}
	if _, err := c.CreateFont("missing", "testdata/missing.ttf"); !errors.Is(err, ErrResourceLoad) {
		t.Errorf("missing file = %v, want ErrResourceLoad", err)
	}
}

func TestTextSubmitsQuads(t *testing.T) {
	c, _ := newTextContext(t, 0)
	begin(t, c, 200, 50)
	c.FontFace("sans")
	c.FontSize(20)
	end := c.Text(10, 30, "Hello")
	if end <= 10 {
		t.Errorf("Text returned %v", end)
	}

	calls := soft(c).Recorded()
	if len(calls) != 1 || calls[0].Triangles == nil {
		t.Fatalf("recorded %v", calls)
	}
	tc := calls[0].Triangles
	if len(tc.Verts) != 30 {
		t.Errorf("%d vertices, want 30", len(tc.Verts))
	}
	if st := c.FrameStats(); st.TextTriangles != 10 || st.DrawCalls != 1 {
		t.Errorf("stats = %+v", st)
	}
	if err := c.EndFrame(); err != nil {
		t.Fatal(err)
	}

	img := soft(c).Target()
	var ink int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			ink++
		}
	}
	if ink == 0 {
		t.Error("no text pixels rendered")
	}
}

func TestTextFollowsTransform(t *testing.T) {
	c, _ := newTextContext(t, 0)
	begin(t, c, 200, 200)
	c.FontFace("sans")
	c.Text(0, 20, "A")
	plain := soft(c).Recorded()[0].Triangles.Verts[0]
	c.Translate(50, 60)
	c.Text(0, 20, "A")
	moved := soft(c).Recorded()[1].Triangles.Verts[0]
	if math.Abs(moved.X-plain.X-50) > eps || math.Abs(moved.Y-plain.Y-60) > eps {
		t.Errorf("translated vertex %+v, untranslated %+v", moved, plain)
	}
}

func TestTextWithoutFont(t *testing.T) {
	c := newTestContext(t, 0)
	begin(t, c, 10, 10)
	if got := c.Text(3, 5, "x"); got != 3 {
		t.Errorf("Text returned %v, want 3", got)
	}
	if !errors.Is(c.Err(), errNoFont) || !errors.Is(c.Err(), ErrUsage) {
		t.Errorf("Err = %v", c.Err())
	}
	if len(soft(c).Recorded()) != 0 {
		t.Error("text without a font submitted calls")
	}
}

func TestTextMeasurement(t *testing.T) {
	c, _ := newTextContext(t, 0)
	begin(t, c, 400, 400)
	c.FontFace("sans")
	c.FontSize(18)

	asc, desc, lineh := c.TextMetrics()
	if asc <= 0 || desc >= 0 || lineh < asc-desc {
		t.Errorf("TextMetrics = %v, %v, %v", asc, desc, lineh)
	}

	adv, b := c.TextBounds(10, 50, "Hello world")
	if adv <= 0 {
		t.Errorf("advance = %v", adv)
	}
	if b[0] > 10 || b[2] <= b[0] || b[1] >= 50 || b[3] <= b[1] {
		t.Errorf("bounds = %v", b)
	}
	short, _ := c.TextBounds(10, 50, "Hello")
	if short >= adv {
		t.Errorf("shorter text advance %v >= %v", short, adv)
	}

	var pos [16]GlyphPosition
	if n := c.TextGlyphPositions(0, 0, "abc", pos[:]); n != 3 {
		t.Fatalf("TextGlyphPositions = %d, want 3", n)
	}
	if !(pos[0].X < pos[1].X && pos[1].X < pos[2].X) || pos[1].Index != 1 {
		t.Errorf("positions = %+v", pos[:3])
	}
}

func TestTextBreakLines(t *testing.T) {
	c, _ := newTextContext(t, 0)
	begin(t, c, 400, 400)
	c.FontFace("sans")
	c.FontSize(16)

	tests := []struct {
		name    string
		text    string
		width   float64
		minRows int
		maxRows int
	}{
		{"single", "Hello", 1000, 1, 1},
		{"newline", "one\ntwo", 1000, 2, 2},
		{"wrapped", "the quick brown fox jumps over the lazy dog", 60, 4, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows [16]TextRow
			n := c.TextBreakLines(tt.text, tt.width, rows[:])
			if n < tt.minRows || n > tt.maxRows {
				t.Fatalf("%d rows, want [%d, %d]", n, tt.minRows, tt.maxRows)
			}
			for _, r := range rows[:n] {
				if r.Width > tt.width {
					t.Errorf("row %q wider than %v", tt.text[r.Start:r.End], tt.width)
				}
			}
		})
	}
}

func TestTextBox(t *testing.T) {
	c, _ := newTextContext(t, 0)
	begin(t, c, 400, 400)
	c.FontFace("sans")
	c.FontSize(16)
	const text = "the quick brown fox jumps over the lazy dog"

	oneLine := c.TextBoxBounds(10, 20, 1000, text)
	wrapped := c.TextBoxBounds(10, 20, 80, text)
	if wrapped[3]-wrapped[1] <= oneLine[3]-oneLine[1] {
		t.Errorf("wrapped box %v not taller than %v", wrapped, oneLine)
	}
	if wrapped[2] > 10+80+1 {
		t.Errorf("wrapped box %v wider than the row width", wrapped)
	}

	c.TextBox(10, 20, 80, text)
	if len(soft(c).Recorded()) < 2 {
		t.Errorf("TextBox submitted %d calls", len(soft(c).Recorded()))
	}
	if c.Err() != nil {
		t.Errorf("Err = %v", c.Err())
	}
}

func TestFallbackFonts(t *testing.T) {
	c, a := newTextContext(t, 0)
	b, err := c.CreateFontMem("sans2", goregular.TTF, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddFallbackFontID(a, b); err != nil {
		t.Fatalf("AddFallbackFontID: %v", err)
	}
	if err := c.AddFallbackFont("sans2", "sans"); !errors.Is(err, ErrUsage) || !errors.Is(err, font.ErrFallbackCycle) {
		t.Errorf("cycle = %v", err)
	}
	if err := c.ResetFallbackFonts("sans"); err != nil {
		t.Errorf("ResetFallbackFonts = %v", err)
	}
	if err := c.AddFallbackFont("sans2", "sans"); err != nil {
		t.Errorf("fallback after reset = %v", err)
	}
	if err := c.ResetFallbackFonts("nope"); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("unknown base = %v", err)
	}
}

func TestSetFontMSDF(t *testing.T) {
	c, id := newTextContext(t, 0)
	err := c.SetFontMSDF(id, true)
	if !errors.Is(err, ErrUsage) || !errors.Is(err, font.ErrModeUnavailable) {
		t.Errorf("without FlagMSDFText = %v", err)
	}

	c, id = newTextContext(t, FlagMSDFText)
	if err := c.SetFontMSDF(id, true); err != nil {
		t.Fatalf("SetFontMSDF = %v", err)
	}
	begin(t, c, 100, 50)
	c.FontFaceID(id)
	c.Text(5, 30, "A")
	if tc := soft(c).Recorded()[0].Triangles; tc.Mode != glyphMode(font.ModeMSDF, false) {
		t.Errorf("glyph mode = %v", tc.Mode)
	}
}

func TestDeletedFont(t *testing.T) {
	c, id := newTextContext(t, 0)
	begin(t, c, 100, 50)
	c.FontFaceID(id)
	if err := c.DeleteFont(id); err != nil {
		t.Fatal(err)
	}
	c.Text(0, 20, "x")
	if !errors.Is(c.Err(), ErrInvalidHandle) {
		t.Errorf("Err = %v, want ErrInvalidHandle", c.Err())
	}
	if c.State().Font.Valid() {
		t.Error("deleted font still selected")
	}
	if err := c.DeleteFont(id); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("double delete = %v", err)
	}
	c.FontFace("sans")
	if c.State().Font.Valid() {
		t.Error("FontFace found a deleted font")
	}
}
