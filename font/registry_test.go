package font

import (
	"errors"
	"testing"
)

func TestResolveFallbackOrder(t *testing.T) {
	r := NewRegistry()
	a := r.AddFace("a", newFake("a", "a"))
	b := r.AddFace("b", newFake("b", "b"))
	c := r.AddFace("c", newFake("c", "bc"))
	d := r.AddFace("d", newFake("d", "cd"))
	emoji := r.AddFace("emoji", newFake("emoji", "😀c"))

	for _, step := range [][2]ID{{a, b}, {b, d}, {a, c}} {
		if err := r.AddFallback(step[0], step[1]); err != nil {
			t.Fatalf("AddFallback: %v", err)
		}
	}
	if err := r.SetEmoji(emoji); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		r     rune
		want  ID
		glyph bool
	}{
		{'a', a, true},
		{'b', b, true},
		{'c', d, true}, // depth first: a -> b -> d before a -> c
		{'d', d, true},
		{'😀', emoji, true},
		{'z', a, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			id, g, err := r.Resolve(a, tt.r)
			if err != nil {
				t.Fatal(err)
			}
			if id != tt.want {
				t.Errorf("Resolve(%q) font = %d, want %d", tt.r, id, tt.want)
			}
			if (g != 0) != tt.glyph {
				t.Errorf("Resolve(%q) glyph = %d", tt.r, g)
			}
		})
	}
}

func TestAddFallbackCycle(t *testing.T) {
	r := NewRegistry()
	a := r.AddFace("a", newFake("a", "a"))
	b := r.AddFace("b", newFake("b", "b"))
	c := r.AddFace("c", newFake("c", "c"))

	if err := r.AddFallback(a, b); err != nil {
		t.Fatal(err)
	}
	if err := r.AddFallback(b, c); err != nil {
		t.Fatal(err)
	}
	if err := r.AddFallback(a, b); err != nil {
		t.Errorf("duplicate fallback: %v", err)
	}
	for _, pair := range [][2]ID{{a, a}, {b, a}, {c, a}} {
		if err := r.AddFallback(pair[0], pair[1]); !errors.Is(err, ErrFallbackCycle) {
			t.Errorf("AddFallback(%d, %d) = %v, want ErrFallbackCycle", pair[0], pair[1], err)
		}
	}
	info, _ := r.Info(a)
	if len(info.Fallbacks) != 1 || info.Fallbacks[0] != b {
		t.Errorf("chain of a = %v, want [b]", info.Fallbacks)
	}
}

func TestTooManyFallbacks(t *testing.T) {
	r := NewRegistry()
	base := r.AddFace("base", newFake("base", "x"))
	for i := range MaxFallbacks {
		f := r.AddFace("f", newFake("f", "y"))
		if err := r.AddFallback(base, f); err != nil {
			t.Fatalf("fallback %d: %v", i, err)
		}
	}
	extra := r.AddFace("extra", newFake("extra", "z"))
	if err := r.AddFallback(base, extra); !errors.Is(err, ErrTooManyFallbacks) {
		t.Errorf("err = %v, want ErrTooManyFallbacks", err)
	}
}

func TestFindAndDelete(t *testing.T) {
	r := NewRegistry()
	a := r.AddFace("sans", newFake("a", "a"))
	b := r.AddFace("sans", newFake("b", "b"))
	c := r.AddFace("bold", newFake("c", "c"))
	if err := r.AddFallback(c, a); err != nil {
		t.Fatal(err)
	}
	if err := r.SetEmoji(a); err != nil {
		t.Fatal(err)
	}

	if got := r.Find("sans"); got != a {
		t.Errorf("Find(sans) = %d, want first font %d", got, a)
	}
	if got := r.Find("missing"); got != InvalidID {
		t.Errorf("Find(missing) = %d", got)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}

	if err := r.Delete(a); err != nil {
		t.Fatal(err)
	}
	if r.Contains(a) {
		t.Error("deleted font still present")
	}
	if got := r.Find("sans"); got != b {
		t.Errorf("Find(sans) after delete = %d, want %d", got, b)
	}
	if info, _ := r.Info(c); len(info.Fallbacks) != 0 {
		t.Errorf("deleted font left in chain: %v", info.Fallbacks)
	}
	if r.Emoji() != InvalidID {
		t.Error("emoji font not cleared")
	}
	if err := r.Delete(a); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("second Delete = %v, want ErrInvalidHandle", err)
	}
	if _, _, err := r.Resolve(a, 'a'); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Resolve on deleted font = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 {
		t.Errorf("Len after Close = %d", r.Len())
	}
}

func TestSetMode(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		mode Mode
		ok   bool
	}{
		{"bitmap", nil, ModeBitmap, true},
		{"sdf disabled", nil, ModeSDF, false},
		{"sdf enabled", []Option{WithSDF(true)}, ModeSDF, true},
		{"msdf disabled", []Option{WithSDF(true)}, ModeMSDF, false},
		{"msdf enabled", []Option{WithMSDF(true)}, ModeMSDF, true},
		{"unknown", []Option{WithSDF(true), WithMSDF(true)}, Mode(7), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(tt.opts...)
			id := r.AddFace("f", newFake("f", ""))
			err := r.SetMode(id, tt.mode)
			if tt.ok {
				if err != nil {
					t.Fatalf("SetMode = %v", err)
				}
				if got, _ := r.Mode(id); got != tt.mode {
					t.Errorf("Mode = %v, want %v", got, tt.mode)
				}
				return
			}
			if !errors.Is(err, ErrModeUnavailable) {
				t.Errorf("SetMode = %v, want ErrModeUnavailable", err)
			}
			if got, _ := r.Mode(id); got != ModeBitmap {
				t.Errorf("mode changed to %v on failure", got)
			}
		})
	}
}

func TestCreateMemErrors(t *testing.T) {
	r := NewRegistry()

	id, err := r.CreateMem("empty", nil, false, 0)
	if id != InvalidID || !errors.Is(err, ErrEmptyFontData) || !errors.Is(err, ErrLoad) {
		t.Errorf("empty data: id=%d err=%v", id, err)
	}

	_, err = r.CreateMem("junk", []byte("definitely not a font"), true, 0)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("junk data: err = %v, want *LoadError", err)
	}
	if le.Name != "junk" || !errors.Is(err, ErrLoad) {
		t.Errorf("LoadError = %+v", le)
	}

	if _, err := r.Create("missing", "/nonexistent/font.ttf", 0); !errors.Is(err, ErrLoad) {
		t.Errorf("missing file: err = %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("failed loads registered %d fonts", r.Len())
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeBitmap: "Bitmap", ModeSDF: "SDF", ModeMSDF: "MSDF", Mode(9): "Unknown"} {
		if got := m.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(m), got, want)
		}
	}
}
