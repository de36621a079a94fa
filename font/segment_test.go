package font

import (
	"slices"
	"testing"

	"github.com/go-text/typesetting/language"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []textRun
	}{
		{"latin", "abc def", []textRun{
			{0, 7, 0, language.Latin},
		}},
		{"hebrew after latin", "abc אבג", []textRun{
			{0, 4, 0, language.Latin},
			{4, 7, 1, language.Hebrew},
		}},
		{"latin after hebrew", "אבג abc", []textRun{
			{0, 4, 1, language.Hebrew},
			{4, 7, 2, language.Latin},
		}},
		{"script change", "abcабв", []textRun{
			{0, 3, 0, language.Latin},
			{3, 6, 0, language.Cyrillic},
		}},
		{"neutral only", "1 2", []textRun{
			{0, 3, 0, language.Common},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segment(normalize(tt.text, nil))
			if !slices.Equal(got, tt.want) {
				t.Errorf("segment(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   []int
	}{
		{"left to right", []int{0, 0}, []int{0, 1}},
		{"embedded rtl", []int{0, 1, 0}, []int{0, 1, 2}},
		{"adjacent rtl runs", []int{0, 1, 1, 0}, []int{0, 2, 1, 3}},
		{"rtl paragraph", []int{1, 2, 1}, []int{2, 1, 0}},
		{"nested ltr", []int{1, 2, 2, 1}, []int{3, 1, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := make([]textRun, len(tt.levels))
			for i, l := range tt.levels {
				runs[i] = textRun{start: i, end: i + 1, level: l}
			}
			if got := visualOrder(runs); !slices.Equal(got, tt.want) {
				t.Errorf("visualOrder(%v) = %v, want %v", tt.levels, got, tt.want)
			}
		})
	}
}

func TestLayoutRightToLeft(t *testing.T) {
	r, id := fakeRegistry(t)
	style := Style{Font: id, Size: 10}
	tests := []struct {
		name   string
		text   string
		visual bool
		want   string
		wantX  []float64
	}{
		{"mixed visual", "ab אב", true, "ab בא", []float64{0, 5, 10, 15, 20}},
		{"mixed logical", "ab אב", false, "ab אב", []float64{0, 5, 10, 15, 20}},
		{"hebrew visual", "אבג", true, "גבא", []float64{0, 5, 10}},
		{"hebrew then latin", "אב cd", true, "cd בא", []float64{0, 5, 10, 15, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs, end, err := r.layout(style, 0, 0, tt.text, nil, tt.visual)
			if err != nil {
				t.Fatal(err)
			}
			var got []rune
			for i, g := range glyphs {
				got = append(got, g.Rune)
				if !near(g.X, tt.wantX[i]) {
					t.Errorf("glyph %d (%q) at %v, want %v", i, g.Rune, g.X, tt.wantX[i])
				}
			}
			if string(got) != tt.want {
				t.Errorf("glyph order %q, want %q", string(got), tt.want)
			}
			if !near(end, float64(len(tt.wantX))*5) {
				t.Errorf("end = %v", end)
			}
		})
	}

	glyphs, _, err := r.Layout(style, 0, 0, "אבג", nil)
	if err != nil {
		t.Fatal(err)
	}
	if glyphs[0].Index != 4 || glyphs[0].Next != 6 {
		t.Errorf("first visual glyph spans [%d, %d), want [4, 6)", glyphs[0].Index, glyphs[0].Next)
	}
}
