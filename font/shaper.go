package font

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// shaper runs HarfBuzz shaping over runs that resolved to one sfnt face.
type shaper struct {
	hb   shaping.HarfbuzzShaper
	lang language.Language
}

func newShaper() *shaper {
	return &shaper{lang: language.NewLanguage("en")}
}

// shapedGlyph is one shaper output glyph. item indexes the run's items.
type shapedGlyph struct {
	id      GlyphID
	item    int
	advance float64
	xOffset float64
	yOffset float64
}

// shape returns the glyphs of runes in visual order. It returns false
// when face cannot be shaped; the caller then falls back to nominal
// glyphs and kerning.
func (s *shaper) shape(face Face, runes []rune, size float64, dir di.Direction, script language.Script) ([]shapedGlyph, bool) {
	sf, ok := face.(*sfntFace)
	if !ok || len(runes) == 0 {
		return nil, false
	}
	gt, err := sf.goText()
	if err != nil {
		logger().Debug("font: shaping unavailable", "err", err)
		return nil, false
	}
	out := s.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gt,
		Size:      sf.ppem(size),
		Script:    script,
		Language:  s.lang,
	})
	glyphs := make([]shapedGlyph, 0, len(out.Glyphs))
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, shapedGlyph{
			id:      GlyphID(g.GlyphID),
			item:    g.TextIndex(),
			advance: fromFixed(g.Advance),
			xOffset: fromFixed(g.XOffset),
			yOffset: -fromFixed(g.YOffset),
		})
	}
	return glyphs, true
}
