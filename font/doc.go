// Package font implements the font registry of a rendering context: named
// fonts with per-font fallback chains, per-font glyph rendering modes,
// text layout and measurement, line breaking, and a shelf-packed glyph
// atlas.
//
// Fonts are parsed with golang.org/x/image/font/sfnt. Text is normalized
// to NFC before glyph lookup, and can optionally be shaped with the
// HarfBuzz port of github.com/go-text/typesetting.
//
// # Fallback Resolution
//
// A rune missing from a font is looked up in the font's fallbacks in the
// order they were added, depth first, then in the emoji font if one is
// set. Fallback chains never contain cycles: AddFallback rejects a font
// that would become its own fallback, directly or transitively.
//
// # Sizes
//
// A font size is the pixel distance between the ascender and descender
// lines, so text of size 20 spans 20 units from ascender to descender
// regardless of the font's units per em.
package font
