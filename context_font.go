package nvg

import (
	"errors"
	"fmt"

	"github.com/gogpu/nvg/font"
)

// fontError maps a font registry error onto the nvg error categories.
func fontError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, font.ErrLoad), errors.Is(err, font.ErrEmptyFontData):
		return fmt.Errorf("%w: %w", ErrResourceLoad, err)
	case errors.Is(err, font.ErrInvalidHandle):
		return fmt.Errorf("nvg: %s: %w: %w", op, ErrInvalidHandle, err)
	case errors.Is(err, font.ErrFallbackCycle),
		errors.Is(err, font.ErrTooManyFallbacks),
		errors.Is(err, font.ErrModeUnavailable):
		return usage(op, err)
	default:
		return fmt.Errorf("nvg: %s: %w", op, err)
	}
}

// CreateFont loads the font file at path and registers it under name.
func (c *Context) CreateFont(name, path string) (FontID, error) {
	return c.CreateFontAtIndex(name, path, 0)
}

// CreateFontAtIndex loads face faceIndex of the font collection at path.
func (c *Context) CreateFontAtIndex(name, path string, faceIndex int) (FontID, error) {
	id, err := c.fonts.Create(name, path, faceIndex)
	if err != nil {
		return InvalidFont, fontError("CreateFont", err)
	}
	c.initFontMode(id)
	return id, nil
}

// CreateFontMem registers the font held in data under name. When owned is
// false, data must stay unchanged until the font is deleted.
func (c *Context) CreateFontMem(name string, data []byte, owned bool) (FontID, error) {
	return c.CreateFontMemAtIndex(name, data, owned, 0)
}

// CreateFontMemAtIndex registers face faceIndex of the font collection
// held in data.
func (c *Context) CreateFontMemAtIndex(name string, data []byte, owned bool, faceIndex int) (FontID, error) {
	id, err := c.fonts.CreateMem(name, data, owned, faceIndex)
	if err != nil {
		return InvalidFont, fontError("CreateFontMem", err)
	}
	c.initFontMode(id)
	return id, nil
}

// initFontMode renders new fonts as distance fields when the context has
// FlagSDFText.
func (c *Context) initFontMode(id FontID) {
	if !c.flags.Has(FlagSDFText) {
		return
	}
	if err := c.fonts.SetMode(id, font.ModeSDF); err != nil {
		Logger().Warn("nvg: sdf text unavailable", "font", id, "err", err)
	}
}

// FindFont returns the font registered under name, or InvalidFont.
func (c *Context) FindFont(name string) FontID {
	return c.fonts.Find(name)
}

// AddFallbackFontID adds fallback to the fallback chain of base. Chains
// that would contain a cycle are rejected with a UsageError.
func (c *Context) AddFallbackFontID(base, fallback FontID) error {
	return fontError("AddFallbackFont", c.fonts.AddFallback(base, fallback))
}

// AddFallbackFont adds a fallback by font name.
func (c *Context) AddFallbackFont(base, fallback string) error {
	return fontError("AddFallbackFont", c.fonts.AddFallbackByName(base, fallback))
}

// ResetFallbackFontsID clears the fallback chain of base.
func (c *Context) ResetFallbackFontsID(base FontID) error {
	return fontError("ResetFallbackFonts", c.fonts.ResetFallbacks(base))
}

// ResetFallbackFonts clears the fallback chain of the font named base.
func (c *Context) ResetFallbackFonts(base string) error {
	id := c.fonts.Find(base)
	if !id.Valid() {
		return fmt.Errorf("nvg: ResetFallbackFonts: %w: font %q", ErrInvalidHandle, base)
	}
	return c.ResetFallbackFontsID(id)
}

// SetFontMSDF switches id between multi-channel distance field rendering
// and the context's default glyph mode. Enabling MSDF requires
// FlagMSDFText.
func (c *Context) SetFontMSDF(id FontID, enabled bool) error {
	mode := font.ModeBitmap
	switch {
	case enabled:
		mode = font.ModeMSDF
	case c.flags.Has(FlagSDFText):
		mode = font.ModeSDF
	}
	return fontError("SetFontMSDF", c.fonts.SetMode(id, mode))
}

// DeleteFont deletes id and removes it from every fallback chain. States
// that select it report ErrInvalidHandle on their next text call.
func (c *Context) DeleteFont(id FontID) error {
	return fontError("DeleteFont", c.fonts.Delete(id))
}
