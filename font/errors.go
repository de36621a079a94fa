package font

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrLoad is returned when font data cannot be parsed.
	ErrLoad = errors.New("font: cannot load font")

	// ErrInvalidHandle is returned for unknown or deleted fonts.
	ErrInvalidHandle = errors.New("font: invalid font handle")

	// ErrFallbackCycle is returned when a fallback would make a font its
	// own fallback.
	ErrFallbackCycle = errors.New("font: fallback cycle")

	// ErrTooManyFallbacks is returned when a chain exceeds MaxFallbacks.
	ErrTooManyFallbacks = errors.New("font: too many fallbacks")

	// ErrModeUnavailable is returned when a rendering mode was not enabled
	// for the registry.
	ErrModeUnavailable = errors.New("font: rendering mode unavailable")

	// ErrAtlasFull is returned when a glyph does not fit in the atlas.
	ErrAtlasFull = errors.New("font: atlas full")
)

// LoadError describes a font that failed to load.
type LoadError struct {
	Name  string
	Index int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("font: load %q (face %d): %v", e.Name, e.Index, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports ErrLoad as matching every LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }
