package nvg

import (
	"errors"
	"fmt"
)

// Error categories. Errors returned by nvg match one of these with
// errors.Is.
var (
	// ErrResourceLoad is returned when font or image data cannot be
	// loaded. The context stays usable.
	ErrResourceLoad = errors.New("nvg: resource load failed")

	// ErrInvalidHandle is reported for unknown or deleted images and
	// fonts. Draws that reference them are skipped.
	ErrInvalidHandle = errors.New("nvg: invalid handle")

	// ErrSingularMatrix is returned when a transform cannot be inverted.
	ErrSingularMatrix = errors.New("nvg: singular matrix")

	// ErrUsage marks programmer errors such as drawing outside a frame.
	ErrUsage = errors.New("nvg: usage error")
)

// Usage error causes.
var (
	errNoFrame        = errors.New("no frame in progress")
	errFrameOpen      = errors.New("frame already in progress")
	errStackUnderflow = errors.New("restore without matching save")
	errStackOverflow  = fmt.Errorf("more than %d saved states", MaxStates)
	errNoFont         = errors.New("no font selected")
)

// UsageError reports a call made in a state that does not allow it.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("nvg: %s: %v", e.Op, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// Is makes every UsageError match ErrUsage.
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

func usage(op string, err error) error {
	return &UsageError{Op: op, Err: err}
}
