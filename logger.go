package nvg

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/nvg/backend"
	"github.com/gogpu/nvg/font"
	"github.com/gogpu/nvg/resource"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for nvg and its sub-packages. By
// default nvg produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used by nvg:
//   - [slog.LevelDebug]: frame and atlas diagnostics
//   - [slog.LevelInfo]: lifecycle events (context created, driver selected)
//   - [slog.LevelWarn]: reported errors (invalid handles, usage errors)
//
// Example:
//
//	nvg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	backend.SetLogger(l)
	font.SetLogger(l)
	resource.SetLogger(l)
}

// Logger returns the current logger used by nvg.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
