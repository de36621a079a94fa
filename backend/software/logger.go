package software

import (
	"log/slog"

	"github.com/gogpu/nvg/backend"
)

// logger returns the backend package logger, which nvg.SetLogger
// configures for all drivers.
func logger() *slog.Logger { return backend.Logger() }
