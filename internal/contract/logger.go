package contract

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns the structured logger shared by every command.
// Colors are emitted only when useColors is set.
func NewLogger(w io.Writer, level slog.Level, useColors bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !useColors,
	}))
}
