package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; tests only need a working logger.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: level})
}
