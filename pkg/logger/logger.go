package logger

import (
	"log/slog"
	"strings"
)

// New builds a logger at the named level using the given handler factory.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	return slog.New(handler(ParseLevel(level)))
}

// ParseLevel maps LOGLEVEL values onto slog levels. Cloud Logging's
// "warning" and "critical" names are accepted too; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "critical":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
