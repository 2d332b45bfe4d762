package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

// TestCtx returns a background context whose logger discards output.
func TestCtx() context.Context {
	return logger.ToContext(context.Background(), TestLogger())
}

func TestLogger() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelDebug))
}
