package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// ToContext returns a copy of ctx carrying log.
func ToContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the request logger, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// With adds attributes to the context logger and stores the result back:
//
//	_, ctx := logger.With(r.Context(), "uid", uid)
func With(ctx context.Context, args ...any) (*slog.Logger, context.Context) {
	log := FromContext(ctx).With(args...)
	return log, ToContext(ctx, log)
}
