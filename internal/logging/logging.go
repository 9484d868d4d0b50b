package logging

import (
	"context"
	"log/slog"
	"os"
)

// New returns a console logger for one zone agent process. Events go to the
// shared event log; this logger only carries operator-facing diagnostics.
func New(zone string) *slog.Logger {
	l := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if zone != "" {
		l = l.With("zone", zone)
	}
	return l
}

type ctxKey struct{}

// NewContext returns a copy of ctx with the logger stored.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves a logger from ctx or returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
