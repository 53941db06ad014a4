// Package logging defines the structured-logging interface used across the
// service. The concrete implementation wraps log/slog, but nothing outside
// this package depends on that choice.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are
// interpreted as key-value pairs:
//
//	log.Info(ctx, "server started", "addr", addr)
type Logger interface {
	// Debug logs fine-grained diagnostic messages.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
