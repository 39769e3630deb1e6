// Package logging defines the structured, context-aware logger used across
// the client, with slog and zap backed implementations.
package logging

import "context"

// Logger takes a message followed by key/value pairs:
//
//	log.Info(ctx, "goal plan created", "city", city, "from", "planner")
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
