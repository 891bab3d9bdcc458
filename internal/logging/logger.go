// Package logging keeps the server's components decoupled from a concrete
// log backend. Everything logs through the Logger interface; the server
// installs the slog adapter at startup and tests install a discarding one.
package logging

import "context"

// Logger writes leveled, structured records. The variadic args are
// alternating key/value pairs in the slog convention:
//
//	log.Info(ctx, "user registered", "user_id", id)
type Logger interface {
	// Info records normal lifecycle events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn records recoverable oddities, like federated profile hints
	// that could not be applied.
	Warn(ctx context.Context, msg string, args ...any)

	// Error records failures that abort the current operation.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger stamping every record with the given pairs.
	// Services use it to tag themselves ("module", "auth").
	With(args ...any) Logger
}
