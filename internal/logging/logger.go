// Package logging is the logger the estimator client hands to its session
// controller, HTTP transport and CLI. Session transitions are logged at info
// or warn, per-request outcomes at debug.
package logging

import "context"

// Logger takes a message plus alternating key and value args:
//
//	log.Info(ctx, "session restored", "user_id", u.ID)
//
// Implementations must be safe for concurrent use; the controller logs from
// whichever goroutine commits a transition.
type Logger interface {
	// Debug is for per-request detail such as method, path and status.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn marks a recoverable problem, e.g. a stored token the server refused.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds args to every record of the returned logger.
	With(args ...any) Logger
}
