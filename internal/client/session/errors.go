package session

import "errors"

var (
	// ErrSuperseded is returned when a newer transition (typically a logout)
	// started while the call was in flight; its result was discarded.
	ErrSuperseded = errors.New("session changed while request was in flight")

	ErrNotAuthenticated = errors.New("not authenticated")
)
