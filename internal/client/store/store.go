// Package store keeps the session credential between client runs.
//
// A TokenStore is a plain storage primitive: it never validates what it
// holds. The empty string stands for "no token".
package store

import "context"

// TokenStore holds at most one bearer token.
type TokenStore interface {
	// Get returns the stored token, or "" when none is stored.
	Get(ctx context.Context) (string, error)
	// Set replaces the stored token.
	Set(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
