// Package common contains constants and sentinel errors shared by the
// estimator client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header value.
	BearerScheme = "Bearer"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the single durable key holding the access token.
	// Its absence is the canonical logged-out representation.
	TokenMetadataKey = "access_token"
)
