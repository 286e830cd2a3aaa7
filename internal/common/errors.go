// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input validation errors raised before any request is sent.
	ErrInvalidInput = errors.New("invalid input")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
