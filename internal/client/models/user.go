// Package models defines the client-side data types exchanged with the
// estimation backend and held by the session.
package models

// User is the signed-in principal as described by the backend.
//
// The struct holds no reference fields, so a plain value copy is a safe
// read-only snapshot for views.
type User struct {
	// ID is the backend's numeric user identifier.
	ID int64 `json:"id"`

	// Username is the display name, unique on the backend.
	Username string `json:"username"`

	// Email is the login identifier.
	Email string `json:"email"`

	// IsAdmin grants access to the administrator views.
	IsAdmin bool `json:"is_admin"`
}
