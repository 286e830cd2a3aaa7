package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// Valid reports whether the response carries everything a session needs.
func (r *AuthResponse) Valid() bool {
	return r != nil && r.AccessToken != "" && r.User != nil
}

// ProfileUpdate is the body of PUT /auth/update. Nil fields are left
// unchanged by the backend.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ProfileUpdateResponse is returned by PUT /auth/update.
type ProfileUpdateResponse struct {
	Message string `json:"msg"`
	User    *User  `json:"user"`
}
