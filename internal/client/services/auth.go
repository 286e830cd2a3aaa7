// Package services wraps the backend endpoints in typed calls over a
// client.Requester. Services are stateless; authentication is whatever the
// Requester they are built on carries.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
)

// AuthAPI covers the /auth endpoints.
type AuthAPI struct {
	r client.Requester
}

func NewAuthAPI(r client.Requester) *AuthAPI {
	return &AuthAPI{r: r}
}

// Me returns the identity bound to the requester's credential.
func (a *AuthAPI) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.r.Do(ctx, client.Get("/auth/me"), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token and identity.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return a.authenticate(ctx, client.Post("/auth/login", models.LoginRequest{Email: email, Password: password}))
}

// Register creates an account and returns its access token and identity.
func (a *AuthAPI) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	return a.authenticate(ctx, client.Post("/auth/register", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}))
}

func (a *AuthAPI) authenticate(ctx context.Context, req *client.Request) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.r.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid() {
		return nil, &client.HTTPError{
			Method: req.Method,
			Path:   req.Path,
			Err:    fmt.Errorf("%w: missing access token or user", client.ErrMalformedResponse),
		}
	}
	return &resp, nil
}

// UpdateProfile submits the non-nil fields and returns the updated identity.
func (a *AuthAPI) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	req := client.Put("/auth/update", upd)

	var resp models.ProfileUpdateResponse
	if err := a.r.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &client.HTTPError{
			Method: req.Method,
			Path:   req.Path,
			Err:    fmt.Errorf("%w: missing user", client.ErrMalformedResponse),
		}
	}
	return resp.User, nil
}
