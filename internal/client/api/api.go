// Package api implements the REST client for the authstack server.
package api

import (
	"context"

	"authstack/internal/client/models"
)

// Client is the server API surface the rest of the client depends on.
//
// SignUp and SignIn return the signed-in user plus the session token. In
// cookie mode the token string is empty: the credential lives in the
// client's cookie jar instead.
type Client interface {
	SignUp(ctx context.Context, email, password, passwordConfirmation string) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	SignOut(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error

	// SetToken installs a previously cached bearer token; pass "" to clear.
	SetToken(token string)
}
