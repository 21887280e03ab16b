// Package sessions persists the server-side session records behind issued
// tokens. Two implementations exist: Postgres (rows in the sessions table)
// and Redis (keys with a TTL equal to the session lifetime).
package sessions

import (
	"context"

	"authstack/internal/server/models"
)

// Repository is the session store port.
//
// Delete is idempotent: removing an absent session is not an error, which is
// what makes repeated sign-out a no-op.
type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}
