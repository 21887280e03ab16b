// Package users persists account records.
package users

import (
	"context"

	"authstack/internal/server/models"
)

// Repository is the credential store port used by the auth service.
//
// Create must be atomic with respect to the uniqueness check: two concurrent
// calls with the same email must produce exactly one account and one
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
