// Package metadata persists small key-value client state, most importantly
// the cached session token.
package metadata

import "context"

type Repository interface {
	// Get returns nil (no error) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
