// Package session maintains the client's view of the authentication state:
// a small state machine plus the durable token cache backing it.
package session

import (
	"context"
	"sync"

	"authstack/internal/client/api"
	"authstack/internal/client/models"
	"authstack/internal/client/repositories/metadata"
)

// State is the client's authentication state.
type State int

const (
	// StateAnonymous means no usable credential is known.
	StateAnonymous State = iota
	// StateResolving means a cached token exists and is being verified
	// against the server.
	StateResolving
	// StateAuthenticated means the server confirmed the credential.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// tokenKey is the metadata key under which the session token is cached.
const tokenKey = "token"

// Cache tracks the signed-in user and keeps the bearer token cached across
// process restarts. All transitions happen under one mutex, so concurrent
// commands observe a consistent state.
type Cache struct {
	api  api.Client
	meta metadata.Repository

	mu    sync.Mutex
	state State
	user  *models.User
}

func NewCache(apiClient api.Client, meta metadata.Repository) *Cache {
	return &Cache{api: apiClient, meta: meta, state: StateAnonymous}
}

// State returns the current authentication state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUser returns the signed-in user, or nil when anonymous.
func (c *Cache) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Restore loads the cached token, if any, and verifies it with the server.
// A missing token leaves the cache anonymous. Any resolution failure,
// whether a rejected token or an unreachable server, purges the cached
// credential and ends anonymous: the outcome is a clean signed-out state,
// never an error the caller has to handle.
func (c *Cache) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, err := c.meta.Get(ctx, tokenKey)
	if err != nil {
		return err
	}
	if len(token) == 0 {
		c.state = StateAnonymous
		return nil
	}

	c.state = StateResolving
	c.api.SetToken(string(token))

	user, err := c.api.Me(ctx)
	if err != nil {
		return c.purge(ctx)
	}

	c.state = StateAuthenticated
	c.user = user
	return nil
}

// Register signs up a new account and enters the authenticated state.
func (c *Cache) Register(ctx context.Context, email, password, passwordConfirmation string) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, token, err := c.api.SignUp(ctx, email, password, passwordConfirmation)
	if err != nil {
		return nil, err
	}
	return user, c.establish(ctx, user, token)
}

// Login signs in with existing credentials and enters the authenticated
// state.
func (c *Cache) Login(ctx context.Context, email, password string) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, token, err := c.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return user, c.establish(ctx, user, token)
}

// Logout revokes the session server-side best-effort and always ends
// anonymous locally, even when the server is unreachable or already
// considered the session gone.
func (c *Cache) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.api.SignOut(ctx)
	return c.purge(ctx)
}

// establish records a fresh session: caller holds the mutex. An empty token
// (cookie mode) clears any stale cached token instead of persisting one.
func (c *Cache) establish(ctx context.Context, user *models.User, token string) error {
	c.state = StateAuthenticated
	c.user = user

	if token == "" {
		return c.meta.Delete(ctx, tokenKey)
	}
	return c.meta.Set(ctx, tokenKey, []byte(token))
}

// purge drops every trace of the session: caller holds the mutex.
func (c *Cache) purge(ctx context.Context) error {
	c.state = StateAnonymous
	c.user = nil
	c.api.SetToken("")
	return c.meta.Delete(ctx, tokenKey)
}
