// Package common defines shared constants and sentinel errors used across
// client and server layers of authstack. Callers should use errors.Is to
// match the sentinel values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential check failure. Deliberately a single value for both
	// "unknown email" and "wrong password".
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token lifecycle errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError carries the list of per-field validation messages produced
// during sign-up. The messages are human-readable and surfaced to the client
// verbatim.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
