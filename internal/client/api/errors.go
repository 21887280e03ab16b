package api

import "errors"

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the server rejected the credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials means sign-in failed; the server does not say
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
