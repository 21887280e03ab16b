// Package models defines the server-side entities persisted by the
// repositories.
package models

import "time"

// User is an account record. Email is stored lowercased and is unique.
// PasswordHash is a bcrypt hash and must never be serialized to clients.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
