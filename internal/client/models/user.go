// Package models holds the client-side view of server resources.
package models

// User is the account representation returned by the server.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
