package models

import "time"

// Session is the server-side record behind an issued token. The ID is the
// uuid embedded in the token; deleting the record revokes the token even
// though the token itself is self-encoding.
type Session struct {
	ID        string
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given
// instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
