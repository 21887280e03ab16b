// Package dbx holds the tiny database abstraction shared by all SQL-backed
// repositories: a minimal interface satisfied by both *sql.DB and *sql.Tx so
// repositories never care which one they were handed.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
