// Package storage opens the client's local sqlite database and wires the
// repositories over it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"authstack/internal/client/migrations"
	"authstack/internal/client/repositories/metadata"
)

type Storage struct {
	db       *sql.DB
	Metadata metadata.Repository
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the sqlite database at dsn and runs
// migrations. Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{
		db:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
