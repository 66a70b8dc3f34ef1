// Package db provides PostgreSQL storage for extraction records.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS extractions (
		id           UUID PRIMARY KEY,
		source_name  TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL,
		settings     TEXT NOT NULL DEFAULT '',
		result       JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE extractions ADD COLUMN IF NOT EXISTS settings TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS extractions_content_hash_idx ON extractions (content_hash, settings)`,
	`CREATE INDEX IF NOT EXISTS extractions_created_at_idx ON extractions (created_at DESC)`,
}

// Migrate creates the tables used by the service. It is safe to run on every
// start.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
