package postgres

import (
	"context"
	"fmt"
)

// schemaStatements are applied in order on startup. Trigram similarity
// requires the pg_trgm extension.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE TABLE IF NOT EXISTS users (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		alias    TEXT NOT NULL DEFAULT '',
		created  TIMESTAMPTZ NOT NULL DEFAULT now(),
		modified TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id                    TEXT PRIMARY KEY,
		title                 TEXT NOT NULL,
		publisher             TEXT NOT NULL DEFAULT '',
		published             TIMESTAMPTZ,
		publisher_established TIMESTAMPTZ,
		created               TIMESTAMPTZ NOT NULL DEFAULT now(),
		modified              TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_name_trgm ON users USING GIN (name gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_users_created ON users (created)`,
	`CREATE INDEX IF NOT EXISTS idx_users_modified ON users (modified)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created ON posts (created)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_modified ON posts (modified)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_published ON posts (published)`,
}

// EnsureSchema creates the extension, tables, and indexes if missing.
func EnsureSchema(ctx context.Context, db querier) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
