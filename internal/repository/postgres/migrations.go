package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// RunMigrations creates the schema if it does not exist yet.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		location TEXT NULL,
		notes TEXT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		contact_id UUID NULL REFERENCES contacts (id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CHECK (end_date >= start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS events_start_date_idx ON events (start_date)`,
}
