package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pdfshelf/internal/repository/query"
)

// EnsureSchema creates the library tables for the configured prefix if they are missing.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *query.TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         BIGSERIAL PRIMARY KEY,
				name       VARCHAR(255) NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         BIGSERIAL PRIMARY KEY,
				filename   VARCHAR(255) NOT NULL,
				path       TEXT NOT NULL,
				folder_id  BIGINT REFERENCES %s(id) ON DELETE SET NULL,
				tags       TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.PDFs, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_folder_id_idx ON %s (folder_id)`, tables.PDFs, tables.PDFs),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_created_at_idx ON %s (created_at DESC)`, tables.PDFs, tables.PDFs),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id   BIGSERIAL PRIMARY KEY,
				name VARCHAR(100) NOT NULL UNIQUE
			)`, tables.Tags),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every library table for the configured prefix
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *query.TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
