// Package sqlite is the embedded metadata store used when DATABASE_URL selects a local file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"pdfshelf/internal/repository/query"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     *sql.DB
	Tables *query.TableNames
	Logger *slog.Logger
}

// Open opens the database file, enables foreign keys and applies the schema.
// SQLite serialises writers anyway, so the pool is limited to one connection; this
// also keeps an in-memory database alive for the lifetime of the handle.
func Open(ctx context.Context, path string, tables *query.TableNames) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on&_busy_timeout=5000"
	if path != MemoryPath {
		if dir := filepath.Dir(strings.TrimPrefix(path, "file:")); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, db, tables); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// migrate creates the library schema
func migrate(ctx context.Context, db *sql.DB, tables *query.TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				created_at DATETIME NOT NULL
			)`, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				filename TEXT NOT NULL,
				path TEXT NOT NULL,
				folder_id INTEGER REFERENCES %s(id) ON DELETE SET NULL,
				tags TEXT,
				created_at DATETIME NOT NULL
			)`, tables.PDFs, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_folder_id ON %s(folder_id)`, tables.PDFs, tables.PDFs),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s(created_at)`, tables.PDFs, tables.PDFs),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			)`, tables.Tags),
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema drops every library table
func DropSchema(ctx context.Context, db *sql.DB, tables *query.TableNames) error {
	for _, table := range tables.All() {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
