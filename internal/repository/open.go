// Package repository selects and opens the metadata store named by DATABASE_URL.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"pdfshelf/internal/config"
	"pdfshelf/internal/domain/repositories"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	"pdfshelf/internal/repository/postgres"
	postgresLibrary "pdfshelf/internal/repository/postgres/library"
	"pdfshelf/internal/repository/query"
	"pdfshelf/internal/repository/sqlite"
	sqliteLibrary "pdfshelf/internal/repository/sqlite/library"
)

// Engine names the backing database
type Engine string

const (
	EngineSQLite   Engine = "sqlite"
	EnginePostgres Engine = "postgres"
)

// Store bundles the library repositories for one engine
type Store struct {
	Engine    Engine
	Tables    *query.TableNames
	Folders   libraryRepo.FolderRepository
	PDFs      libraryRepo.PDFRepository
	Tags      libraryRepo.TagRepository
	TxManager repositories.TransactionManager

	drop  func(ctx context.Context) error
	close func()
}

// Open connects to the configured database and makes sure the schema exists
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	tables := query.NewTableNames(cfg.TablePrefix)

	if cfg.IsSQLite() {
		db, err := sqlite.Open(ctx, cfg.SQLitePath(), tables)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}

		repoConfig := &sqlite.RepositoryConfig{DB: db, Tables: tables, Logger: logger}
		logger.Info("database connected", "engine", EngineSQLite, "path", cfg.SQLitePath())

		return &Store{
			Engine:    EngineSQLite,
			Tables:    tables,
			Folders:   sqliteLibrary.NewFolderRepository(repoConfig),
			PDFs:      sqliteLibrary.NewPDFRepository(repoConfig),
			Tags:      sqliteLibrary.NewTagRepository(repoConfig),
			TxManager: sqlite.NewTransactionManager(db, logger),
			drop:      func(ctx context.Context) error { return sqlite.DropSchema(ctx, db, tables) },
			close:     func() { db.Close() },
		}, nil
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns), logger)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	stat := pool.Stat()
	logger.Info("database connected",
		"engine", EnginePostgres,
		"max_conns", stat.MaxConns(),
		"table_prefix", cfg.TablePrefix,
	)

	return &Store{
		Engine:    EnginePostgres,
		Tables:    tables,
		Folders:   postgresLibrary.NewFolderRepository(repoConfig),
		PDFs:      postgresLibrary.NewPDFRepository(repoConfig),
		Tags:      postgresLibrary.NewTagRepository(repoConfig),
		TxManager: postgres.NewTransactionManager(pool, logger),
		drop:      func(ctx context.Context) error { return postgres.DropSchema(ctx, pool, tables) },
		close:     pool.Close,
	}, nil
}

// DropAll removes every library table. The store is unusable afterwards.
func (s *Store) DropAll(ctx context.Context) error {
	return s.drop(ctx)
}

// Close releases the database handle
func (s *Store) Close() {
	s.close()
}
