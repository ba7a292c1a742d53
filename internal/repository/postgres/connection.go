package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdfshelf/internal/repository/query"
)

// RepositoryConfig is shared by the library repositories
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *query.TableNames
	Logger *slog.Logger
}

// pgBouncerPort is the transaction-pooling port, which rejects prepared statements
const pgBouncerPort = 6543

// Connect opens a pool sized to maxConns and pings it.
// Bulk moves and deletes hold one connection for their whole transaction,
// so maxConns bounds how many can run at once.
func Connect(ctx context.Context, databaseURL string, maxConns int32, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MinConns = min(2, config.MaxConns)

	conn := config.ConnConfig
	if conn.Port == pgBouncerPort && conn.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		conn.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		logger.Debug("using cache_describe exec mode behind pgbouncer", "port", conn.Port)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
