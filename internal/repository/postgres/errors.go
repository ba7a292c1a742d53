package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the library repositories translate into domain errors
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsDuplicateError reports a unique violation, i.e. a folder or tag name already taken
func IsDuplicateError(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// IsForeignKeyError reports a folder_id that references no folder
func IsForeignKeyError(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

// IsNoRowsError reports a single-row lookup that matched nothing
func IsNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
