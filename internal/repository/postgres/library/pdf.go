package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	"pdfshelf/internal/repository/postgres"
	"pdfshelf/internal/repository/query"
)

// pdfColumns qualifies the filter columns against the "p" alias used below
var pdfColumns = query.Columns{
	FolderID: "p.folder_id",
	Filename: "p.filename",
	Tags:     "p.tags",
}

// PostgresPDFRepository implements the PDFRepository interface
type PostgresPDFRepository struct {
	pool   *pgxpool.Pool
	tables *query.TableNames
}

// NewPDFRepository creates a new PDF repository
func NewPDFRepository(config *postgres.RepositoryConfig) libraryRepo.PDFRepository {
	return &PostgresPDFRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// selectPDFs is the shared projection with the folder name joined
func (r *PostgresPDFRepository) selectPDFs() string {
	return fmt.Sprintf(`
		SELECT p.id, p.filename, p.path, p.folder_id, f.name, p.tags, p.created_at
		FROM %s p
		LEFT JOIN %s f ON f.id = p.folder_id
	`, r.tables.PDFs, r.tables.Folders)
}

// Create inserts a new PDF row
func (r *PostgresPDFRepository) Create(ctx context.Context, pdf *models.PDF) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (filename, path, folder_id, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.PDFs)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		pdf.Filename,
		pdf.Path,
		pdf.FolderID,
		models.JoinTags(pdf.Tags),
	).Scan(&pdf.ID, &pdf.CreatedAt)

	if err != nil {
		if postgres.IsForeignKeyError(err) {
			return fmt.Errorf("folder %d: %w", derefID(pdf.FolderID), domain.ErrNotFound)
		}
		return fmt.Errorf("create pdf: %w", err)
	}

	pdf.Tags = models.NormalizeTags(pdf.Tags)
	return nil
}

// GetByID retrieves a PDF by ID
func (r *PostgresPDFRepository) GetByID(ctx context.Context, id int64) (*models.PDF, error) {
	query := r.selectPDFs() + `WHERE p.id = $1`

	executor := postgres.GetExecutor(ctx, r.pool)
	pdf, err := scanPDF(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("pdf %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get pdf: %w", err)
	}

	return pdf, nil
}

// ListByIDs retrieves the PDFs matching ids ordered by id
func (r *PostgresPDFRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.PDF, error) {
	if len(ids) == 0 {
		return []models.PDF{}, nil
	}

	query := r.selectPDFs() + `WHERE p.id = ANY($1) ORDER BY p.id ASC`

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list pdfs by id: %w", err)
	}
	defer rows.Close()

	return collectPDFs(rows)
}

// List returns the PDFs matching the filter, newest first
func (r *PostgresPDFRepository) List(ctx context.Context, filter models.ListFilter) ([]models.PDF, error) {
	where := query.BuildPDFWhere(filter, pdfColumns, query.Postgres)
	sql := r.selectPDFs() + fmt.Sprintf(`WHERE %s ORDER BY %s`,
		where.Clause, query.OrderNewestFirst("p.created_at", "p.id"))

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, where.Args...)
	if err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	defer rows.Close()

	return collectPDFs(rows)
}

// Count returns the number of PDFs matching the filter
func (r *PostgresPDFRepository) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	where := query.BuildPDFWhere(filter, pdfColumns, query.Postgres)
	sql := fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE %s`, r.tables.PDFs, where.Clause)

	var count int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, sql, where.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pdfs: %w", err)
	}

	return count, nil
}

// UpdateTags replaces the stored tag blob
func (r *PostgresPDFRepository) UpdateTags(ctx context.Context, id int64, tags []string) error {
	query := fmt.Sprintf(`UPDATE %s SET tags = $1 WHERE id = $2`, r.tables.PDFs)
	return r.execOne(ctx, "update pdf tags", id, query, models.JoinTags(tags), id)
}

// UpdateFilename changes the display filename
func (r *PostgresPDFRepository) UpdateFilename(ctx context.Context, id int64, filename string) error {
	query := fmt.Sprintf(`UPDATE %s SET filename = $1 WHERE id = $2`, r.tables.PDFs)
	return r.execOne(ctx, "rename pdf", id, query, filename, id)
}

// MoveToFolder sets folder_id on every matching row
func (r *PostgresPDFRepository) MoveToFolder(ctx context.Context, ids []int64, folderID *int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`UPDATE %s SET folder_id = $1 WHERE id = ANY($2)`, r.tables.PDFs)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, ids)
	if err != nil {
		if postgres.IsForeignKeyError(err) {
			return 0, fmt.Errorf("folder %d: %w", derefID(folderID), domain.ErrNotFound)
		}
		return 0, fmt.Errorf("move pdfs: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// ClearFolder makes every PDF in the folder unfiled
func (r *PostgresPDFRepository) ClearFolder(ctx context.Context, folderID int64) (int, error) {
	query := fmt.Sprintf(`UPDATE %s SET folder_id = NULL WHERE folder_id = $1`, r.tables.PDFs)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID)
	if err != nil {
		return 0, fmt.Errorf("clear folder: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// Delete removes a single row
func (r *PostgresPDFRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.PDFs)
	return r.execOne(ctx, "delete pdf", id, query, id)
}

// DeleteByIDs removes every matching row
func (r *PostgresPDFRepository) DeleteByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.PDFs)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete pdfs: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// execOne runs a single-row statement and maps zero affected rows to ErrNotFound
func (r *PostgresPDFRepository) execOne(ctx context.Context, op string, id int64, query string, args ...interface{}) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pdf %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
}

func scanPDF(row rowScanner) (*models.PDF, error) {
	var pdf models.PDF
	var tags *string
	err := row.Scan(
		&pdf.ID,
		&pdf.Filename,
		&pdf.Path,
		&pdf.FolderID,
		&pdf.FolderName,
		&tags,
		&pdf.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	pdf.Tags = []string{}
	if tags != nil {
		pdf.Tags = models.SplitTags(*tags)
	}
	return &pdf, nil
}

func collectPDFs(rows rowIterator) ([]models.PDF, error) {
	pdfs := []models.PDF{}
	for rows.Next() {
		pdf, err := scanPDF(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pdf: %w", err)
		}
		pdfs = append(pdfs, *pdf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pdfs: %w", err)
	}

	return pdfs, nil
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
