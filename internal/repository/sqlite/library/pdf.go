package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	"pdfshelf/internal/repository/query"
	"pdfshelf/internal/repository/sqlite"
)

var pdfColumns = query.Columns{
	FolderID: "p.folder_id",
	Filename: "p.filename",
	Tags:     "p.tags",
}

// SQLitePDFRepository implements the PDFRepository interface
type SQLitePDFRepository struct {
	db     *sql.DB
	tables *query.TableNames
}

// NewPDFRepository creates a new PDF repository
func NewPDFRepository(config *sqlite.RepositoryConfig) libraryRepo.PDFRepository {
	return &SQLitePDFRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

func (r *SQLitePDFRepository) selectPDFs() string {
	return fmt.Sprintf(`
		SELECT p.id, p.filename, p.path, p.folder_id, f.name, p.tags, p.created_at
		FROM %s p
		LEFT JOIN %s f ON f.id = p.folder_id
	`, r.tables.PDFs, r.tables.Folders)
}

// Create inserts a new PDF row. A zero CreatedAt is set to now.
func (r *SQLitePDFRepository) Create(ctx context.Context, pdf *models.PDF) error {
	if pdf.CreatedAt.IsZero() {
		pdf.CreatedAt = time.Now()
	}
	pdf.CreatedAt = pdf.CreatedAt.UTC()

	stmt := fmt.Sprintf(`
		INSERT INTO %s (filename, path, folder_id, tags, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.tables.PDFs)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt,
		pdf.Filename,
		pdf.Path,
		pdf.FolderID,
		models.JoinTags(pdf.Tags),
		pdf.CreatedAt,
	)
	if err != nil {
		if sqlite.IsForeignKeyError(err) {
			return fmt.Errorf("folder %d: %w", derefID(pdf.FolderID), domain.ErrNotFound)
		}
		return fmt.Errorf("create pdf: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	pdf.ID = id
	pdf.Tags = models.NormalizeTags(pdf.Tags)

	return nil
}

// GetByID retrieves a PDF by ID
func (r *SQLitePDFRepository) GetByID(ctx context.Context, id int64) (*models.PDF, error) {
	stmt := r.selectPDFs() + `WHERE p.id = ?`

	executor := sqlite.GetExecutor(ctx, r.db)
	pdf, err := scanPDF(executor.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("pdf %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get pdf: %w", err)
	}

	return pdf, nil
}

// ListByIDs retrieves the PDFs matching ids ordered by id
func (r *SQLitePDFRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.PDF, error) {
	if len(ids) == 0 {
		return []models.PDF{}, nil
	}

	stmt := r.selectPDFs() + fmt.Sprintf(`WHERE p.id IN (%s) ORDER BY p.id ASC`, sqlite.Placeholders(len(ids)))

	executor := sqlite.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, stmt, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("list pdfs by id: %w", err)
	}
	defer rows.Close()

	return collectPDFs(rows)
}

// List returns the PDFs matching the filter, newest first
func (r *SQLitePDFRepository) List(ctx context.Context, filter models.ListFilter) ([]models.PDF, error) {
	where := query.BuildPDFWhere(filter, pdfColumns, query.SQLite)
	stmt := r.selectPDFs() + fmt.Sprintf(`WHERE %s ORDER BY %s`,
		where.Clause, query.OrderNewestFirst("p.created_at", "p.id"))

	executor := sqlite.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, stmt, where.Args...)
	if err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	defer rows.Close()

	return collectPDFs(rows)
}

// Count returns the number of PDFs matching the filter
func (r *SQLitePDFRepository) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	where := query.BuildPDFWhere(filter, pdfColumns, query.SQLite)
	stmt := fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE %s`, r.tables.PDFs, where.Clause)

	var count int
	executor := sqlite.GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, stmt, where.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pdfs: %w", err)
	}

	return count, nil
}

// UpdateTags replaces the stored tag blob
func (r *SQLitePDFRepository) UpdateTags(ctx context.Context, id int64, tags []string) error {
	stmt := fmt.Sprintf(`UPDATE %s SET tags = ? WHERE id = ?`, r.tables.PDFs)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, models.JoinTags(tags), id)
	if err != nil {
		return fmt.Errorf("update pdf tags: %w", err)
	}

	return expectOne(result, "pdf", id)
}

// UpdateFilename changes the display filename
func (r *SQLitePDFRepository) UpdateFilename(ctx context.Context, id int64, filename string) error {
	stmt := fmt.Sprintf(`UPDATE %s SET filename = ? WHERE id = ?`, r.tables.PDFs)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, filename, id)
	if err != nil {
		return fmt.Errorf("rename pdf: %w", err)
	}

	return expectOne(result, "pdf", id)
}

// MoveToFolder sets folder_id on every matching row
func (r *SQLitePDFRepository) MoveToFolder(ctx context.Context, ids []int64, folderID *int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	stmt := fmt.Sprintf(`UPDATE %s SET folder_id = ? WHERE id IN (%s)`, r.tables.PDFs, sqlite.Placeholders(len(ids)))
	args := append([]interface{}{folderID}, idArgs(ids)...)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, args...)
	if err != nil {
		if sqlite.IsForeignKeyError(err) {
			return 0, fmt.Errorf("folder %d: %w", derefID(folderID), domain.ErrNotFound)
		}
		return 0, fmt.Errorf("move pdfs: %w", err)
	}

	return rowsAffected(result)
}

// ClearFolder makes every PDF in the folder unfiled
func (r *SQLitePDFRepository) ClearFolder(ctx context.Context, folderID int64) (int, error) {
	stmt := fmt.Sprintf(`UPDATE %s SET folder_id = NULL WHERE folder_id = ?`, r.tables.PDFs)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, folderID)
	if err != nil {
		return 0, fmt.Errorf("clear folder: %w", err)
	}

	return rowsAffected(result)
}

// Delete removes a single row
func (r *SQLitePDFRepository) Delete(ctx context.Context, id int64) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.PDFs)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete pdf: %w", err)
	}

	return expectOne(result, "pdf", id)
}

// DeleteByIDs removes every matching row
func (r *SQLitePDFRepository) DeleteByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	stmt := fmt.Sprintf(`DELETE FROM %s WHERE id IN (%s)`, r.tables.PDFs, sqlite.Placeholders(len(ids)))

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, idArgs(ids)...)
	if err != nil {
		return 0, fmt.Errorf("delete pdfs: %w", err)
	}

	return rowsAffected(result)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPDF(row rowScanner) (*models.PDF, error) {
	var pdf models.PDF
	var tags sql.NullString
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

	pdf.Tags = models.SplitTags(tags.String)
	return &pdf, nil
}

func collectPDFs(rows *sql.Rows) ([]models.PDF, error) {
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

func idArgs(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func rowsAffected(result sql.Result) (int, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
