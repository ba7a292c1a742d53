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

// SQLiteFolderRepository implements the FolderRepository interface
type SQLiteFolderRepository struct {
	db     *sql.DB
	tables *query.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *sqlite.RepositoryConfig) libraryRepo.FolderRepository {
	return &SQLiteFolderRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// Create creates a new folder
func (r *SQLiteFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now().UTC()
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (name, created_at) VALUES (?, ?)`, r.tables.Folders)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, folder.Name, folder.CreatedAt)
	if err != nil {
		if sqlite.IsDuplicateError(err) {
			return r.conflict(ctx, folder.Name)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	folder.ID = id

	return nil
}

// GetByID retrieves a folder by ID
func (r *SQLiteFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	stmt := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = ?`, r.tables.Folders)

	var folder models.Folder
	executor := sqlite.GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, stmt, id).Scan(&folder.ID, &folder.Name, &folder.CreatedAt)
	if err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetByName retrieves a folder by exact name
func (r *SQLiteFolderRepository) GetByName(ctx context.Context, name string) (*models.Folder, error) {
	stmt := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE name = ?`, r.tables.Folders)

	var folder models.Folder
	executor := sqlite.GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, stmt, name).Scan(&folder.ID, &folder.Name, &folder.CreatedAt)
	if err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("folder '%s': %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder by name: %w", err)
	}

	return &folder, nil
}

// List retrieves all folders ordered by name
func (r *SQLiteFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	stmt := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name ASC, id ASC`, r.tables.Folders)

	executor := sqlite.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Rename updates a folder's name
func (r *SQLiteFolderRepository) Rename(ctx context.Context, id int64, name string) error {
	stmt := fmt.Sprintf(`UPDATE %s SET name = ? WHERE id = ?`, r.tables.Folders)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, name, id)
	if err != nil {
		if sqlite.IsDuplicateError(err) {
			return r.conflict(ctx, name)
		}
		return fmt.Errorf("rename folder: %w", err)
	}

	return expectOne(result, "folder", id)
}

// Delete deletes a folder row
func (r *SQLiteFolderRepository) Delete(ctx context.Context, id int64) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Folders)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	return expectOne(result, "folder", id)
}

func (r *SQLiteFolderRepository) conflict(ctx context.Context, name string) error {
	conflictErr := &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
	}
	if existing, err := r.GetByName(ctx, name); err == nil {
		conflictErr.ResourceID = existing.ID
	}
	return conflictErr
}

// expectOne maps zero affected rows to ErrNotFound
func expectOne(result sql.Result, kind string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
