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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *query.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) libraryRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		RETURNING id, created_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, folder.Name).Scan(&folder.ID, &folder.CreatedAt)
	if err != nil {
		if postgres.IsDuplicateError(err) {
			return r.conflict(ctx, folder.Name)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	var folder models.Folder
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&folder.ID, &folder.Name, &folder.CreatedAt)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetByName retrieves a folder by exact name
func (r *PostgresFolderRepository) GetByName(ctx context.Context, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE name = $1
	`, r.tables.Folders)

	var folder models.Folder
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, name).Scan(&folder.ID, &folder.Name, &folder.CreatedAt)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("folder '%s': %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder by name: %w", err)
	}

	return &folder, nil
}

// List retrieves all folders ordered by name
func (r *PostgresFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		ORDER BY name ASC, id ASC
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
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
func (r *PostgresFolderRepository) Rename(ctx context.Context, id int64, name string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1
		WHERE id = $2
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, name, id)
	if err != nil {
		if postgres.IsDuplicateError(err) {
			return r.conflict(ctx, name)
		}
		return fmt.Errorf("rename folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// conflict builds a structured conflict error, looking up the existing folder's ID
func (r *PostgresFolderRepository) conflict(ctx context.Context, name string) error {
	conflictErr := &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
	}
	// Inside a failed transaction this lookup errors; the ID is optional
	if existing, err := r.GetByName(ctx, name); err == nil {
		conflictErr.ResourceID = existing.ID
	}
	return conflictErr
}
