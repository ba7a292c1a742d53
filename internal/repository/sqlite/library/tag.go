package library

import (
	"context"
	"database/sql"
	"fmt"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	"pdfshelf/internal/repository/query"
	"pdfshelf/internal/repository/sqlite"
)

// SQLiteTagRepository implements the TagRepository interface
type SQLiteTagRepository struct {
	db     *sql.DB
	tables *query.TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *sqlite.RepositoryConfig) libraryRepo.TagRepository {
	return &SQLiteTagRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// Create creates a catalog tag
func (r *SQLiteTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, r.tables.Tags)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, tag.Name)
	if err != nil {
		if sqlite.IsDuplicateError(err) {
			conflictErr := &domain.ConflictError{
				Message:      fmt.Sprintf("tag '%s' already exists", tag.Name),
				ResourceType: "tag",
			}
			lookup := fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, r.tables.Tags)
			var id int64
			if executor.QueryRowContext(ctx, lookup, tag.Name).Scan(&id) == nil {
				conflictErr.ResourceID = id
			}
			return conflictErr
		}
		return fmt.Errorf("create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	tag.ID = id

	return nil
}

// GetByID retrieves a tag by ID
func (r *SQLiteTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	stmt := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = ?`, r.tables.Tags)

	var tag models.Tag
	executor := sqlite.GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, stmt, id).Scan(&tag.ID, &tag.Name); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("tag %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// List retrieves all catalog tags ordered by name
func (r *SQLiteTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	stmt := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name ASC`, r.tables.Tags)

	executor := sqlite.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// Delete removes a catalog tag
func (r *SQLiteTagRepository) Delete(ctx context.Context, id int64) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Tags)

	executor := sqlite.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	return expectOne(result, "tag", id)
}

// EnsureExists inserts any names not yet in the catalog
func (r *SQLiteTagRepository) EnsureExists(ctx context.Context, names []string) error {
	names = models.NormalizeTags(names)
	if len(names) == 0 {
		return nil
	}

	stmt := fmt.Sprintf(`INSERT OR IGNORE INTO %s (name) VALUES (?)`, r.tables.Tags)

	executor := sqlite.GetExecutor(ctx, r.db)
	for _, name := range names {
		if _, err := executor.ExecContext(ctx, stmt, name); err != nil {
			return fmt.Errorf("ensure tag '%s': %w", name, err)
		}
	}

	return nil
}
