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

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *query.TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *postgres.RepositoryConfig) libraryRepo.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a catalog tag
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		RETURNING id
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, tag.Name).Scan(&tag.ID)
	if err != nil {
		if postgres.IsDuplicateError(err) {
			conflictErr := &domain.ConflictError{
				Message:      fmt.Sprintf("tag '%s' already exists", tag.Name),
				ResourceType: "tag",
			}
			if id, lookupErr := r.idByName(ctx, tag.Name); lookupErr == nil {
				conflictErr.ResourceID = id
			}
			return conflictErr
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by ID
func (r *PostgresTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, r.tables.Tags)

	var tag models.Tag
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name); err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("tag %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// List retrieves all catalog tags ordered by name
func (r *PostgresTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name ASC`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
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
func (r *PostgresTagRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// EnsureExists inserts any names not yet in the catalog
func (r *PostgresTagRepository) EnsureExists(ctx context.Context, names []string) error {
	names = models.NormalizeTags(names)
	if len(names) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, names); err != nil {
		return fmt.Errorf("ensure tags: %w", err)
	}

	return nil
}

func (r *PostgresTagRepository) idByName(ctx context.Context, name string) (int64, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, r.tables.Tags)

	var id int64
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, name).Scan(&id)
	return id, err
}
