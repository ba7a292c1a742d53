package library

import (
	"context"

	"pdfshelf/internal/domain/models/library"
)

// TagRepository defines data access operations for catalog tags
type TagRepository interface {
	// Create creates a catalog tag. An existing name returns *domain.ConflictError.
	Create(ctx context.Context, tag *library.Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id int64) (*library.Tag, error)

	// List retrieves all catalog tags ordered by name
	List(ctx context.Context) ([]library.Tag, error)

	// Delete removes a catalog tag; PDFs keep their embedded tags
	Delete(ctx context.Context, id int64) error

	// EnsureExists creates any missing names and silently skips existing ones
	EnsureExists(ctx context.Context, names []string) error
}
