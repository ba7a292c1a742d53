package library

import (
	"context"

	"pdfshelf/internal/domain/models/library"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder. A unique violation returns *domain.ConflictError.
	Create(ctx context.Context, folder *library.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id int64) (*library.Folder, error)

	// GetByName retrieves a folder by exact (case-sensitive) name
	GetByName(ctx context.Context, name string) (*library.Folder, error)

	// List retrieves all folders ordered by name
	List(ctx context.Context) ([]library.Folder, error)

	// Rename updates a folder's name. A unique violation returns *domain.ConflictError.
	Rename(ctx context.Context, id int64, name string) error

	// Delete removes the folder row only; callers reassign PDFs first
	Delete(ctx context.Context, id int64) error
}
