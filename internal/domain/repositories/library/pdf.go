package library

import (
	"context"

	"pdfshelf/internal/domain/models/library"
)

// PDFRepository defines data access operations for PDF metadata rows.
// Rows never carry Size; that is derived by the service from the resolved file.
type PDFRepository interface {
	// Create inserts a new PDF row and sets ID and CreatedAt
	Create(ctx context.Context, pdf *library.PDF) error

	// GetByID retrieves a PDF with its folder name joined
	GetByID(ctx context.Context, id int64) (*library.PDF, error)

	// ListByIDs retrieves the PDFs matching ids; unknown ids are skipped
	ListByIDs(ctx context.Context, ids []int64) ([]library.PDF, error)

	// List returns PDFs matching the filter, newest first, ties by id ascending
	List(ctx context.Context, filter library.ListFilter) ([]library.PDF, error)

	// Count returns the cardinality of the filter
	Count(ctx context.Context, filter library.ListFilter) (int, error)

	// UpdateTags replaces the stored tag blob
	UpdateTags(ctx context.Context, id int64, tags []string) error

	// UpdateFilename changes the display filename
	UpdateFilename(ctx context.Context, id int64, filename string) error

	// MoveToFolder sets the folder reference of every matching row and returns the
	// number of rows updated. folderID nil = unfiled.
	MoveToFolder(ctx context.Context, ids []int64, folderID *int64) (int, error)

	// ClearFolder sets folder reference to NULL for every PDF in the folder
	ClearFolder(ctx context.Context, folderID int64) (int, error)

	// Delete removes a single row
	Delete(ctx context.Context, id int64) error

	// DeleteByIDs removes every matching row and returns the number removed
	DeleteByIDs(ctx context.Context, ids []int64) (int, error)
}
