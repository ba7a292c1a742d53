package library

import (
	"context"

	"pdfshelf/internal/domain/models/library"
)

// BulkService applies one mutation to many PDFs with independent per-item outcomes
type BulkService interface {
	// MoveToFolder moves PDFs to a folder (nil = unfiled) in one transaction.
	// Unknown ids are ignored.
	MoveToFolder(ctx context.Context, req *BulkMoveRequest) (*library.MoveResult, error)

	// Delete removes files best-effort, then all matching rows in one transaction
	Delete(ctx context.Context, req *BulkDeleteRequest) (*library.BulkDeleteResult, error)
}

// BulkMoveRequest represents a bulk move
type BulkMoveRequest struct {
	PDFIDs   []int64 `json:"pdf_ids"`
	FolderID *int64  `json:"folder_id"`
}

// BulkDeleteRequest represents a bulk delete
type BulkDeleteRequest struct {
	PDFIDs []int64 `json:"pdf_ids"`
}
