package library

import (
	"context"

	"pdfshelf/internal/domain/models/library"
)

// FolderService handles folder business logic
type FolderService interface {
	// ListFolders returns every folder with its PDF count, plus the unfiled count
	ListFolders(ctx context.Context) (*library.FolderList, error)

	// CreateFolder creates a folder; duplicate names return a conflict
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*library.FolderWithCount, error)

	// GetFolder retrieves a folder with its PDF count
	GetFolder(ctx context.Context, id int64) (*library.FolderWithCount, error)

	// RenameFolder renames a folder; a name held by another folder returns a conflict
	RenameFolder(ctx context.Context, id int64, req *RenameFolderRequest) (*library.FolderWithCount, error)

	// DeleteFolder removes the folder and moves its PDFs to unfiled in one transaction
	DeleteFolder(ctx context.Context, id int64) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	Name string `json:"name"`
}
