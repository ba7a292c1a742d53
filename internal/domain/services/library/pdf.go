package library

import (
	"context"
	"io"

	"pdfshelf/internal/domain/models/library"
)

// PDFService handles single-document operations
type PDFService interface {
	// ListPDFs applies folder, search and tag predicates (in that order) and
	// returns matches newest first with folder name and derived size
	ListPDFs(ctx context.Context, req *ListPDFsRequest) ([]library.PDF, error)

	// GetPDF retrieves a PDF with folder name and derived size
	GetPDF(ctx context.Context, id int64) (*library.PDF, error)

	// UploadPDF streams the bytes to storage then creates the metadata row.
	// Metadata is never created without its bytes.
	UploadPDF(ctx context.Context, req *UploadPDFRequest) (*library.PDF, error)

	// SetPDFTags replaces a PDF's tags and creates missing catalog tags
	SetPDFTags(ctx context.Context, id int64, req *SetTagsRequest) (*library.PDF, error)

	// RenamePDF changes the display filename
	RenamePDF(ctx context.Context, id int64, req *RenamePDFRequest) (*library.PDF, error)

	// DeletePDF removes the file (best effort) and the metadata row
	DeletePDF(ctx context.Context, id int64) (*library.DeleteResult, error)

	// UnfiledCount counts PDFs without a folder
	UnfiledCount(ctx context.Context) (int, error)

	// OpenPDF opens the physical file for viewing or download.
	// Returns domain.ErrNotFound without a row and domain.ErrFileMissing without a file.
	OpenPDF(ctx context.Context, id int64) (*library.PDF, io.ReadSeekCloser, error)

	// SuggestTags runs the tag heuristic over text, falling back to the PDF's filename
	SuggestTags(ctx context.Context, id int64, req *SuggestTagsRequest) ([]string, error)
}

// ListPDFsRequest carries the raw listing parameters.
// FolderID is the raw query value: "" (any), "-1" (unfiled) or a numeric id.
type ListPDFsRequest struct {
	FolderID string
	Search   string
	Tag      string
}

// UploadPDFRequest represents an upload. Content is read in fixed-size chunks.
type UploadPDFRequest struct {
	Filename string
	Content  io.Reader
	Tags     string // Comma-separated, as sent by the upload form
	FolderID *int64
}

// SetTagsRequest represents a tag replacement request
type SetTagsRequest struct {
	Tags []string `json:"tags"`
}

// RenamePDFRequest represents a filename change
type RenamePDFRequest struct {
	Filename string `json:"filename"`
}

// SuggestTagsRequest carries optional extracted text for tag suggestion
type SuggestTagsRequest struct {
	Text    string `json:"text"`
	MaxTags int    `json:"max_tags"`
}
