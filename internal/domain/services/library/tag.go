package library

import (
	"context"

	"pdfshelf/internal/domain/models/library"
)

// TagService manages the tag catalog
type TagService interface {
	ListTags(ctx context.Context) ([]library.Tag, error)

	// CreateTag errors with a conflict when the name exists
	CreateTag(ctx context.Context, req *CreateTagRequest) (*library.Tag, error)

	DeleteTag(ctx context.Context, id int64) error

	// ExtractTags is stateless: it suggests tags for arbitrary text and filename
	ExtractTags(ctx context.Context, req *ExtractTagsRequest) ([]string, error)
}

// CreateTagRequest represents a catalog tag creation request
type CreateTagRequest struct {
	Name string `json:"name"`
}

// TagExtractor derives candidate tags from document text, falling back to the filename
type TagExtractor interface {
	// Extract returns at most maxTags tags; maxTags <= 0 uses the configured default.
	// Never returns nil.
	Extract(text, filename string, maxTags int) []string
}

// ExtractTagsRequest is the stateless extraction request
type ExtractTagsRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	MaxTags  int    `json:"max_tags"`
}
