package library

import (
	"pdfshelf/internal/domain/models/library"
)

// PathResolver maps a PDF's storage reference to the physical file.
// It is the only place that knows about storage path conventions.
type PathResolver interface {
	// Resolve returns the first candidate that exists as a regular file,
	// or domain.ErrFileMissing when none does
	Resolve(pdf *library.PDF) (string, error)

	// Candidates lists every location checked, in priority order
	Candidates(pdf *library.PDF) []string

	// StoragePath returns the absolute location for a new canonical reference
	StoragePath(ref string) string
}
