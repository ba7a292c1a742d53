package library

import (
	"errors"
	"io/fs"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/storage"
)

type fileOutcome int

const (
	fileRemoved fileOutcome = iota
	fileMissing
	fileFailed
)

// removeFile resolves and removes a PDF's bytes. It never touches metadata.
// The returned path is empty when nothing could be resolved.
func removeFile(resolver librarySvc.PathResolver, store storage.ByteStore, pdf *models.PDF) (string, fileOutcome, error) {
	path, err := resolver.Resolve(pdf)
	if err != nil {
		if errors.Is(err, domain.ErrFileMissing) {
			return "", fileMissing, nil
		}
		return "", fileFailed, err
	}

	if err := store.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, fileMissing, nil
		}
		return path, fileFailed, err
	}
	return path, fileRemoved, nil
}
