package library

import (
	"context"
	"errors"
	"log/slog"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/storage"
)

// Auditor checks every metadata row against the byte store. It only reads.
type Auditor struct {
	pdfRepo  libraryRepo.PDFRepository
	resolver librarySvc.PathResolver
	store    storage.ByteStore
	logger   *slog.Logger
}

// NewAuditor creates a storage auditor
func NewAuditor(pdfRepo libraryRepo.PDFRepository, resolver librarySvc.PathResolver, store storage.ByteStore, logger *slog.Logger) *Auditor {
	return &Auditor{
		pdfRepo:  pdfRepo,
		resolver: resolver,
		store:    store,
		logger:   logger,
	}
}

// Run resolves every PDF, oldest first
func (a *Auditor) Run(ctx context.Context) (*models.AuditReport, error) {
	pdfs, err := a.pdfRepo.List(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}

	report := &models.AuditReport{Entries: make([]models.AuditEntry, 0, len(pdfs))}
	for i := len(pdfs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pdf := &pdfs[i]
		entry := models.AuditEntry{ID: pdf.ID, Filename: pdf.Filename, Path: pdf.Path}

		path, err := a.resolver.Resolve(pdf)
		switch {
		case err == nil:
			info, statErr := a.store.Stat(path)
			if statErr != nil {
				a.logger.Warn("audit: resolved file vanished", "id", pdf.ID, "path", path, "error", statErr)
				break
			}
			size := info.Size()
			entry.ResolvedPath = path
			entry.Size = &size
		case errors.Is(err, domain.ErrFileMissing):
		default:
			return nil, err
		}

		if entry.Missing() {
			report.Missing++
			a.logger.Warn("audit: file missing", "id", pdf.ID, "filename", pdf.Filename, "path", pdf.Path)
		} else {
			report.Found++
			report.TotalBytes += *entry.Size
		}
		report.Entries = append(report.Entries, entry)
	}

	a.logger.Info("audit complete", "found", report.Found, "missing", report.Missing, "bytes", report.TotalBytes)
	return report, nil
}
