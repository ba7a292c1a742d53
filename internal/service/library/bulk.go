package library

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pdfshelf/internal/config"
	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	"pdfshelf/internal/domain/repositories"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/storage"
)

type bulkService struct {
	pdfRepo    libraryRepo.PDFRepository
	folderRepo libraryRepo.FolderRepository
	txManager  repositories.TransactionManager
	store      storage.ByteStore
	resolver   librarySvc.PathResolver
	logger     *slog.Logger
}

// NewBulkService creates the bulk move/delete service
func NewBulkService(
	pdfRepo libraryRepo.PDFRepository,
	folderRepo libraryRepo.FolderRepository,
	txManager repositories.TransactionManager,
	store storage.ByteStore,
	resolver librarySvc.PathResolver,
	logger *slog.Logger,
) librarySvc.BulkService {
	return &bulkService{
		pdfRepo:    pdfRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		store:      store,
		resolver:   resolver,
		logger:     logger,
	}
}

// MoveToFolder moves every matching PDF in one transaction.
// Requested echoes the ids sent; Matched is what the store actually updated.
func (s *bulkService) MoveToFolder(ctx context.Context, req *librarySvc.BulkMoveRequest) (*models.MoveResult, error) {
	if err := validateIDs(&req.PDFIDs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID); err != nil {
			return nil, err
		}
	}

	ids := uniqueIDs(req.PDFIDs)
	var matched int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.pdfRepo.MoveToFolder(txCtx, ids, req.FolderID)
		matched = n
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk move",
		"requested", len(req.PDFIDs),
		"matched", matched,
		"folder_id", req.FolderID,
	)

	return &models.MoveResult{
		Requested: len(req.PDFIDs),
		Matched:   matched,
		FolderID:  req.FolderID,
	}, nil
}

// Delete removes each matching PDF's file independently, then every matching row
// in one transaction. File failures are recorded and never keep a row alive.
func (s *bulkService) Delete(ctx context.Context, req *librarySvc.BulkDeleteRequest) (*models.BulkDeleteResult, error) {
	if err := validateIDs(&req.PDFIDs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	ids := uniqueIDs(req.PDFIDs)
	pdfs, err := s.pdfRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &models.BulkDeleteResult{Requested: len(req.PDFIDs)}
	for i := range pdfs {
		pdf := &pdfs[i]
		path, outcome, err := removeFile(s.resolver, s.store, pdf)
		switch outcome {
		case fileRemoved:
			result.FilesDeleted++
		case fileMissing:
			result.FilesMissing++
			s.logger.Warn("bulk delete: file already missing", "id", pdf.ID, "path", pdf.Path)
		case fileFailed:
			result.FilesFailed++
			result.Failures = append(result.Failures, models.FileFailure{
				PDFID: pdf.ID,
				Path:  path,
				Error: err.Error(),
			})
			s.logger.Error("bulk delete: file removal failed", "id", pdf.ID, "path", path, "error", err)
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.pdfRepo.DeleteByIDs(txCtx, ids)
		result.Matched = n
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk delete",
		"requested", result.Requested,
		"matched", result.Matched,
		"files_deleted", result.FilesDeleted,
		"files_failed", result.FilesFailed,
		"files_missing", result.FilesMissing,
	)

	return result, nil
}

func validateIDs(ids *[]int64) error {
	return validation.Validate(ids,
		validation.Required.Error("pdf_ids is required"),
		validation.Length(1, config.MaxBulkIDs),
	)
}

// uniqueIDs drops duplicates, keeping first-occurrence order
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
