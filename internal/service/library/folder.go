package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pdfshelf/internal/config"
	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	"pdfshelf/internal/domain/repositories"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	librarySvc "pdfshelf/internal/domain/services/library"
)

type folderService struct {
	folderRepo libraryRepo.FolderRepository
	pdfRepo    libraryRepo.PDFRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo libraryRepo.FolderRepository,
	pdfRepo libraryRepo.PDFRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) librarySvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		pdfRepo:    pdfRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// ListFolders returns every folder with a freshly computed PDF count
func (s *folderService) ListFolders(ctx context.Context) (*models.FolderList, error) {
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.FolderList{Folders: make([]models.FolderWithCount, 0, len(folders))}
	for _, folder := range folders {
		count, err := s.pdfRepo.Count(ctx, models.ListFilter{Folder: models.InFolder(folder.ID)})
		if err != nil {
			return nil, err
		}
		result.Folders = append(result.Folders, models.FolderWithCount{Folder: folder, PDFCount: count})
	}

	result.UnfiledCount, err = s.pdfRepo.Count(ctx, models.ListFilter{Folder: models.Unfiled()})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateFolder creates a folder with a unique name
func (s *folderService) CreateFolder(ctx context.Context, req *librarySvc.CreateFolderRequest) (*models.FolderWithCount, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateFolderName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The unique index still guards concurrent creates
	if existing, err := s.folderRepo.GetByName(ctx, req.Name); err == nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("folder '%s' already exists", req.Name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	folder := &models.Folder{Name: req.Name}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name)

	return &models.FolderWithCount{Folder: *folder}, nil
}

// GetFolder retrieves a folder with its PDF count
func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.FolderWithCount, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCount(ctx, folder)
}

// RenameFolder renames a folder. Renaming to its current name is a no-op.
func (s *folderService) RenameFolder(ctx context.Context, id int64, req *librarySvc.RenameFolderRequest) (*models.FolderWithCount, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateFolderName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder.Name == req.Name {
		return s.withCount(ctx, folder)
	}

	if existing, err := s.folderRepo.GetByName(ctx, req.Name); err == nil && existing.ID != id {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("folder '%s' already exists", req.Name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := s.folderRepo.Rename(ctx, id, req.Name); err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", id, "from", folder.Name, "to", req.Name)

	folder.Name = req.Name
	return s.withCount(ctx, folder)
}

// DeleteFolder reassigns the folder's PDFs to unfiled and removes the folder atomically
func (s *folderService) DeleteFolder(ctx context.Context, id int64) error {
	var unfiled int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.folderRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		n, err := s.pdfRepo.ClearFolder(txCtx, id)
		if err != nil {
			return err
		}
		unfiled = n

		return s.folderRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "pdfs_unfiled", unfiled)
	return nil
}

func (s *folderService) withCount(ctx context.Context, folder *models.Folder) (*models.FolderWithCount, error) {
	count, err := s.pdfRepo.Count(ctx, models.ListFilter{Folder: models.InFolder(folder.ID)})
	if err != nil {
		return nil, err
	}
	return &models.FolderWithCount{Folder: *folder, PDFCount: count}, nil
}

// validateFolderName validates an already-trimmed folder name
func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, config.MaxFolderNameLength),
	)
}
