package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pdfshelf/internal/config"
	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	"pdfshelf/internal/domain/repositories"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/storage"
)

const pdfExtension = ".pdf"

type pdfService struct {
	pdfRepo    libraryRepo.PDFRepository
	folderRepo libraryRepo.FolderRepository
	tagRepo    libraryRepo.TagRepository
	txManager  repositories.TransactionManager
	store      storage.ByteStore
	resolver   librarySvc.PathResolver
	extractor  librarySvc.TagExtractor
	logger     *slog.Logger
	now        func() time.Time
}

// NewPDFService creates a new PDF service
func NewPDFService(
	pdfRepo libraryRepo.PDFRepository,
	folderRepo libraryRepo.FolderRepository,
	tagRepo libraryRepo.TagRepository,
	txManager repositories.TransactionManager,
	store storage.ByteStore,
	resolver librarySvc.PathResolver,
	extractor librarySvc.TagExtractor,
	logger *slog.Logger,
) librarySvc.PDFService {
	return &pdfService{
		pdfRepo:    pdfRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		txManager:  txManager,
		store:      store,
		resolver:   resolver,
		extractor:  extractor,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPDFs lists PDFs matching the folder, search and tag predicates
func (s *pdfService) ListPDFs(ctx context.Context, req *librarySvc.ListPDFsRequest) ([]models.PDF, error) {
	selector, ok := models.ParseFolderSelector(req.FolderID)
	if !ok {
		s.logger.Debug("ignoring malformed folder selector", "folder_id", req.FolderID)
	}

	pdfs, err := s.pdfRepo.List(ctx, models.ListFilter{
		Folder: selector,
		Search: req.Search,
		Tag:    req.Tag,
	})
	if err != nil {
		return nil, err
	}

	for i := range pdfs {
		s.attachSize(&pdfs[i])
	}

	return pdfs, nil
}

// GetPDF retrieves a PDF with its derived size
func (s *pdfService) GetPDF(ctx context.Context, id int64) (*models.PDF, error) {
	pdf, err := s.pdfRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachSize(pdf)
	return pdf, nil
}

// UploadPDF writes the bytes first, then the metadata row. A metadata failure
// removes the written file before the error is returned.
func (s *pdfService) UploadPDF(ctx context.Context, req *librarySvc.UploadPDFRequest) (*models.PDF, error) {
	req.Filename = strings.TrimSpace(filepath.Base(strings.ReplaceAll(req.Filename, "\\", "/")))
	tags := models.NormalizeTags(strings.Split(req.Tags, ","))

	if err := validateUpload(req, tags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder
	if req.FolderID != nil {
		f, err := s.folderRepo.GetByID(ctx, *req.FolderID)
		if err != nil {
			return nil, err
		}
		folder = f
	}

	ref := NewStorageRef(req.Filename, s.now())
	path := s.resolver.StoragePath(ref)
	if path == "" {
		return nil, fmt.Errorf("%w: invalid filename %q", domain.ErrValidation, req.Filename)
	}

	size, err := s.store.Write(ctx, path, req.Content)
	if err != nil {
		s.logger.Error("upload write failed", "path", path, "bytes", size, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}

	pdf := &models.PDF{
		Filename: req.Filename,
		Path:     ref,
		FolderID: req.FolderID,
		Tags:     tags,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.pdfRepo.Create(txCtx, pdf); err != nil {
			return err
		}
		return s.tagRepo.EnsureExists(txCtx, tags)
	})
	if err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Warn("failed to remove orphaned upload", "path", path, "error", rmErr)
		}
		return nil, err
	}

	pdf.Size = &size
	if folder != nil {
		pdf.FolderName = &folder.Name
	}

	s.logger.Info("pdf uploaded",
		"id", pdf.ID,
		"filename", pdf.Filename,
		"path", pdf.Path,
		"bytes", size,
		"folder_id", pdf.FolderID,
	)

	return pdf, nil
}

// SetPDFTags replaces a PDF's tags; new names are written through to the catalog
func (s *pdfService) SetPDFTags(ctx context.Context, id int64, req *librarySvc.SetTagsRequest) (*models.PDF, error) {
	tags := models.NormalizeTags(req.Tags)
	if err := validateTagNames(tags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.pdfRepo.UpdateTags(txCtx, id, tags); err != nil {
			return err
		}
		return s.tagRepo.EnsureExists(txCtx, tags)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("pdf tags updated", "id", id, "tags", tags)
	return s.GetPDF(ctx, id)
}

// RenamePDF changes the display filename, appending .pdf when missing
func (s *pdfService) RenamePDF(ctx context.Context, id int64, req *librarySvc.RenamePDFRequest) (*models.PDF, error) {
	name := strings.TrimSpace(req.Filename)
	if name != "" && !hasPDFExtension(name) {
		name += pdfExtension
	}

	err := validation.Validate(name,
		validation.Required.Error("filename is required"),
		validation.RuneLength(1, config.MaxFilenameLength),
		validation.By(noPathSeparators),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.pdfRepo.UpdateFilename(ctx, id, name); err != nil {
		return nil, err
	}

	s.logger.Info("pdf renamed", "id", id, "filename", name)
	return s.GetPDF(ctx, id)
}

// DeletePDF removes the file best-effort, then the row. A file failure is reported
// in the result but never keeps the row.
func (s *pdfService) DeletePDF(ctx context.Context, id int64) (*models.DeleteResult, error) {
	pdf, err := s.pdfRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &models.DeleteResult{ID: id}
	path, outcome, err := removeFile(s.resolver, s.store, pdf)
	switch outcome {
	case fileRemoved:
		result.FileDeleted = true
	case fileMissing:
		s.logger.Warn("pdf file already missing", "id", id, "path", pdf.Path)
	case fileFailed:
		result.FileError = err.Error()
		s.logger.Error("failed to delete pdf file", "id", id, "path", path, "error", err)
	}

	if err := s.pdfRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	result.RecordDeleted = true

	s.logger.Info("pdf deleted", "id", id, "file_deleted", result.FileDeleted)
	return result, nil
}

// UnfiledCount counts PDFs without a folder
func (s *pdfService) UnfiledCount(ctx context.Context) (int, error) {
	return s.pdfRepo.Count(ctx, models.ListFilter{Folder: models.Unfiled()})
}

// OpenPDF opens the resolved file. The caller closes the reader.
func (s *pdfService) OpenPDF(ctx context.Context, id int64) (*models.PDF, io.ReadSeekCloser, error) {
	pdf, err := s.pdfRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	path, err := s.resolver.Resolve(pdf)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.store.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("pdf %d: %w", id, domain.ErrFileMissing)
		}
		return nil, nil, fmt.Errorf("open pdf %d: %w", id, err)
	}

	if info, err := s.store.Stat(path); err == nil {
		size := info.Size()
		pdf.Size = &size
	}

	return pdf, f, nil
}

// SuggestTags runs the heuristic over the supplied text with the PDF's filename as fallback
func (s *pdfService) SuggestTags(ctx context.Context, id int64, req *librarySvc.SuggestTagsRequest) ([]string, error) {
	if err := validateMaxTags(req.MaxTags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pdf, err := s.pdfRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.extractor.Extract(req.Text, pdf.Filename, req.MaxTags), nil
}

// attachSize sets Size from the resolved file, leaving it nil when the file is missing
func (s *pdfService) attachSize(pdf *models.PDF) {
	path, err := s.resolver.Resolve(pdf)
	if err != nil {
		return
	}
	info, err := s.store.Stat(path)
	if err != nil {
		return
	}
	size := info.Size()
	pdf.Size = &size
}

func validateUpload(req *librarySvc.UploadPDFRequest, tags []string) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Filename,
			validation.Required.Error("filename is required"),
			validation.RuneLength(1, config.MaxFilenameLength),
			validation.By(requirePDFExtension),
		),
		validation.Field(&req.Content, validation.NotNil.Error("file is required")),
	)
	if err != nil {
		return err
	}
	return validateTagNames(tags)
}

func validateTagNames(tags []string) error {
	for _, tag := range tags {
		if err := validation.Validate(tag, validation.RuneLength(1, config.MaxTagNameLength)); err != nil {
			return fmt.Errorf("tag %q: %v", tag, err)
		}
	}
	return nil
}

func validateMaxTags(n int) error {
	return validation.Validate(n, validation.Min(0), validation.Max(config.MaxTagsLimit))
}

func requirePDFExtension(value interface{}) error {
	name, _ := value.(string)
	if !hasPDFExtension(name) {
		return errors.New("only PDF files are allowed")
	}
	return nil
}

func noPathSeparators(value interface{}) error {
	name, _ := value.(string)
	if strings.ContainsAny(name, `/\`) {
		return errors.New("filename cannot contain path separators")
	}
	return nil
}

func hasPDFExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pdfExtension)
}
