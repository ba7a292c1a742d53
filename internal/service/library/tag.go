package library

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pdfshelf/internal/config"
	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	librarySvc "pdfshelf/internal/domain/services/library"
)

type tagService struct {
	tagRepo   libraryRepo.TagRepository
	extractor librarySvc.TagExtractor
	logger    *slog.Logger
}

// NewTagService creates a new tag catalog service
func NewTagService(tagRepo libraryRepo.TagRepository, extractor librarySvc.TagExtractor, logger *slog.Logger) librarySvc.TagService {
	return &tagService{tagRepo: tagRepo, extractor: extractor, logger: logger}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// CreateTag creates a catalog tag. An existing name is a conflict, not a no-op.
func (s *tagService) CreateTag(ctx context.Context, req *librarySvc.CreateTagRequest) (*models.Tag, error) {
	name := models.NormalizeTag(req.Name)

	err := validation.Validate(name,
		validation.Required.Error("tag name is required"),
		validation.RuneLength(1, config.MaxTagNameLength),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id int64) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tag deleted", "id", id)
	return nil
}

// ExtractTags runs the heuristic without touching any record
func (s *tagService) ExtractTags(ctx context.Context, req *librarySvc.ExtractTagsRequest) ([]string, error) {
	if err := validateMaxTags(req.MaxTags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.extractor.Extract(req.Text, req.Filename, req.MaxTags), nil
}
