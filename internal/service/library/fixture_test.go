package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	models "pdfshelf/internal/domain/models/library"
	libraryRepo "pdfshelf/internal/domain/repositories/library"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/repository/query"
	"pdfshelf/internal/repository/sqlite"
	sqliteLibrary "pdfshelf/internal/repository/sqlite/library"
	"pdfshelf/internal/storage"
	"pdfshelf/internal/vocabulary"
)

// fixture wires the real services to an in-memory SQLite store and a temp upload root
type fixture struct {
	ctx      context.Context
	root     string
	store    *faultyStore
	resolver librarySvc.PathResolver

	folderRepo libraryRepo.FolderRepository
	pdfRepo    libraryRepo.PDFRepository
	tagRepo    *faultyTagRepo

	folders librarySvc.FolderService
	pdfs    librarySvc.PDFService
	bulk    librarySvc.BulkService
	tags    librarySvc.TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tables := query.NewTableNames("test_")

	db, err := sqlite.Open(ctx, sqlite.MemoryPath, tables)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repoConfig := &sqlite.RepositoryConfig{DB: db, Tables: tables, Logger: logger}
	folderRepo := sqliteLibrary.NewFolderRepository(repoConfig)
	pdfRepo := sqliteLibrary.NewPDFRepository(repoConfig)
	tagRepo := &faultyTagRepo{TagRepository: sqliteLibrary.NewTagRepository(repoConfig)}
	txManager := sqlite.NewTransactionManager(db, logger)

	root := t.TempDir()
	store := &faultyStore{ByteStore: storage.NewDiskStore(64)}
	resolver := NewPathResolver(root, nil, store)
	extractor := NewTagExtractor(vocabulary.MustNewRegistry(), 5)

	pdfs := NewPDFService(pdfRepo, folderRepo, tagRepo, txManager, store, resolver, extractor, logger)

	// Distinct timestamps keep generated storage names unique across uploads
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pdfs.(*pdfService).now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return &fixture{
		ctx:        ctx,
		root:       root,
		store:      store,
		resolver:   resolver,
		folderRepo: folderRepo,
		pdfRepo:    pdfRepo,
		tagRepo:    tagRepo,
		folders:    NewFolderService(folderRepo, pdfRepo, txManager, logger),
		pdfs:       pdfs,
		bulk:       NewBulkService(pdfRepo, folderRepo, txManager, store, resolver, logger),
		tags:       NewTagService(tagRepo, extractor, logger),
	}
}

func (f *fixture) folder(t *testing.T, name string) int64 {
	t.Helper()
	folder, err := f.folders.CreateFolder(f.ctx, &librarySvc.CreateFolderRequest{Name: name})
	if err != nil {
		t.Fatalf("CreateFolder(%q) error = %v", name, err)
	}
	return folder.ID
}

func (f *fixture) upload(t *testing.T, filename string, folderID *int64, tags string) *models.PDF {
	t.Helper()
	pdf, err := f.pdfs.UploadPDF(f.ctx, &librarySvc.UploadPDFRequest{
		Filename: filename,
		Content:  strings.NewReader("%PDF-1.4 " + filename),
		Tags:     tags,
		FolderID: folderID,
	})
	if err != nil {
		t.Fatalf("UploadPDF(%q) error = %v", filename, err)
	}
	return pdf
}

// removeBytes deletes a PDF's file behind the service's back
func (f *fixture) removeBytes(t *testing.T, pdf *models.PDF) {
	t.Helper()
	if err := os.Remove(f.resolver.StoragePath(pdf.Path)); err != nil {
		t.Fatalf("remove %s: %v", pdf.Path, err)
	}
}

func (f *fixture) filesOnDisk(t *testing.T) []string {
	t.Helper()
	var names []string
	err := filepath.WalkDir(f.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(f.root, path)
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk upload root: %v", err)
	}
	return names
}

func ptr[T any](v T) *T {
	return &v
}

// faultyStore wraps a real store and can fail writes or removals on demand
type faultyStore struct {
	storage.ByteStore
	writeErr   error
	removeErrs map[string]error
}

func (s *faultyStore) Write(ctx context.Context, path string, r io.Reader) (int64, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	return s.ByteStore.Write(ctx, path, r)
}

func (s *faultyStore) Remove(path string) error {
	if err, ok := s.removeErrs[path]; ok {
		return err
	}
	return s.ByteStore.Remove(path)
}

// faultyTagRepo wraps a real repository and can fail catalog write-through
type faultyTagRepo struct {
	libraryRepo.TagRepository
	ensureErr error
}

func (r *faultyTagRepo) EnsureExists(ctx context.Context, names []string) error {
	if r.ensureErr != nil {
		return r.ensureErr
	}
	return r.TagRepository.EnsureExists(ctx, names)
}

var errInjected = errors.New("injected failure")
