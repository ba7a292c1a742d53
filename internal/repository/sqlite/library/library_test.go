package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	"pdfshelf/internal/repository/query"
	"pdfshelf/internal/repository/sqlite"
)

type testStore struct {
	folders *SQLiteFolderRepository
	pdfs    *SQLitePDFRepository
	tags    *SQLiteTagRepository
	config  *sqlite.RepositoryConfig
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	tables := query.NewTableNames("test_")
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath, tables)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	config := &sqlite.RepositoryConfig{
		DB:     db,
		Tables: tables,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return &testStore{
		folders: NewFolderRepository(config).(*SQLiteFolderRepository),
		pdfs:    NewPDFRepository(config).(*SQLitePDFRepository),
		tags:    NewTagRepository(config).(*SQLiteTagRepository),
		config:  config,
	}
}

func (s *testStore) folder(t *testing.T, name string) *models.Folder {
	t.Helper()
	f := &models.Folder{Name: name}
	if err := s.folders.Create(context.Background(), f); err != nil {
		t.Fatalf("create folder %q: %v", name, err)
	}
	return f
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func (s *testStore) pdf(t *testing.T, filename string, folderID *int64, tags []string, age time.Duration) *models.PDF {
	t.Helper()
	p := &models.PDF{
		Filename:  filename,
		Path:      "20240301120000_" + filename,
		FolderID:  folderID,
		Tags:      tags,
		CreatedAt: base.Add(-age),
	}
	if err := s.pdfs.Create(context.Background(), p); err != nil {
		t.Fatalf("create pdf %q: %v", filename, err)
	}
	return p
}

func ids(pdfs []models.PDF) []int64 {
	out := make([]int64, 0, len(pdfs))
	for _, p := range pdfs {
		out = append(out, p.ID)
	}
	return out
}

func TestFolderRepository_UniqueName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	existing := s.folder(t, "Math")

	err := s.folders.Create(ctx, &models.Folder{Name: "Math"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Create() error = %v, want *ConflictError", err)
	}
	if conflict.ResourceID != existing.ID {
		t.Errorf("ResourceID = %d, want %d", conflict.ResourceID, existing.ID)
	}

	// Names are case-sensitive
	if err := s.folders.Create(ctx, &models.Folder{Name: "math"}); err != nil {
		t.Errorf("Create(math) error = %v", err)
	}

	other := s.folder(t, "Science")
	if err := s.folders.Rename(ctx, other.ID, "Math"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Rename() error = %v, want ErrConflict", err)
	}

	list, err := s.folders.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, f := range list {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"Math", "Science", "math"}, names); diff != "" {
		t.Errorf("List() names mismatch (-want +got):\n%s", diff)
	}
}

func TestFolderRepository_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.folders.GetByID(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if err := s.folders.Rename(ctx, 42, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Rename() error = %v, want ErrNotFound", err)
	}
	if err := s.folders.Delete(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPDFRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := s.folder(t, "Physics")

	created := s.pdf(t, "Lab.pdf", &f.ID, []string{"Lab", " optics ", "lab"}, 0)

	got, err := s.pdfs.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.FolderName == nil || *got.FolderName != "Physics" {
		t.Errorf("FolderName = %v, want Physics", got.FolderName)
	}
	if diff := cmp.Diff([]string{"lab", "optics"}, got.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}

	untagged := s.pdf(t, "Plain.pdf", nil, nil, 0)
	got, err = s.pdfs.GetByID(ctx, untagged.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil", got.Tags)
	}
	if !got.IsUnfiled() || got.FolderName != nil {
		t.Errorf("want unfiled with no folder name, got %v / %v", got.FolderID, got.FolderName)
	}
}

func TestPDFRepository_CreateUnknownFolder(t *testing.T) {
	s := newTestStore(t)
	missing := int64(99)

	err := s.pdfs.Create(context.Background(), &models.PDF{Filename: "a.pdf", Path: "a.pdf", FolderID: &missing})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestPDFRepository_ListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	math := s.folder(t, "Math")
	science := s.folder(t, "Science")

	algebra := s.pdf(t, "Algebra_Quiz.pdf", &math.ID, []string{"quiz", "algebra"}, 1*time.Hour)
	geometry := s.pdf(t, "Geometry.pdf", &math.ID, []string{"worksheet"}, 2*time.Hour)
	lab := s.pdf(t, "Lab_Report.pdf", &science.ID, []string{"quiz"}, 3*time.Hour)
	loose := s.pdf(t, "Loose_Notes.pdf", nil, nil, 4*time.Hour)
	pct := s.pdf(t, "100%_done.pdf", nil, []string{"misc"}, 5*time.Hour)

	tests := []struct {
		name   string
		filter models.ListFilter
		want   []int64
	}{
		{
			name: "no predicates, newest first",
			want: []int64{algebra.ID, geometry.ID, lab.ID, loose.ID, pct.ID},
		},
		{
			name:   "specific folder",
			filter: models.ListFilter{Folder: models.InFolder(math.ID)},
			want:   []int64{algebra.ID, geometry.ID},
		},
		{
			name:   "unfiled",
			filter: models.ListFilter{Folder: models.Unfiled()},
			want:   []int64{loose.ID, pct.ID},
		},
		{
			name:   "search matches filename case-insensitively",
			filter: models.ListFilter{Search: "LAB"},
			want:   []int64{lab.ID},
		},
		{
			name:   "search matches tags",
			filter: models.ListFilter{Search: "quiz"},
			want:   []int64{algebra.ID, lab.ID},
		},
		{
			name:   "folder narrows search",
			filter: models.ListFilter{Folder: models.InFolder(math.ID), Search: "quiz"},
			want:   []int64{algebra.ID},
		},
		{
			name:   "tag predicate",
			filter: models.ListFilter{Tag: "work"},
			want:   []int64{geometry.ID},
		},
		{
			name:   "all three compose",
			filter: models.ListFilter{Folder: models.InFolder(math.ID), Search: "algebra", Tag: "quiz"},
			want:   []int64{algebra.ID},
		},
		{
			name:   "wildcards are literal",
			filter: models.ListFilter{Search: "%"},
			want:   []int64{pct.ID},
		},
		{
			name:   "folder without matches",
			filter: models.ListFilter{Folder: models.InFolder(9999)},
			want:   []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.pdfs.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("List() ids mismatch (-want +got):\n%s", diff)
			}

			count, err := s.pdfs.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if count != len(tt.want) {
				t.Errorf("Count() = %d, want %d", count, len(tt.want))
			}
		})
	}
}

func TestPDFRepository_UnfiledIsComplement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := s.folder(t, "Docs")

	s.pdf(t, "a.pdf", &f.ID, nil, 0)
	s.pdf(t, "b.pdf", nil, nil, time.Minute)
	s.pdf(t, "c.pdf", &f.ID, nil, 2*time.Minute)

	all, _ := s.pdfs.Count(ctx, models.ListFilter{})
	filed, _ := s.pdfs.Count(ctx, models.ListFilter{Folder: models.InFolder(f.ID)})
	unfiled, _ := s.pdfs.Count(ctx, models.ListFilter{Folder: models.Unfiled()})

	if filed+unfiled != all {
		t.Errorf("filed(%d) + unfiled(%d) != all(%d)", filed, unfiled, all)
	}
}

func TestPDFRepository_MoveAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := s.folder(t, "Src")
	dst := s.folder(t, "Dst")

	a := s.pdf(t, "a.pdf", &src.ID, nil, 0)
	b := s.pdf(t, "b.pdf", &src.ID, nil, time.Minute)
	c := s.pdf(t, "c.pdf", &src.ID, nil, 2*time.Minute)

	moved, err := s.pdfs.MoveToFolder(ctx, []int64{a.ID, b.ID, 12345}, &dst.ID)
	if err != nil {
		t.Fatalf("MoveToFolder() error = %v", err)
	}
	if moved != 2 {
		t.Errorf("MoveToFolder() = %d, want 2", moved)
	}

	missing := int64(777)
	if _, err := s.pdfs.MoveToFolder(ctx, []int64{c.ID}, &missing); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MoveToFolder(unknown folder) error = %v, want ErrNotFound", err)
	}

	cleared, err := s.pdfs.ClearFolder(ctx, dst.ID)
	if err != nil {
		t.Fatalf("ClearFolder() error = %v", err)
	}
	if cleared != 2 {
		t.Errorf("ClearFolder() = %d, want 2", cleared)
	}

	unfiled, err := s.pdfs.List(ctx, models.ListFilter{Folder: models.Unfiled()})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]int64{a.ID, b.ID}, ids(unfiled)); diff != "" {
		t.Errorf("unfiled mismatch (-want +got):\n%s", diff)
	}
}

func TestPDFRepository_FolderDeleteSetsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := s.folder(t, "Temp")
	p := s.pdf(t, "a.pdf", &f.ID, nil, 0)

	if err := s.folders.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := s.pdfs.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.IsUnfiled() {
		t.Errorf("FolderID = %v, want nil", *got.FolderID)
	}
}

func TestPDFRepository_UpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := s.pdf(t, "a.pdf", nil, []string{"old"}, 0)
	b := s.pdf(t, "b.pdf", nil, nil, time.Minute)
	c := s.pdf(t, "c.pdf", nil, nil, 2*time.Minute)

	if err := s.pdfs.UpdateTags(ctx, a.ID, []string{"New", "fresh"}); err != nil {
		t.Fatalf("UpdateTags() error = %v", err)
	}
	if err := s.pdfs.UpdateFilename(ctx, a.ID, "renamed.pdf"); err != nil {
		t.Fatalf("UpdateFilename() error = %v", err)
	}
	got, _ := s.pdfs.GetByID(ctx, a.ID)
	if got.Filename != "renamed.pdf" {
		t.Errorf("Filename = %q, want renamed.pdf", got.Filename)
	}
	if diff := cmp.Diff([]string{"new", "fresh"}, got.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}

	if err := s.pdfs.UpdateTags(ctx, 999, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateTags(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.pdfs.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.pdfs.GetByID(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	deleted, err := s.pdfs.DeleteByIDs(ctx, []int64{b.ID, c.ID, 4242})
	if err != nil {
		t.Fatalf("DeleteByIDs() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteByIDs() = %d, want 2", deleted)
	}
}

func TestTagRepository(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	quiz := &models.Tag{Name: "quiz"}
	if err := s.tags.Create(ctx, quiz); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var conflict *domain.ConflictError
	if err := s.tags.Create(ctx, &models.Tag{Name: "quiz"}); !errors.As(err, &conflict) {
		t.Fatalf("Create(dup) error = %v, want *ConflictError", err)
	}
	if conflict.ResourceID != quiz.ID {
		t.Errorf("ResourceID = %d, want %d", conflict.ResourceID, quiz.ID)
	}

	if err := s.tags.EnsureExists(ctx, []string{"Quiz", "lab", "algebra", "lab"}); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}

	list, err := s.tags.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, tag := range list {
		names = append(names, tag.Name)
	}
	if diff := cmp.Diff([]string{"algebra", "lab", "quiz"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if err := s.tags.Delete(ctx, quiz.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.tags.GetByID(ctx, quiz.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestTransactionManager_RollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tm := sqlite.NewTransactionManager(s.config.DB, s.config.Logger)

	boom := errors.New("boom")
	err := tm.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.folders.Create(txCtx, &models.Folder{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("ExecTx() error = %v, want boom", err)
	}

	if _, err := s.folders.GetByName(ctx, "Ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByName() error = %v, want ErrNotFound after rollback", err)
	}
}
