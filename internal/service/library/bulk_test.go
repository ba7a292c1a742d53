package library

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	librarySvc "pdfshelf/internal/domain/services/library"
)

func TestBulkService_DeleteWithMissingFile(t *testing.T) {
	f := newFixture(t)

	var ids []int64
	var missing *models.PDF
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		pdf := f.upload(t, name, nil, "")
		ids = append(ids, pdf.ID)
		if i == 2 {
			missing = pdf
		}
	}
	f.removeBytes(t, missing)

	result, err := f.bulk.Delete(f.ctx, &librarySvc.BulkDeleteRequest{PDFIDs: ids})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := &models.BulkDeleteResult{
		Requested:    4,
		Matched:      4,
		FilesDeleted: 3,
		FilesMissing: 1,
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("Delete() mismatch (-want +got):\n%s", diff)
	}

	for _, id := range ids {
		if _, err := f.pdfs.GetPDF(f.ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetPDF(%d) error = %v, want ErrNotFound", id, err)
		}
	}
	if files := f.filesOnDisk(t); len(files) != 0 {
		t.Errorf("files left on disk: %v", files)
	}
}

func TestBulkService_DeleteRecordsFileFailures(t *testing.T) {
	f := newFixture(t)
	ok := f.upload(t, "ok.pdf", nil, "")
	stuck := f.upload(t, "stuck.pdf", nil, "")
	stuckPath := f.resolver.StoragePath(stuck.Path)
	f.store.removeErrs = map[string]error{stuckPath: errInjected}

	result, err := f.bulk.Delete(f.ctx, &librarySvc.BulkDeleteRequest{PDFIDs: []int64{ok.ID, stuck.ID, 9999}})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := &models.BulkDeleteResult{
		Requested:    3,
		Matched:      2,
		FilesDeleted: 1,
		FilesFailed:  1,
		Failures: []models.FileFailure{
			{PDFID: stuck.ID, Path: stuckPath, Error: errInjected.Error()},
		},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("Delete() mismatch (-want +got):\n%s", diff)
	}

	// A failed file removal never keeps the row
	if _, err := f.pdfs.GetPDF(f.ctx, stuck.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetPDF(stuck) error = %v, want ErrNotFound", err)
	}
	if files := f.filesOnDisk(t); len(files) != 1 {
		t.Errorf("files on disk = %v, want only the stuck file", files)
	}
}

func TestBulkService_DeleteUnknownIDs(t *testing.T) {
	f := newFixture(t)
	kept := f.upload(t, "kept.pdf", nil, "")

	result, err := f.bulk.Delete(f.ctx, &librarySvc.BulkDeleteRequest{PDFIDs: []int64{500, 501, 500}})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if result.Requested != 3 || result.Matched != 0 || result.FilesDeleted != 0 {
		t.Errorf("Delete() = %+v, want nothing matched", result)
	}

	if _, err := f.pdfs.GetPDF(f.ctx, kept.ID); err != nil {
		t.Errorf("unrelated pdf removed: %v", err)
	}
}

func TestBulkService_Move(t *testing.T) {
	f := newFixture(t)
	target := f.folder(t, "Target")
	a := f.upload(t, "a.pdf", nil, "")
	b := f.upload(t, "b.pdf", nil, "")
	c := f.upload(t, "c.pdf", nil, "")

	result, err := f.bulk.MoveToFolder(f.ctx, &librarySvc.BulkMoveRequest{
		PDFIDs:   []int64{a.ID, b.ID, 777},
		FolderID: &target,
	})
	if err != nil {
		t.Fatalf("MoveToFolder() error = %v", err)
	}
	want := &models.MoveResult{Requested: 3, Matched: 2, FolderID: &target}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("MoveToFolder() mismatch (-want +got):\n%s", diff)
	}

	folder, err := f.folders.GetFolder(f.ctx, target)
	if err != nil {
		t.Fatalf("GetFolder() error = %v", err)
	}
	if folder.PDFCount != 2 {
		t.Errorf("PDFCount = %d, want 2", folder.PDFCount)
	}

	untouched, err := f.pdfs.GetPDF(f.ctx, c.ID)
	if err != nil {
		t.Fatalf("GetPDF() error = %v", err)
	}
	if !untouched.IsUnfiled() {
		t.Errorf("pdf %d moved without being requested", c.ID)
	}

	// nil folder moves back to unfiled
	result, err = f.bulk.MoveToFolder(f.ctx, &librarySvc.BulkMoveRequest{PDFIDs: []int64{a.ID}})
	if err != nil {
		t.Fatalf("MoveToFolder(nil) error = %v", err)
	}
	if result.Matched != 1 || result.FolderID != nil {
		t.Errorf("MoveToFolder(nil) = %+v", result)
	}
	moved, err := f.pdfs.GetPDF(f.ctx, a.ID)
	if err != nil {
		t.Fatalf("GetPDF() error = %v", err)
	}
	if !moved.IsUnfiled() {
		t.Errorf("pdf %d FolderID = %d, want nil", a.ID, *moved.FolderID)
	}
}

func TestBulkService_Rejections(t *testing.T) {
	f := newFixture(t)
	pdf := f.upload(t, "a.pdf", nil, "")

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "move with no ids",
			run: func() error {
				_, err := f.bulk.MoveToFolder(f.ctx, &librarySvc.BulkMoveRequest{})
				return err
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "move to unknown folder",
			run: func() error {
				_, err := f.bulk.MoveToFolder(f.ctx, &librarySvc.BulkMoveRequest{PDFIDs: []int64{pdf.ID}, FolderID: ptr(int64(404))})
				return err
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "delete with no ids",
			run: func() error {
				_, err := f.bulk.Delete(f.ctx, &librarySvc.BulkDeleteRequest{PDFIDs: []int64{}})
				return err
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, err := f.pdfs.GetPDF(f.ctx, pdf.ID)
	if err != nil {
		t.Fatalf("GetPDF() error = %v", err)
	}
	if !got.IsUnfiled() {
		t.Error("rejected move changed the pdf")
	}
}
