package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	"pdfshelf/internal/storage"
)

func TestPathResolver_Candidates(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "srv", "uploads")
	alt := filepath.Join(string(filepath.Separator), "mnt", "legacy")
	resolver := NewPathResolver(root, []string{alt, " "}, storage.NewDiskStore(0))

	tests := []struct {
		name string
		pdf  *models.PDF
		want []string
	}{
		{
			name: "canonical reference",
			pdf:  &models.PDF{ID: 7, Path: "20240101120000_notes.pdf"},
			want: []string{
				filepath.Join(root, "20240101120000_notes.pdf"),
				filepath.Join(root, "pdfs", "7.pdf"),
				filepath.Join(root, "pdf", "7.pdf"),
				filepath.Join(root, "7.pdf"),
				filepath.Join(alt, "7.pdf"),
				filepath.Join(alt, "20240101120000_notes.pdf"),
			},
		},
		{
			name: "legacy uploads prefix",
			pdf:  &models.PDF{ID: 3, Path: "uploads/old.pdf"},
			want: []string{
				filepath.Join(root, "uploads", "old.pdf"),
				filepath.Join(root, "old.pdf"),
				filepath.Join(root, "pdfs", "3.pdf"),
				filepath.Join(root, "pdf", "3.pdf"),
				filepath.Join(root, "3.pdf"),
				filepath.Join(alt, "3.pdf"),
				filepath.Join(alt, "old.pdf"),
			},
		},
		{
			name: "absolute reference",
			pdf:  &models.PDF{ID: 1, Path: filepath.Join(alt, "abs.pdf")},
			want: []string{
				filepath.Join(alt, "abs.pdf"),
				filepath.Join(root, "abs.pdf"),
				filepath.Join(root, "pdfs", "1.pdf"),
				filepath.Join(root, "pdf", "1.pdf"),
				filepath.Join(root, "1.pdf"),
				filepath.Join(alt, "1.pdf"),
			},
		},
		{
			name: "escaping reference is skipped",
			pdf:  &models.PDF{ID: 9, Path: "../../etc/passwd"},
			want: []string{
				filepath.Join(root, "passwd"),
				filepath.Join(root, "pdfs", "9.pdf"),
				filepath.Join(root, "pdf", "9.pdf"),
				filepath.Join(root, "9.pdf"),
				filepath.Join(alt, "9.pdf"),
				filepath.Join(alt, "passwd"),
			},
		},
		{
			name: "empty reference",
			pdf:  &models.PDF{ID: 2},
			want: []string{
				filepath.Join(root, "pdfs", "2.pdf"),
				filepath.Join(root, "pdf", "2.pdf"),
				filepath.Join(root, "2.pdf"),
				filepath.Join(alt, "2.pdf"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Candidates(tt.pdf)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	alt := t.TempDir()
	resolver := NewPathResolver(root, []string{alt}, storage.NewDiskStore(0))

	write := func(path string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write(filepath.Join(root, "pdfs", "4.pdf"))
	write(filepath.Join(root, "moved.pdf"))
	write(filepath.Join(alt, "12.pdf"))
	write(filepath.Join(root, "5.pdf"))
	if err := os.Mkdir(filepath.Join(root, "dir.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		pdf     *models.PDF
		want    string
		wantErr error
	}{
		{
			name: "id convention under pdfs",
			pdf:  &models.PDF{ID: 4, Path: "gone.pdf"},
			want: filepath.Join(root, "pdfs", "4.pdf"),
		},
		{
			name: "basename of prefixed reference",
			pdf:  &models.PDF{ID: 20, Path: "uploads/moved.pdf"},
			want: filepath.Join(root, "moved.pdf"),
		},
		{
			name: "alternate root",
			pdf:  &models.PDF{ID: 12, Path: "whatever.pdf"},
			want: filepath.Join(alt, "12.pdf"),
		},
		{
			name: "directory is not a file",
			pdf:  &models.PDF{ID: 5, Path: "dir.pdf"},
			want: filepath.Join(root, "5.pdf"),
		},
		{
			name:    "nothing on disk",
			pdf:     &models.PDF{ID: 99, Path: "nope.pdf"},
			wantErr: domain.ErrFileMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.pdf)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewStorageRef(t *testing.T) {
	at := time.Date(2024, 3, 9, 23, 5, 7, 0, time.FixedZone("UTC+2", 2*60*60))

	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "20240309210507_report.pdf"},
		{"My Notes (v2).pdf", "20240309210507_My_Notes__v2_.pdf"},
		{"../../evil.pdf", "20240309210507_evil.pdf"},
		{`C:\Users\me\scan.pdf`, "20240309210507_scan.pdf"},
		{"...", "20240309210507_document.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := NewStorageRef(tt.filename, at); got != tt.want {
				t.Errorf("NewStorageRef(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
