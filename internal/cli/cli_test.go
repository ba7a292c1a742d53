package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfshelf/internal/config"
	models "pdfshelf/internal/domain/models/library"
	"pdfshelf/internal/repository"
)

func testEnv(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	return &Env{
		Config: &config.Config{
			Environment:    "test",
			DatabaseURL:    "sqlite:" + filepath.Join(dir, "library.db"),
			TablePrefix:    "test_",
			UploadDir:      filepath.Join(dir, "uploads"),
			DefaultMaxTags: 5,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func run(env *Env, stdin string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := Run(context.Background(), env, strings.NewReader(stdin), &out, &errOut, args)
	return code, out.String(), errOut.String()
}

func TestRun_Dispatch(t *testing.T) {
	env := testEnv(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"no args prints usage", nil, 0, "Commands:", ""},
		{"help", []string{"--help"}, 0, "audit", ""},
		{"unknown command", []string{"frobnicate"}, 1, "", "unknown command: frobnicate"},
		{"command help", []string{"tags", "--help"}, 0, "--text-file", ""},
		{"bad flag", []string{"tags", "--bogus"}, 1, "", "unknown flag"},
		{"tags needs input", []string{"tags"}, 1, "", "--text-file or --filename is required"},
		{"reset needs confirmation", []string{"reset"}, 1, "", "--yes is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(env, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, errOut)
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("stdout %q missing %q", out, tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr %q missing %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestTagsCommand(t *testing.T) {
	env := testEnv(t)

	code, out, _ := run(env, "", "tags", "--filename", "Thermo_Dynamics-Lecture.pdf")
	if code != 0 || out != "thermo\ndynamics\nlecture\n" {
		t.Errorf("filename tags: code %d out %q", code, out)
	}

	code, out, _ = run(env, "cat cat dog dog dog bird", "tags", "-t", "-", "-n", "2", "--json")
	if code != 0 || out != "[\"dog\",\"cat\"]\n" {
		t.Errorf("stdin tags: code %d out %q", code, out)
	}

	textFile := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(textFile, []byte("gravity gravity orbit"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, _ = run(env, "", "tags", "--text-file", textFile)
	if code != 0 || out != "gravity\norbit\n" {
		t.Errorf("file tags: code %d out %q", code, out)
	}
}

func TestAuditCommand(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()

	store, err := repository.Open(ctx, env.Config, env.Logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	present := &models.PDF{Filename: "present.pdf", Path: "20240101000000_present.pdf"}
	if err := store.PDFs.Create(ctx, present); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if err := os.MkdirAll(env.Config.UploadDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.Config.UploadDir, present.Path), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := run(env, "", "audit")
	if code != 0 {
		t.Fatalf("audit: code %d stderr %q", code, errOut)
	}
	if !strings.Contains(out, "1 found, 0 missing, 8 bytes") {
		t.Errorf("audit summary missing: %q", out)
	}

	store, err = repository.Open(ctx, env.Config, env.Logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.PDFs.Create(ctx, &models.PDF{Filename: "lost.pdf", Path: "nowhere.pdf"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	code, out, errOut = run(env, "", "audit", "--missing")
	if code != 1 || !strings.Contains(errOut, "1 file(s) missing") {
		t.Errorf("audit with missing file: code %d stderr %q", code, errOut)
	}
	if strings.Contains(out, "present.pdf") || !strings.Contains(out, "lost.pdf") {
		t.Errorf("--missing output = %q", out)
	}
}

func TestResetCommand(t *testing.T) {
	env := testEnv(t)

	code, out, errOut := run(env, "", "reset", "--yes")
	if code != 0 || !strings.Contains(out, "test_pdfs") {
		t.Errorf("reset: code %d out %q stderr %q", code, out, errOut)
	}

	env.Config.Environment = "prod"
	code, _, errOut = run(env, "", "reset", "--yes")
	if code != 1 || !strings.Contains(errOut, "prod") {
		t.Errorf("prod reset: code %d stderr %q", code, errOut)
	}
}
