package library

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pdfshelf/internal/domain"
	models "pdfshelf/internal/domain/models/library"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/storage"
)

// storageRefTimeFormat prefixes new storage references (UTC, second resolution)
const storageRefTimeFormat = "20060102150405"

type pathResolver struct {
	root       string
	alternates []string
	store      storage.ByteStore
}

// NewPathResolver creates a resolver rooted at the upload directory.
// Alternates are extra read-only roots where legacy files may live.
func NewPathResolver(root string, alternates []string, store storage.ByteStore) librarySvc.PathResolver {
	cleaned := make([]string, 0, len(alternates))
	for _, alt := range alternates {
		if alt = strings.TrimSpace(alt); alt != "" {
			cleaned = append(cleaned, filepath.Clean(alt))
		}
	}
	return &pathResolver{
		root:       filepath.Clean(root),
		alternates: cleaned,
		store:      store,
	}
}

// Resolve returns the first candidate that exists as a regular file
func (r *pathResolver) Resolve(pdf *models.PDF) (string, error) {
	for _, candidate := range r.Candidates(pdf) {
		info, err := r.store.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("pdf %d: %w", pdf.ID, domain.ErrFileMissing)
}

// Candidates lists the locations checked, in order:
//  1. the reference under the root (absolute references as-is)
//  2. the reference's basename under the root, which covers "uploads/<file>"
//  3. <id>.pdf under root/pdfs, root/pdf and root
//  4. <id>.pdf and the basename under each alternate root
func (r *pathResolver) Candidates(pdf *models.PDF) []string {
	var candidates []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		candidates = append(candidates, path)
	}

	ref := strings.TrimSpace(filepath.FromSlash(pdf.Path))
	base := ""
	if ref != "" {
		base = filepath.Base(ref)
		if base == "." || base == string(filepath.Separator) {
			base = ""
		}
	}

	if ref != "" {
		if filepath.IsAbs(ref) {
			add(filepath.Clean(ref))
		} else {
			add(within(r.root, ref))
		}
	}
	if base != "" {
		add(within(r.root, base))
	}

	idFile := fmt.Sprintf("%d.pdf", pdf.ID)
	add(within(r.root, filepath.Join("pdfs", idFile)))
	add(within(r.root, filepath.Join("pdf", idFile)))
	add(within(r.root, idFile))

	for _, alt := range r.alternates {
		add(within(alt, idFile))
		if base != "" {
			add(within(alt, base))
		}
	}

	return candidates
}

// StoragePath returns the absolute location for a canonical reference
func (r *pathResolver) StoragePath(ref string) string {
	return within(r.root, ref)
}

// within joins rel under root, returning "" when the result escapes root
func within(root, rel string) string {
	joined := filepath.Join(root, rel)
	back, err := filepath.Rel(root, joined)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return ""
	}
	return joined
}

// NewStorageRef builds the canonical reference for a new upload:
// "<UTC yyyymmddHHMMSS>_<sanitised name>", relative to the upload root.
func NewStorageRef(filename string, now time.Time) string {
	return now.UTC().Format(storageRefTimeFormat) + "_" + sanitizeFilename(filename)
}

// sanitizeFilename keeps the base name and replaces anything outside [A-Za-z0-9._-]
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "document.pdf"
	}
	return out
}
