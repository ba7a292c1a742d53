package handler

import (
	"log/slog"
	"net/http"

	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/httputil"
)

// TagHandler handles tag catalog requests
type TagHandler struct {
	tagService librarySvc.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService librarySvc.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags returns the catalog sorted by name
// GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// CreateTag adds a catalog tag
// POST /api/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req librarySvc.CreateTagRequest
	if !parseJSON(w, r, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// DeleteTag removes a catalog tag. PDFs keep the name in their own tag lists.
// DELETE /api/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExtractTags suggests tags for arbitrary text and filename
// POST /api/tags/extract
func (h *TagHandler) ExtractTags(w http.ResponseWriter, r *http.Request) {
	var req librarySvc.ExtractTagsRequest
	if !parseJSON(w, r, &req) {
		return
	}

	tags, err := h.tagService.ExtractTags(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tags": tags})
}
