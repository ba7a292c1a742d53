package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"pdfshelf/internal/domain"
	"pdfshelf/internal/httputil"
)

// Problem kinds let clients tell a missing record from a missing file
const (
	kindNotFound     = "not_found"
	kindFileMissing  = "file_missing"
	kindStorageWrite = "storage_write"
	kindTooLarge     = "too_large"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var tooLarge *http.MaxBytesError
	var httpErr domain.HTTPError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrFileMissing):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, err.Error(), map[string]interface{}{
			"kind": kindFileMissing,
		})
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, err.Error(), map[string]interface{}{
			"kind": kindNotFound,
		})
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, conflictErr.StatusCode(), conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.As(err, &tooLarge):
		respondTooLarge(w, tooLarge.Limit)
	case errors.Is(err, domain.ErrStorageWrite):
		slog.Error("storage write failed", "error", err)
		httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, "failed to store file", map[string]interface{}{
			"kind": kindStorageWrite,
		})
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func respondTooLarge(w http.ResponseWriter, limit int64) {
	httputil.RespondErrorWithExtras(w, http.StatusRequestEntityTooLarge, "request body too large", map[string]interface{}{
		"kind":        kindTooLarge,
		"limit_bytes": limit,
	})
}
