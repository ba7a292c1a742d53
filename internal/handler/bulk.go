package handler

import (
	"log/slog"
	"net/http"

	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/httputil"
)

// BulkHandler handles multi-document moves and deletes
type BulkHandler struct {
	bulkService librarySvc.BulkService
	logger      *slog.Logger
}

// NewBulkHandler creates a new bulk handler
func NewBulkHandler(bulkService librarySvc.BulkService, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{
		bulkService: bulkService,
		logger:      logger,
	}
}

// MovePDFs moves PDFs to a folder; a null folder_id moves them to unfiled
// POST /api/pdfs/move
func (h *BulkHandler) MovePDFs(w http.ResponseWriter, r *http.Request) {
	var req librarySvc.BulkMoveRequest
	if !parseJSON(w, r, &req) {
		return
	}

	result, err := h.bulkService.MoveToFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeletePDFs removes files best-effort and every matching record
// POST /api/pdfs/delete
// DELETE /api/pdfs
func (h *BulkHandler) DeletePDFs(w http.ResponseWriter, r *http.Request) {
	var req librarySvc.BulkDeleteRequest
	if !parseJSON(w, r, &req) {
		return
	}

	result, err := h.bulkService.Delete(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	if result.FilesFailed > 0 {
		h.logger.Warn("bulk delete finished with file failures",
			"request_id", httputil.GetRequestID(r.Context()),
			"files_failed", result.FilesFailed,
		)
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
