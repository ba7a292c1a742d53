package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"pdfshelf/internal/config"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/httputil"
)

// PDFHandler handles single-document requests
type PDFHandler struct {
	pdfService     librarySvc.PDFService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewPDFHandler creates a new PDF handler. maxUploadBytes bounds the multipart body.
func NewPDFHandler(pdfService librarySvc.PDFService, maxUploadBytes int64, logger *slog.Logger) *PDFHandler {
	return &PDFHandler{
		pdfService:     pdfService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// setTagsBody accepts tags as a list or a comma-separated string
type setTagsBody struct {
	Tags httputil.StringList `json:"tags"`
}

// ListPDFs lists PDFs newest first
// GET /api/pdfs?folder_id=&search=&tag=
func (h *PDFHandler) ListPDFs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pdfs, err := h.pdfService.ListPDFs(r.Context(), &librarySvc.ListPDFsRequest{
		FolderID: q.Get("folder_id"),
		Search:   q.Get("search"),
		Tag:      q.Get("tag"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pdfs)
}

// GetPDF retrieves a PDF by ID
// GET /api/pdfs/{id}
func (h *PDFHandler) GetPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pdf, err := h.pdfService.GetPDF(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pdf)
}

// UploadPDF accepts a multipart form with "file", optional "tags" (comma-separated)
// and optional "folder_id".
// POST /api/pdfs/upload
func (h *PDFHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		respondTooLarge(w, h.maxUploadBytes)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(config.MultipartMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("upload rejected: body too large", "limit_bytes", tooLarge.Limit)
			respondTooLarge(w, tooLarge.Limit)
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	pdf, err := h.pdfService.UploadPDF(r.Context(), &librarySvc.UploadPDFRequest{
		Filename: header.Filename,
		Content:  file,
		Tags:     r.FormValue("tags"),
		FolderID: formFolderID(r.FormValue("folder_id")),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, pdf)
}

// UnfiledCount counts PDFs without a folder
// GET /api/pdfs/unfiled-count
func (h *PDFHandler) UnfiledCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.pdfService.UnfiledCount(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// SetTags replaces a PDF's tags
// PUT /api/pdfs/{id}/tags
func (h *PDFHandler) SetTags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body setTagsBody
	if !parseJSON(w, r, &body) {
		return
	}

	pdf, err := h.pdfService.SetPDFTags(r.Context(), id, &librarySvc.SetTagsRequest{Tags: body.Tags})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pdf)
}

// RenamePDF changes the display filename
// PUT /api/pdfs/{id}/rename
func (h *PDFHandler) RenamePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req librarySvc.RenamePDFRequest
	if !parseJSON(w, r, &req) {
		return
	}

	pdf, err := h.pdfService.RenamePDF(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pdf)
}

// DeletePDF removes the file and the record
// DELETE /api/pdfs/{id}
func (h *PDFHandler) DeletePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.pdfService.DeletePDF(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ViewPDF streams the file for inline display
// GET /api/pdfs/{id}/view
func (h *PDFHandler) ViewPDF(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "inline")
}

// DownloadPDF streams the file as an attachment
// GET /api/pdfs/{id}/download
func (h *PDFHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "attachment")
}

func (h *PDFHandler) serveFile(w http.ResponseWriter, r *http.Request, disposition string) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pdf, file, err := h.pdfService.OpenPDF(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": pdf.Filename,
	}))

	// ServeContent handles Range and conditional requests
	http.ServeContent(w, r, pdf.Filename, pdf.CreatedAt, file)
}

// SuggestTags runs the tag heuristic for a stored PDF
// POST /api/pdfs/{id}/suggest-tags
func (h *PDFHandler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req librarySvc.SuggestTagsRequest
	if r.ContentLength != 0 && !parseJSON(w, r, &req) {
		return
	}

	tags, err := h.pdfService.SuggestTags(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"id": id, "tags": tags})
}
