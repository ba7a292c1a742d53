package handler

import (
	"net/http"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Folders *FolderHandler
	PDFs    *PDFHandler
	Bulk    *BulkHandler
	Tags    *TagHandler
}

// Register adds every route to mux (Go 1.22+ method patterns).
// Literal segments such as /api/pdfs/unfiled-count take precedence over {id}.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders", h.Folders.ListFolders)
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("PUT /api/folders/{id}", h.Folders.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)

	// PDF routes
	mux.HandleFunc("GET /api/pdfs", h.PDFs.ListPDFs)
	mux.HandleFunc("POST /api/pdfs/upload", h.PDFs.UploadPDF)
	mux.HandleFunc("GET /api/pdfs/unfiled-count", h.PDFs.UnfiledCount)
	mux.HandleFunc("GET /api/pdfs/{id}", h.PDFs.GetPDF)
	mux.HandleFunc("DELETE /api/pdfs/{id}", h.PDFs.DeletePDF)
	mux.HandleFunc("PUT /api/pdfs/{id}/tags", h.PDFs.SetTags)
	mux.HandleFunc("PUT /api/pdfs/{id}/rename", h.PDFs.RenamePDF)
	mux.HandleFunc("GET /api/pdfs/{id}/view", h.PDFs.ViewPDF)
	mux.HandleFunc("GET /api/pdfs/{id}/download", h.PDFs.DownloadPDF)
	mux.HandleFunc("POST /api/pdfs/{id}/suggest-tags", h.PDFs.SuggestTags)

	// Bulk routes
	mux.HandleFunc("POST /api/pdfs/move", h.Bulk.MovePDFs)
	mux.HandleFunc("POST /api/pdfs/delete", h.Bulk.DeletePDFs)
	mux.HandleFunc("DELETE /api/pdfs", h.Bulk.DeletePDFs)

	// Tag routes
	mux.HandleFunc("GET /api/tags", h.Tags.ListTags)
	mux.HandleFunc("POST /api/tags", h.Tags.CreateTag)
	mux.HandleFunc("POST /api/tags/extract", h.Tags.ExtractTags)
	mux.HandleFunc("DELETE /api/tags/{id}", h.Tags.DeleteTag)
}
