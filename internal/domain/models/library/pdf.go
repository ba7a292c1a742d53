package library

import (
	"time"
)

type PDF struct {
	ID       int64  `json:"id" db:"id"`
	Filename string `json:"filename" db:"filename"`

	// Path is the storage reference. Only the path resolver interprets it.
	Path string `json:"path" db:"path"`

	// FolderID is NULL for unfiled PDFs; FolderName is joined on read, not stored
	FolderID   *int64  `json:"folder_id" db:"folder_id"`
	FolderName *string `json:"folder_name"`

	// Tags is the normalised list; the row stores the comma-joined blob
	Tags      []string  `json:"tags" db:"tags"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Size is derived by statting the resolved file; nil when the file is missing
	Size *int64 `json:"size"`
}

// IsUnfiled reports whether the PDF has no folder
func (p *PDF) IsUnfiled() bool {
	return p.FolderID == nil
}
