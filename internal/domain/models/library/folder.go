package library

import (
	"time"
)

// Folder groups PDFs. PDFs hold the foreign key; a folder has no back-pointer.
type Folder struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"` // Unique, case-sensitive
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FolderWithCount is a folder plus its derived PDF count (never cached)
type FolderWithCount struct {
	Folder
	PDFCount int `json:"pdf_count"`
}

// FolderList is the listing response: every folder with counts, plus the unfiled count
type FolderList struct {
	Folders      []FolderWithCount `json:"folders"`
	UnfiledCount int               `json:"unfiled_count"`
}
