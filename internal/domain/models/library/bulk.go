package library

// MoveResult reports a bulk move. Requested counts the ids sent; Matched counts rows
// actually updated. Ids without a row are ignored, not reported as errors.
type MoveResult struct {
	Requested int    `json:"moved_count"`
	Matched   int    `json:"matched_count"`
	FolderID  *int64 `json:"folder_id"`
}

// FileFailure records one file that could not be removed during a delete
type FileFailure struct {
	PDFID int64  `json:"pdf_id"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// BulkDeleteResult reports a bulk delete. Metadata rows are removed even when their
// files fail to delete: orphaned bytes are acceptable, orphaned rows are not.
type BulkDeleteResult struct {
	Requested    int           `json:"deleted_count"`
	Matched      int           `json:"matched_count"`
	FilesDeleted int           `json:"files_deleted"`
	FilesFailed  int           `json:"files_failed"`
	FilesMissing int           `json:"files_missing"`
	Failures     []FileFailure `json:"failures,omitempty"`
}

// DeleteResult reports a single-PDF delete
type DeleteResult struct {
	ID            int64  `json:"id"`
	FileDeleted   bool   `json:"file_deleted"`
	RecordDeleted bool   `json:"db_record_deleted"`
	FileError     string `json:"file_error,omitempty"`
}
