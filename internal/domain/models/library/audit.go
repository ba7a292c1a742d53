package library

// AuditEntry is one record's storage check
type AuditEntry struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`

	// ResolvedPath is empty when no candidate exists
	ResolvedPath string `json:"resolved_path,omitempty"`
	Size         *int64 `json:"size"`
}

// Missing reports whether no file could be resolved
func (e *AuditEntry) Missing() bool {
	return e.ResolvedPath == ""
}

// AuditReport summarises every record against the byte store
type AuditReport struct {
	Entries    []AuditEntry `json:"entries"`
	Found      int          `json:"found"`
	Missing    int          `json:"missing"`
	TotalBytes int64        `json:"total_bytes"`
}
