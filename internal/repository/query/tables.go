package query

import "fmt"

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Folders string
	PDFs    string
	Tags    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders: fmt.Sprintf("%sfolders", prefix),
		PDFs:    fmt.Sprintf("%spdfs", prefix),
		Tags:    fmt.Sprintf("%stags", prefix),
	}
}

// All returns every table name, children before parents
func (t *TableNames) All() []string {
	return []string{t.PDFs, t.Tags, t.Folders}
}
