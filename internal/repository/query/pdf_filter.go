// Package query composes the PDF listing predicates into SQL for either store.
package query

import (
	"fmt"
	"strings"

	"pdfshelf/internal/domain/models/library"
)

// Dialect captures the differences between the supported SQL engines
type Dialect struct {
	// Placeholder renders the n-th (1-based) bind parameter
	Placeholder func(n int) string

	// ContainsCI renders a case-insensitive "column contains pattern" predicate
	ContainsCI func(column, placeholder string) string
}

// Postgres uses $n parameters and ILIKE
var Postgres = Dialect{
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	ContainsCI: func(column, placeholder string) string {
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, placeholder)
	},
}

// SQLite uses ? parameters; LIKE is only ASCII case-insensitive so both sides are lowered
var SQLite = Dialect{
	Placeholder: func(int) string { return "?" },
	ContainsCI: func(column, placeholder string) string {
		return fmt.Sprintf(`lower(%s) LIKE lower(%s) ESCAPE '\'`, column, placeholder)
	},
}

// Columns names the columns the predicates touch, qualified as the caller needs
type Columns struct {
	FolderID string
	Filename string
	Tags     string
}

// Where is a composed predicate ready to append after WHERE
type Where struct {
	Clause string
	Args   []interface{}
}

// BuildPDFWhere composes the listing predicates in fixed order:
// folder selector first, then search (filename OR tags), then tag.
// Predicates are ANDed; an empty filter yields "TRUE"-equivalent "1=1".
func BuildPDFWhere(filter library.ListFilter, cols Columns, d Dialect) Where {
	filter.Normalize()

	var preds []string
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return d.Placeholder(len(args))
	}

	// 1. Folder selector
	switch filter.Folder.Kind {
	case library.FolderUnfiled:
		preds = append(preds, cols.FolderID+" IS NULL")
	case library.FolderSpecific:
		preds = append(preds, fmt.Sprintf("%s = %s", cols.FolderID, next(filter.Folder.ID)))
	}

	// 2. Search: OR only inside this predicate
	if filter.Search != "" {
		pattern := ContainsPattern(filter.Search)
		onName := d.ContainsCI(cols.Filename, next(pattern))
		onTags := d.ContainsCI(tagsColumn(cols.Tags), next(pattern))
		preds = append(preds, fmt.Sprintf("(%s OR %s)", onName, onTags))
	}

	// 3. Tag substring
	if filter.Tag != "" {
		p := next(ContainsPattern(filter.Tag))
		preds = append(preds, d.ContainsCI(tagsColumn(cols.Tags), p))
	}

	if len(preds) == 0 {
		return Where{Clause: "1=1"}
	}
	return Where{Clause: strings.Join(preds, " AND "), Args: args}
}

// ContainsPattern escapes LIKE metacharacters and wraps the term in wildcards
func ContainsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// tagsColumn treats a NULL blob as empty so OR never collapses to NULL
func tagsColumn(col string) string {
	return fmt.Sprintf("COALESCE(%s, '')", col)
}

// OrderNewestFirst is the listing order: creation time descending, id ascending for ties
func OrderNewestFirst(createdAt, id string) string {
	return fmt.Sprintf("%s DESC, %s ASC", createdAt, id)
}
