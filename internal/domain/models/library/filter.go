package library

import (
	"fmt"
	"strconv"
	"strings"
)

// FolderSelectorKind is the state of the folder predicate
type FolderSelectorKind int

const (
	// FolderAny applies no folder predicate
	FolderAny FolderSelectorKind = iota

	// FolderSpecific matches PDFs whose folder reference equals FolderSelector.ID
	FolderSpecific

	// FolderUnfiled matches PDFs whose folder reference is NULL
	FolderUnfiled
)

// UnfiledSentinel is the wire value clients send to select unfiled PDFs
const UnfiledSentinel = "-1"

// FolderSelector is the tri-state folder predicate: any, a specific folder, or unfiled only
type FolderSelector struct {
	Kind FolderSelectorKind
	ID   int64 // Only meaningful when Kind == FolderSpecific
}

// AnyFolder selects every PDF regardless of folder
func AnyFolder() FolderSelector {
	return FolderSelector{Kind: FolderAny}
}

// InFolder selects PDFs in the given folder
func InFolder(id int64) FolderSelector {
	return FolderSelector{Kind: FolderSpecific, ID: id}
}

// Unfiled selects PDFs without a folder
func Unfiled() FolderSelector {
	return FolderSelector{Kind: FolderUnfiled}
}

// ParseFolderSelector parses the raw folder_id query value.
//   - "" → any
//   - "-1" or "unfiled" → unfiled only
//   - digits → that folder
//   - anything else → any
//
// The second return value is false when raw was non-empty but unparseable; the
// selector then fails open to "any" so stale client state never breaks the listing.
func ParseFolderSelector(raw string) (FolderSelector, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return AnyFolder(), true
	case raw == UnfiledSentinel || strings.EqualFold(raw, "unfiled"):
		return Unfiled(), true
	case isDigits(raw):
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return AnyFolder(), false
		}
		return InFolder(id), true
	default:
		return AnyFolder(), false
	}
}

// String renders the selector for logs
func (s FolderSelector) String() string {
	switch s.Kind {
	case FolderSpecific:
		return fmt.Sprintf("folder:%d", s.ID)
	case FolderUnfiled:
		return "unfiled"
	default:
		return "any"
	}
}

// ListFilter composes the three listing predicates. All predicates are ANDed.
type ListFilter struct {
	// Folder is applied first and determines the base set
	Folder FolderSelector

	// Search is a case-insensitive substring matched against filename OR the tag blob
	// Empty = no search predicate
	Search string

	// Tag is a case-insensitive substring matched against the tag blob
	// Empty = no tag predicate
	Tag string
}

// Normalize trims the free-text predicates so whitespace-only input means "absent"
func (f *ListFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.Tag = strings.TrimSpace(f.Tag)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
