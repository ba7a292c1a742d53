package library

import (
	"strings"
)

// Tag is a catalog entry. Catalog tags and the tags embedded on PDFs are not kept in
// lockstep: tagging a PDF creates missing catalog entries, nothing flows the other way.
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// tagSeparator joins tags in the legacy storage blob
const tagSeparator = ","

// NormalizeTag trims and lowercases a single tag. Commas are replaced so a tag can
// never split into two when stored in the joined blob.
func NormalizeTag(tag string) string {
	tag = strings.ReplaceAll(tag, tagSeparator, " ")
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags lowercases, trims and deduplicates tags, keeping first-occurrence order.
// Empty entries are dropped. Never returns nil.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := NormalizeTag(tag)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}

// SplitTags parses the legacy comma-joined blob into a normalised list
func SplitTags(blob string) []string {
	if strings.TrimSpace(blob) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(blob, tagSeparator))
}

// JoinTags renders a tag list as the legacy blob. Returns nil for an empty list so the
// column is stored as NULL, matching rows created without tags.
func JoinTags(tags []string) *string {
	normalized := NormalizeTags(tags)
	if len(normalized) == 0 {
		return nil
	}
	blob := strings.Join(normalized, tagSeparator)
	return &blob
}
