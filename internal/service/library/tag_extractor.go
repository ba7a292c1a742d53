package library

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"pdfshelf/internal/config"
	librarySvc "pdfshelf/internal/domain/services/library"
	"pdfshelf/internal/vocabulary"
)

const (
	minTextTokenLength     = 3 // text tokens shorter than this are dropped
	maxFilenameShortLength = 2 // filename tokens this short or shorter are dropped
)

type tagExtractor struct {
	words      *vocabulary.Registry
	defaultMax int
}

// NewTagExtractor creates the frequency/filename tag heuristic
func NewTagExtractor(words *vocabulary.Registry, defaultMax int) librarySvc.TagExtractor {
	if defaultMax <= 0 {
		defaultMax = config.DefaultMaxTags
	}
	return &tagExtractor{words: words, defaultMax: defaultMax}
}

// Extract runs the fallback chain: long text, then filename, then short text, then nothing
func (e *tagExtractor) Extract(text, filename string, maxTags int) []string {
	n := e.limit(maxTags)

	if countNonSpace(text) >= config.MinExtractionTextLength {
		if tags := e.fromText(text, n); len(tags) > 0 {
			return tags
		}
	}

	if tags := e.fromFilename(filename, n); len(tags) > 0 {
		return tags
	}

	// Short text only wins when the filename yields nothing
	if tags := e.fromText(text, n); len(tags) > 0 {
		return tags
	}

	return []string{}
}

func (e *tagExtractor) limit(maxTags int) int {
	if maxTags <= 0 {
		return e.defaultMax
	}
	if maxTags > config.MaxTagsLimit {
		return config.MaxTagsLimit
	}
	return maxTags
}

// fromText returns the n most frequent keywords; ties keep first-occurrence order
func (e *tagExtractor) fromText(text string, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, raw := range strings.Fields(strings.ToLower(text)) {
		token := strings.TrimFunc(raw, isTrimmable)
		if utf8.RuneCountInString(token) < minTextTokenLength || isNumeric(token) {
			continue
		}
		if e.words.IsStopWord(vocabulary.ListText, token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	return head(order, n)
}

// fromFilename derives keywords from the filename without its extension
func (e *tagExtractor) fromFilename(filename string, n int) []string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return nil
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)

	seen := make(map[string]struct{})
	var tags []string
	for _, raw := range strings.Fields(strings.ToLower(name)) {
		token := strings.TrimFunc(raw, isTrimmable)
		if utf8.RuneCountInString(token) <= maxFilenameShortLength || isNumeric(token) {
			continue
		}
		if e.words.IsStopWord(vocabulary.ListFilename, token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tags = append(tags, token)
	}

	return head(tags, n)
}

func head(tags []string, n int) []string {
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// isTrimmable matches leading/trailing punctuation and symbols
func isTrimmable(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

// isNumeric reports tokens made only of digits and numeric separators
func isNumeric(token string) bool {
	hasDigit := false
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == '.' || r == ',' || r == '-' || r == '/' || r == ':':
		default:
			return false
		}
	}
	return hasDigit
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
