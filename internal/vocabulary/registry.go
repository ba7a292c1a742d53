// Package vocabulary holds the fixed word lists used by tag extraction.
package vocabulary

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry serves the embedded stop-word lists
type Registry struct {
	lists map[List]map[string]struct{}
	mu    sync.RWMutex
}

// NewRegistry creates a registry and loads every embedded list
func NewRegistry() (*Registry, error) {
	r := &Registry{
		lists: make(map[List]map[string]struct{}),
	}

	for _, list := range []List{ListText, ListFilename} {
		if err := r.loadListFile(list); err != nil {
			return nil, fmt.Errorf("failed to load %s stop words: %w", list, err)
		}
	}

	return r, nil
}

// MustNewRegistry is NewRegistry for callers that treat a broken embed as a programming error
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// loadListFile loads one list's YAML file
func (r *Registry) loadListFile(list List) error {
	filename := fmt.Sprintf("config/%s.yaml", list)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var parsed StopWords
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	if parsed.Name != list {
		return fmt.Errorf("%s declares list %q", filename, parsed.Name)
	}

	words := make(map[string]struct{}, len(parsed.Words))
	for _, w := range parsed.Words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words[w] = struct{}{}
		}
	}

	r.mu.Lock()
	r.lists[list] = words
	r.mu.Unlock()

	return nil
}

// IsStopWord reports whether word (already lowercased) is in the list
func (r *Registry) IsStopWord(list List, word string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.lists[list][word]
	return ok
}

// Words returns a list's words in sorted order
func (r *Registry) Words(list List) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	words, ok := r.lists[list]
	if !ok {
		return nil, fmt.Errorf("unknown stop-word list: %s", list)
	}

	out := make([]string, 0, len(words))
	for w := range words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}
