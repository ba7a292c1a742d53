package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	// ErrNotFound means the entity id has no metadata row
	ErrNotFound = errors.New("not found")

	// ErrConflict means a folder or tag name is already taken
	ErrConflict = errors.New("already exists")

	// ErrValidation means a required input is missing or malformed
	ErrValidation = errors.New("validation failed")

	// ErrFileMissing means the metadata row exists but no physical file could be resolved.
	// Never conflate with ErrNotFound.
	ErrFileMissing = errors.New("file missing")

	// ErrStorageWrite means an upload or delete failed at the filesystem layer
	ErrStorageWrite = errors.New("storage write failed")
)

// ConflictError represents a name conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // folder or tag
	ResourceID   int64  // ID of the existing resource, 0 if unknown
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
