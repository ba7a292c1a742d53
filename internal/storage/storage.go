// Package storage holds the byte-store abstraction for PDF content.
package storage

import (
	"context"
	"io"
	"io/fs"
)

// ByteStore is the contract the library needs from the filesystem.
// Paths are absolute; deciding which path to use is the path resolver's job.
type ByteStore interface {
	// Write streams r to path and returns the number of bytes written.
	// On error no file is left at path.
	Write(ctx context.Context, path string, r io.Reader) (int64, error)

	// Remove deletes the file at path
	Remove(path string) error

	// Stat describes the file at path
	Stat(path string) (fs.FileInfo, error)

	// Open opens the file at path for reading
	Open(path string) (io.ReadSeekCloser, error)
}
