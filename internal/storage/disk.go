package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// DiskStore implements ByteStore on the local filesystem.
// Writes go to a temp file in the target directory and are renamed into place,
// so a failed upload never leaves a partial file behind.
type DiskStore struct {
	chunkSize int
	fileMode  os.FileMode
}

// NewDiskStore creates a disk store that copies uploads in chunkSize pieces
func NewDiskStore(chunkSize int) *DiskStore {
	if chunkSize <= 0 {
		chunkSize = 1 << 20
	}
	return &DiskStore{
		chunkSize: chunkSize,
		fileMode:  0o644,
	}
}

// Write streams r to path in fixed-size chunks
func (s *DiskStore) Write(ctx context.Context, path string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create upload directory: %w", err)
	}

	src := &chunkReader{ctx: ctx, r: r, size: s.chunkSize}
	if err := atomic.WriteFile(path, src); err != nil {
		// atomic flattens the copy error to text; prefer the source's own error
		if src.err != nil {
			err = src.err
		}
		return src.n, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	// atomic.WriteFile leaves new files with temp-file permissions
	if err := os.Chmod(path, s.fileMode); err != nil {
		_ = os.Remove(path)
		return src.n, fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}

	return src.n, nil
}

// Remove deletes the file at path
func (s *DiskStore) Remove(path string) error {
	return os.Remove(path)
}

// Stat describes the file at path
func (s *DiskStore) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Open opens the file at path for reading
func (s *DiskStore) Open(path string) (io.ReadSeekCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// chunkReader copies its source in fixed-size chunks and stops when the
// context is cancelled. Implementing WriterTo makes io.Copy use our buffer
// size instead of its own.
type chunkReader struct {
	ctx  context.Context
	r    io.Reader
	size int
	n    int64
	err  error // first non-EOF error seen
}

func (c *chunkReader) fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return err
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, c.fail(err)
	}
	if len(p) > c.size {
		p = p[:c.size]
	}
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && err != io.EOF {
		c.fail(err)
	}
	return n, err
}

func (c *chunkReader) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, c.size)
	var written int64
	for {
		if err := c.ctx.Err(); err != nil {
			return written, c.fail(err)
		}
		n, readErr := io.ReadFull(c.r, buf)
		if n > 0 {
			m, writeErr := w.Write(buf[:n])
			written += int64(m)
			c.n += int64(m)
			if writeErr != nil {
				return written, c.fail(writeErr)
			}
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return written, nil
		}
		if readErr != nil {
			return written, c.fail(readErr)
		}
	}
}
