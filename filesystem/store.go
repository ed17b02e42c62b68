// Package filesystem writes local files atomically using a temp file and a
// rename, so a reader never sees a partially written state file or export.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveResult describes a completed write.
type SaveResult struct {
	Path         string
	BytesWritten int64
	SHA256       string
}

// Store provides file operations confined to a root directory.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Read returns the contents of path. A missing file yields an error
// matching os.ErrNotExist.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(&ctxReader{ctx: ctx, r: f})
}

// Write atomically replaces path with content. Existing files are
// overwritten. The returned SaveResult carries the byte count and the
// SHA256 of what was written.
func (s *Store) Write(ctx context.Context, path string, content io.Reader, perm os.FileMode) (SaveResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return SaveResult{}, ctxErr
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.OpenFile(tmpFile, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
	if createErr != nil {
		return SaveResult{}, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	h := sha256.New()
	w := io.MultiWriter(h, t)

	n, err := io.Copy(w, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return SaveResult{}, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return SaveResult{}, fmt.Errorf("could not sync written file: %w", err)
	}
	if err := t.Close(); err != nil {
		return SaveResult{}, fmt.Errorf("could not close written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, path); renameErr != nil {
		return SaveResult{}, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return SaveResult{
		Path:         path,
		BytesWritten: n,
		SHA256:       hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// WriteFile atomically writes content to path, creating the parent
// directory with dirPerm when it does not exist.
func WriteFile(ctx context.Context, path string, content io.Reader, perm, dirPerm os.FileMode) (SaveResult, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return SaveResult{}, fmt.Errorf("create directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return SaveResult{}, fmt.Errorf("open directory: %w", err)
	}
	defer func() { _ = root.Close() }()

	result, err := NewFileStorage(root).Write(ctx, filepath.Base(path), content, perm)
	if err != nil {
		return SaveResult{}, err
	}
	result.Path = path
	return result, nil
}

// ReadFile reads path through a Store rooted at its directory.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()

	return NewFileStorage(root).Read(ctx, filepath.Base(path))
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
