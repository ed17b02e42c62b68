// Package state persists the nudocs local state record (state.json).
//
// The file is read-modify-written by sequential CLI invocations; there is
// no locking. A missing or corrupt file reads as empty state.
package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pspdfkit/nudocs"
	"github.com/pspdfkit/nudocs/filesystem"
)

// Store reads and writes a single state file.
type Store struct {
	path string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used by RecordUpload.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns a Store for the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}

// Read returns the persisted state. A missing or unparsable file is
// treated as empty state.
func (s *Store) Read(ctx context.Context) (nudocs.State, error) {
	data, err := filesystem.ReadFile(ctx, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nudocs.State{}, nil
		}
		return nudocs.State{}, fmt.Errorf("read state file: %w", err)
	}

	var st nudocs.State
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("ignoring unreadable state file", "path", s.path, "err", err)
		return nudocs.State{}, nil
	}
	return st, nil
}

// Write replaces the state file, creating its directory (0700) if needed.
func (s *Store) Write(ctx context.Context, st nudocs.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if _, err := filesystem.WriteFile(ctx, s.path, bytes.NewReader(data), 0o600, 0o700); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// LastUpload returns the last upload pointer, or nil if there is none.
func (s *Store) LastUpload(ctx context.Context) (*nudocs.LastUpload, error) {
	st, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return st.LastUpload, nil
}

// RecordUpload overwrites the last upload pointer with ulid and title,
// stamped with the current time.
func (s *Store) RecordUpload(ctx context.Context, ulid, title string) error {
	st, err := s.Read(ctx)
	if err != nil {
		return err
	}

	st.LastUpload = &nudocs.LastUpload{
		ULID:       ulid,
		Title:      title,
		UploadedAt: s.now().UTC(),
	}
	return s.Write(ctx, st)
}

// ClearUploadIfMatches removes the last upload pointer if it references
// ulid. It reports whether the pointer was cleared; otherwise the file is
// left untouched.
func (s *Store) ClearUploadIfMatches(ctx context.Context, ulid string) (bool, error) {
	st, err := s.Read(ctx)
	if err != nil {
		return false, err
	}

	if st.LastUpload == nil || st.LastUpload.ULID != ulid {
		return false, nil
	}

	st.LastUpload = nil
	if err := s.Write(ctx, st); err != nil {
		return false, err
	}
	return true, nil
}
