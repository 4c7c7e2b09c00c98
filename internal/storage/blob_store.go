// Package storage persists uploaded blobs on the local filesystem. A
// blob is written in two phases: staged to a temp file in the target
// directory, then renamed into place once its database row committed.
// The rename is atomic on the same filesystem, so a stored name either
// refers to a complete blob or to nothing.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrBlobNotFound is returned when a stored name has no blob on disk.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore manages one directory of stored blobs.
type BlobStore struct {
	dir string
}

// NewBlobStore creates the directory if needed and returns a store.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *BlobStore) Dir() string {
	return s.dir
}

// Path returns the on-disk path for a stored name.
func (s *BlobStore) Path(storedName string) string {
	return filepath.Join(s.dir, storedName)
}

// StagedBlob is a blob written to a temp file but not yet published
// under its final name.
type StagedBlob struct {
	store    *BlobStore
	tempPath string
	done     bool
}

// Stage copies r to a temp file inside the store directory. The temp
// file lives on the same filesystem as its final location, so Commit
// can rename it atomically.
func (s *BlobStore) Stage(r io.Reader) (*StagedBlob, error) {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp blob: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing temp blob: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("closing temp blob: %w", err)
	}

	return &StagedBlob{store: s, tempPath: tmp.Name()}, nil
}

// Commit renames the staged blob to its final stored name.
func (b *StagedBlob) Commit(storedName string) error {
	if b.done {
		return errors.New("staged blob already finished")
	}
	if filepath.Base(storedName) != storedName || storedName == "" {
		return fmt.Errorf("invalid stored name %q", storedName)
	}

	if err := os.Rename(b.tempPath, b.store.Path(storedName)); err != nil {
		return fmt.Errorf("publishing blob: %w", err)
	}
	b.done = true
	return nil
}

// Discard removes a staged blob that will not be committed. Safe to
// defer after a successful Commit.
func (b *StagedBlob) Discard() {
	if b.done {
		return
	}
	os.Remove(b.tempPath)
	b.done = true
}

// Open opens a stored blob for reading along with its size.
func (s *BlobStore) Open(storedName string) (*os.File, int64, error) {
	if filepath.Base(storedName) != storedName || storedName == "" {
		return nil, 0, ErrBlobNotFound
	}

	f, err := os.Open(s.Path(storedName))
	if os.IsNotExist(err) {
		return nil, 0, ErrBlobNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("opening blob: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat blob: %w", err)
	}

	return f, info.Size(), nil
}

// Remove deletes a stored blob. A missing blob is not an error.
func (s *BlobStore) Remove(storedName string) error {
	if filepath.Base(storedName) != storedName || storedName == "" {
		return nil
	}
	if err := os.Remove(s.Path(storedName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}
