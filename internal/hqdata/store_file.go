package hqdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/hq/internal/fs"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// FileStore keeps the override blob in a single JSON file.
// The file and its directory are created on the first write.
type FileStore struct {
	fs   fs.FS
	path string
}

// NewFileStore returns a [FileStore] persisting to path.
func NewFileStore(fsys fs.FS, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

// Path returns the file the blob is stored in.
func (s *FileStore) Path() string {
	return s.path
}

// Read implements [Store].
func (s *FileStore) Read() (Overrides, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Overrides{}, nil
		}

		return Overrides{}, fmt.Errorf("read overrides: %w", err)
	}

	return decodeOverrides(data), nil
}

// Write implements [Store].
func (s *FileStore) Write(o Overrides) error {
	data, err := encodeOverrides(o)
	if err != nil {
		return err
	}

	err = s.fs.MkdirAll(filepath.Dir(s.path), dirPerms)
	if err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	err = s.fs.WriteFileAtomic(s.path, data, filePerms)
	if err != nil {
		return fmt.Errorf("write overrides: %w", err)
	}

	return nil
}

// Clear implements [Store].
func (s *FileStore) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear overrides: %w", err)
	}

	return nil
}
