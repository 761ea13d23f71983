// Package fs provides the filesystem abstraction used by hq's file-backed
// stores, so tests can swap in fault injection.
//
// The main types are:
//   - [FS]: interface for the filesystem operations hq needs
//   - [Real]: production implementation using [os] and atomic writes
//   - [Faulty]: testing implementation that fails selected operations
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile("baseline.json")
//	if err != nil {
//	    return err
//	}
package fs

import (
	"os"
)

// FS defines filesystem operations for reading, writing, and removing files.
//
// All methods mirror their [os] package equivalents but can be intercepted
// for testing with fault injection.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never observe a partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error
}

// Compile-time interface checks.
var (
	_ FS = (*Real)(nil)
	_ FS = (*Faulty)(nil)
)
