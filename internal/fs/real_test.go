package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// =============================================================================
// Real FS Tests
//
// These tests verify our Real implementation's helper methods work correctly.
// We're NOT testing os.ReadFile, os.Remove etc (that's Go's job).
// We ARE testing:
//   - Exists() - our convenience method
//   - WriteFileAtomic() - our atomic write wrapper
// =============================================================================

// TestReal_Exists_ReturnsFalseForNonExistent verifies that Exists() returns
// (false, nil) for files that don't exist - not an error.
func TestReal_Exists_ReturnsFalseForNonExistent(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(dir, "does-not-exist.txt"))

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, false; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

func TestReal_Exists_ReturnsTrueForFileAndDirectory(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "exists.txt")

	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for _, p := range []string{path, dir} {
		exists, err := fs.Exists(p)
		if err != nil {
			t.Fatalf("Exists(%s) err=%v", p, err)
		}

		if !exists {
			t.Fatalf("Exists(%s)=false, want true", p)
		}
	}
}

func TestReal_WriteFileAtomic_CreatesFileWithPerm(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	err := fs.WriteFileAtomic(path, []byte("hello"), 0o640)
	if err != nil {
		t.Fatalf("WriteFileAtomic err=%v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile err=%v", err)
	}

	if got, want := string(data), "hello"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat err=%v", err)
	}

	if got, want := info.Mode().Perm(), os.FileMode(0o640); got != want {
		t.Fatalf("perm=%v, want=%v", got, want)
	}
}

// TestReal_WriteFileAtomic_OverwritesExisting verifies atomic write overwrites.
func TestReal_WriteFileAtomic_OverwritesExisting(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	if err := fs.WriteFileAtomic(path, []byte("first"), 0o600); err != nil {
		t.Fatalf("first write: %v", err)
	}

	if err := fs.WriteFileAtomic(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, _ := os.ReadFile(path)
	if got, want := string(data), "second"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

// TestReal_WriteFileAtomic_NoTempFileLeftOnSuccess verifies no temp files
// are left behind after successful write.
func TestReal_WriteFileAtomic_NoTempFileLeftOnSuccess(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	if err := fs.WriteFileAtomic(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if got, want := len(entries), 1; got != want {
		t.Fatalf("entries=%d, want=%d (%v)", got, want, entries)
	}
}

// TestReal_WriteFileAtomic_ConcurrentWritesSafe verifies concurrent atomic
// writes never leave a torn file: the result is exactly one of the inputs.
func TestReal_WriteFileAtomic_ConcurrentWritesSafe(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	payloads := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc", "dddddddddd"}

	var wg sync.WaitGroup

	for _, p := range payloads {
		wg.Add(1)

		go func(content string) {
			defer wg.Done()

			_ = fs.WriteFileAtomic(path, []byte(content), 0o600)
		}(p)
	}

	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	for _, p := range payloads {
		if string(data) == p {
			return
		}
	}

	t.Fatalf("content=%q is not one of the written payloads", data)
}
