package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"sync"
)

// Op names an [FS] operation that [Faulty] can fail.
type Op string

// Operations that can be failed.
const (
	OpReadFile        Op = "read"
	OpWriteFileAtomic Op = "write"
	OpMkdirAll        Op = "mkdir"
	OpExists          Op = "exists"
	OpRemove          Op = "remove"
)

// ErrInjected is the default error returned by a failed [Faulty] operation.
var ErrInjected = errors.New("injected fault")

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Op  Op
	Err error
}

// Error returns the underlying error's message prefixed with the operation.
func (e *InjectedError) Error() string {
	return string(e.Op) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Faulty wraps an [FS] and fails selected operations on demand.
// Operations that are not failed pass through to the wrapped FS.
//
// Safe for concurrent use.
type Faulty struct {
	base FS

	mu    sync.Mutex
	fails map[Op]error
	calls map[Op]int
}

// NewFaulty returns a [Faulty] wrapping base with no faults armed.
func NewFaulty(base FS) *Faulty {
	return &Faulty{
		base:  base,
		fails: make(map[Op]error),
		calls: make(map[Op]int),
	}
}

// Fail arms op to return err (or [ErrInjected] if err is nil) until [Faulty.Heal].
func (f *Faulty) Fail(op Op, err error) {
	if err == nil {
		err = ErrInjected
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.fails[op] = err
}

// Heal disarms every fault.
func (f *Faulty) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.fails)
}

// Calls returns how many times op was invoked, failed or not.
func (f *Faulty) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[op]
}

func (f *Faulty) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++

	err, armed := f.fails[op]
	if !armed {
		return nil
	}

	return &iofs.PathError{Op: string(op), Path: path, Err: &InjectedError{Op: op, Err: err}}
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.base.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.check(OpWriteFileAtomic, path); err != nil {
		return err
	}

	return f.base.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}

	return f.base.MkdirAll(path, perm)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(OpExists, path); err != nil {
		return false, err
	}

	return f.base.Exists(path)
}

func (f *Faulty) Remove(path string) error {
	if err := f.check(OpRemove, path); err != nil {
		return err
	}

	return f.base.Remove(path)
}
