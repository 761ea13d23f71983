package hqdata

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/calvinalkan/hq/internal/fs"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps the override blob as one row of a key/value table.
//
// The database file is opened on first use and only created by the first
// write; reading from a missing database returns empty overrides.
type SQLiteStore struct {
	fs     fs.FS
	path   string
	db     *sql.DB
	closed bool
}

// NewSQLiteStore returns a [SQLiteStore] backed by the database at path.
// fsys is used to check for the database file and create its directory;
// the database itself is opened by the sqlite driver.
func NewSQLiteStore(fsys fs.FS, path string) *SQLiteStore {
	return &SQLiteStore{fs: fsys, path: path}
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Read implements [Store].
func (s *SQLiteStore) Read() (Overrides, error) {
	db, err := s.open(false)
	if err != nil {
		return Overrides{}, err
	}

	if db == nil {
		return Overrides{}, nil
	}

	var value string

	err = db.QueryRow(`SELECT value FROM kv WHERE key = ?`, OverridesKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Overrides{}, nil
	}

	if err != nil {
		return Overrides{}, fmt.Errorf("read overrides: %w", err)
	}

	return decodeOverrides([]byte(value)), nil
}

// Write implements [Store].
func (s *SQLiteStore) Write(o Overrides) error {
	data, err := encodeOverrides(o)
	if err != nil {
		return err
	}

	db, err := s.open(true)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		OverridesKey, string(data))
	if err != nil {
		return fmt.Errorf("write overrides: %w", err)
	}

	return nil
}

// Clear implements [Store].
func (s *SQLiteStore) Clear() error {
	db, err := s.open(false)
	if err != nil {
		return err
	}

	if db == nil {
		return nil
	}

	_, err = db.Exec(`DELETE FROM kv WHERE key = ?`, OverridesKey)
	if err != nil {
		return fmt.Errorf("clear overrides: %w", err)
	}

	return nil
}

// Close releases the database handle. Further calls fail with [ErrStoreClosed].
func (s *SQLiteStore) Close() error {
	s.closed = true

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	return err
}

// open returns the database handle, opening it if needed. When create is
// false and the database file does not exist, it returns a nil handle.
func (s *SQLiteStore) open(create bool) (*sql.DB, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}

	if s.db != nil {
		return s.db, nil
	}

	if s.path == "" {
		return nil, errors.New("open sqlite: path is empty")
	}

	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat sqlite: %w", err)
	}

	if !exists {
		if !create {
			return nil, nil
		}

		err = s.fs.MkdirAll(filepath.Dir(s.path), dirPerms)
		if err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	err = db.Ping()
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	err = applyPragmas(db)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	_, err = db.Exec(kvSchema)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create kv table: %w", err)
	}

	s.db = db

	return db, nil
}

func applyPragmas(db *sql.DB) error {
	statements := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		if err != nil {
			return fmt.Errorf("apply pragma %q: %w", stmt, err)
		}
	}

	return nil
}
