package hqdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/hq/internal/fs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// storeCase builds a fresh store plus a hook that plants raw bytes as the
// persisted blob, bypassing encoding.
type storeCase struct {
	name     string
	newStore func(t *testing.T) (Store, func(raw []byte))
}

func storeCases() []storeCase {
	return []storeCase{
		{
			name: "memory",
			newStore: func(t *testing.T) (Store, func([]byte)) {
				t.Helper()

				s := NewMemoryStore()

				return s, s.SetRaw
			},
		},
		{
			name: "file",
			newStore: func(t *testing.T) (Store, func([]byte)) {
				t.Helper()

				path := filepath.Join(t.TempDir(), "state", "overrides.json")
				s := NewFileStore(fs.NewReal(), path)

				return s, func(raw []byte) {
					require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
					require.NoError(t, os.WriteFile(path, raw, 0o600))
				}
			},
		},
		{
			name: "sqlite",
			newStore: func(t *testing.T) (Store, func([]byte)) {
				t.Helper()

				s := NewSQLiteStore(fs.NewReal(), filepath.Join(t.TempDir(), "state", "overrides.db"))
				t.Cleanup(func() { _ = s.Close() })

				return s, func(raw []byte) {
					db, err := s.open(true)
					require.NoError(t, err)

					_, err = db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, OverridesKey, string(raw))
					require.NoError(t, err)
				}
			},
		},
	}
}

func TestStore_ReadBeforeAnyWriteIsEmpty(t *testing.T) {
	t.Parallel()

	for _, sc := range storeCases() {
		t.Run(sc.name, func(t *testing.T) {
			t.Parallel()

			s, _ := sc.newStore(t)

			o, err := s.Read()
			require.NoError(t, err)

			if !o.IsEmpty() {
				t.Fatalf("overrides=%+v, want empty", o)
			}
		})
	}
}

func TestStore_WriteThenReadRoundTrips(t *testing.T) {
	t.Parallel()

	want := Overrides{
		Issues:      testBaseline().Issues,
		Links:       []Link{},
		ActivityLog: []ActivityEntry{{ID: "a", Action: "x"}},
	}

	for _, sc := range storeCases() {
		t.Run(sc.name, func(t *testing.T) {
			t.Parallel()

			s, _ := sc.newStore(t)

			require.NoError(t, s.Write(want))

			got, err := s.Read()
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("read back (-want +got):\n%s", diff)
			}

			if got.Screenshots != nil || got.Decisions != nil {
				t.Fatalf("absent collections must read back absent: %+v", got)
			}
		})
	}
}

func TestStore_WriteIsFullOverwrite(t *testing.T) {
	t.Parallel()

	for _, sc := range storeCases() {
		t.Run(sc.name, func(t *testing.T) {
			t.Parallel()

			s, _ := sc.newStore(t)

			require.NoError(t, s.Write(Overrides{Links: []Link{{ID: "LNK-0001"}}}))
			require.NoError(t, s.Write(Overrides{Issues: []Issue{}}))

			got, err := s.Read()
			require.NoError(t, err)

			if got.Links != nil {
				t.Fatalf("links=%v survived a full overwrite", got.Links)
			}

			if got.Issues == nil {
				t.Fatal("issues override lost")
			}
		})
	}
}

func TestStore_CorruptBlobReadsAsEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{not json`, `[1,2,3]`, `"string"`, `{"issues": 5}`, ``} {
		for _, sc := range storeCases() {
			t.Run(sc.name+"/"+raw, func(t *testing.T) {
				t.Parallel()

				s, plant := sc.newStore(t)
				plant([]byte(raw))

				o, err := s.Read()
				require.NoError(t, err)

				if !o.IsEmpty() {
					t.Fatalf("overrides=%+v, want empty", o)
				}
			})
		}
	}
}

func TestStore_ClearRemovesBlobAndToleratesMissing(t *testing.T) {
	t.Parallel()

	for _, sc := range storeCases() {
		t.Run(sc.name, func(t *testing.T) {
			t.Parallel()

			s, _ := sc.newStore(t)

			require.NoError(t, s.Clear(), "clear before any write")

			require.NoError(t, s.Write(Overrides{Issues: []Issue{}}))
			require.NoError(t, s.Clear())

			o, err := s.Read()
			require.NoError(t, err)

			if !o.IsEmpty() {
				t.Fatalf("overrides=%+v after clear, want empty", o)
			}
		})
	}
}

func TestFileStore_CreatedLazilyOnFirstWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".hq", "overrides.json")
	s := NewFileStore(fs.NewReal(), path)

	_, err := s.Read()
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	if _, err := os.Stat(filepath.Dir(path)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("state dir created before first write: %v", err)
	}

	require.NoError(t, s.Write(Overrides{Issues: []Issue{}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	if got, want := string(data), `{"issues":[]}`; got != want {
		t.Fatalf("blob=%s, want=%s", got, want)
	}
}

func TestFileStore_FailedWriteKeepsPreviousBlob(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFaulty(fs.NewReal())
	path := filepath.Join(t.TempDir(), "overrides.json")
	s := NewFileStore(faulty, path)

	require.NoError(t, s.Write(Overrides{Links: []Link{{ID: "LNK-0001"}}}))

	faulty.Fail(fs.OpWriteFileAtomic, nil)

	err := s.Write(Overrides{})
	if !fs.IsInjected(err) {
		t.Fatalf("err=%v, want injected failure", err)
	}

	faulty.Heal()

	o, err := s.Read()
	require.NoError(t, err)

	if got, want := len(o.Links), 1; got != want {
		t.Fatalf("links=%d, want=%d (previous blob)", got, want)
	}
}

func TestFileStore_ReadErrorIsReported(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFaulty(fs.NewReal())
	faulty.Fail(fs.OpReadFile, nil)

	s := NewFileStore(faulty, filepath.Join(t.TempDir(), "overrides.json"))

	_, err := s.Read()
	if !errors.Is(err, fs.ErrInjected) {
		t.Fatalf("err=%v, want ErrInjected", err)
	}
}

func TestSQLiteStore_ReadDoesNotCreateDatabase(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "overrides.db")
	s := NewSQLiteStore(fs.NewReal(), path)

	_, err := s.Read()
	require.NoError(t, err)

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("database created by read: %v", err)
	}

	require.NoError(t, s.Close())

	_, err = s.Read()
	if !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("err=%v after close, want ErrStoreClosed", err)
	}
}

func TestSQLiteStore_PersistsAcrossHandles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "overrides.db")

	first := NewSQLiteStore(fs.NewReal(), path)
	require.NoError(t, first.Write(Overrides{Decisions: []Decision{{ID: "DEC-0001"}}}))
	require.NoError(t, first.Close())

	second := NewSQLiteStore(fs.NewReal(), path)
	t.Cleanup(func() { _ = second.Close() })

	o, err := second.Read()
	require.NoError(t, err)

	if got, want := len(o.Decisions), 1; got != want {
		t.Fatalf("decisions=%d, want=%d", got, want)
	}
}

func TestSQLiteStore_FilesystemFailuresAreReported(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFaulty(fs.NewReal())
	path := filepath.Join(t.TempDir(), "state", "overrides.db")

	s := NewSQLiteStore(faulty, path)
	t.Cleanup(func() { _ = s.Close() })

	faulty.Fail(fs.OpMkdirAll, nil)

	err := s.Write(Overrides{Issues: []Issue{}})
	if !fs.IsInjected(err) {
		t.Fatalf("write err=%v, want injected failure", err)
	}

	if _, err := os.Stat(filepath.Dir(path)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("state dir created despite failed mkdir: %v", err)
	}

	faulty.Heal()
	faulty.Fail(fs.OpExists, nil)

	_, err = s.Read()
	if !errors.Is(err, fs.ErrInjected) {
		t.Fatalf("read err=%v, want ErrInjected", err)
	}

	faulty.Heal()

	require.NoError(t, s.Write(Overrides{Issues: []Issue{}}))

	o, err := s.Read()
	require.NoError(t, err)

	if o.Issues == nil {
		t.Fatal("issues=nil, want present empty collection")
	}
}
