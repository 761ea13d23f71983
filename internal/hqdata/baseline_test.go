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

func TestLoadBaseline_BundledDatasetIsComplete(t *testing.T) {
	t.Parallel()

	ds := LoadBaseline()

	if ds.Meta.ProjectName == "" {
		t.Fatal("meta.projectName empty")
	}

	for name, n := range map[string]int{
		"issues":                len(ds.Issues),
		"screenshots":           len(ds.Screenshots),
		"links":                 len(ds.Links),
		"decisions":             len(ds.Decisions),
		"activityLog":           len(ds.ActivityLog),
		"builds":                len(ds.Builds),
		"sprints":               len(ds.Sprints),
		"marketplaceCategories": len(ds.MarketplaceCategories),
		"quickLinks":            len(ds.QuickLinks),
		"recentChanges":         len(ds.RecentChanges),
	} {
		if n == 0 {
			t.Errorf("bundled %s is empty", name)
		}
	}

	require.NoError(t, validateImport(ds), "bundled baseline must satisfy import validation")
}

func TestLoadBaseline_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	first := LoadBaseline()
	first.Issues[0].Title = "scribbled"
	first.Meta.ProjectName = "scribbled"

	second := LoadBaseline()

	if second.Issues[0].Title == "scribbled" || second.Meta.ProjectName == "scribbled" {
		t.Fatal("LoadBaseline returned shared state")
	}
}

func TestDecodeDataset_MissingCollectionsAreEmpty(t *testing.T) {
	t.Parallel()

	ds, err := DecodeDataset([]byte(`{"meta": {"projectName": "bare"}, "screenshots": [{"id": "SS-0001"}]}`))
	require.NoError(t, err)

	if ds.Issues == nil || ds.Links == nil || ds.ActivityLog == nil || ds.Builds == nil || ds.RecentChanges == nil {
		t.Fatalf("nil collection after decode: %+v", ds)
	}

	if diff := cmp.Diff([]string{}, ds.Screenshots[0].Tags); diff != "" {
		t.Fatalf("screenshot tags (-want +got):\n%s", diff)
	}
}

func TestLoadBaselineFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{
		// comment
		"meta": {"projectName": "From file"},
		"issues": [{"id": "ISS-0001", "title": "One"},],
	}`), 0o600))

	ds, err := LoadBaselineFile(fs.NewReal(), good)
	require.NoError(t, err)

	if got, want := ds.Meta.ProjectName, "From file"; got != want {
		t.Fatalf("projectName=%q, want=%q", got, want)
	}

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"issues": "nope"}`), 0o600))

	_, err = LoadBaselineFile(fs.NewReal(), bad)
	if !errors.Is(err, ErrBaselineInvalid) {
		t.Fatalf("err=%v, want ErrBaselineInvalid", err)
	}

	_, err = LoadBaselineFile(fs.NewReal(), filepath.Join(dir, "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want os.ErrNotExist", err)
	}
}
