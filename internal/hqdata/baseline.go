package hqdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/calvinalkan/hq/internal/fs"

	"github.com/tailscale/hujson"
)

//go:embed baseline.json
var bundledBaseline []byte

// LoadBaseline returns the bundled baseline dataset.
//
// Each call decodes a fresh copy, so callers may modify the result freely.
// It panics if the bundled document is invalid, which is a build defect.
func LoadBaseline() Dataset {
	ds, err := DecodeDataset(bundledBaseline)
	if err != nil {
		panic(fmt.Sprintf("hqdata: bundled baseline: %v", err))
	}

	return ds
}

// LoadBaselineFile reads a baseline dataset from path. The file may be JSONC
// (comments and trailing commas are allowed).
func LoadBaselineFile(fsys fs.FS, path string) (Dataset, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read baseline: %w", err)
	}

	ds, err := DecodeDataset(data)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w %s: %w", ErrBaselineInvalid, path, err)
	}

	return ds, nil
}

// DecodeDataset parses a JSON or JSONC dataset document.
// Missing collections decode as empty, never nil.
func DecodeDataset(data []byte) (Dataset, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Dataset{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var ds Dataset

	err = json.Unmarshal(standardized, &ds)
	if err != nil {
		return Dataset{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return normalize(ds), nil
}

// normalize replaces nil collections with empty ones so a dataset always
// exports every collection as an array.
func normalize(ds Dataset) Dataset {
	ds.Issues = orEmpty(ds.Issues)
	ds.Screenshots = orEmpty(ds.Screenshots)
	ds.Links = orEmpty(ds.Links)
	ds.Decisions = orEmpty(ds.Decisions)
	ds.ActivityLog = orEmpty(ds.ActivityLog)
	ds.Builds = orEmpty(ds.Builds)
	ds.Sprints = orEmpty(ds.Sprints)
	ds.MarketplaceCategories = orEmpty(ds.MarketplaceCategories)
	ds.QuickLinks = orEmpty(ds.QuickLinks)
	ds.RecentChanges = orEmpty(ds.RecentChanges)

	for i := range ds.Screenshots {
		ds.Screenshots[i].Tags = orEmpty(ds.Screenshots[i].Tags)
	}

	return ds
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
