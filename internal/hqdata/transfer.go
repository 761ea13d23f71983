package hqdata

import (
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
)

// overridableKeys are the top-level collections an import replaces.
var overridableKeys = []string{"issues", "screenshots", "links", "decisions", "activityLog"}

// Export returns the merged dataset as indented JSON, suitable for [Service.Import].
func (s *Service) Export() (string, error) {
	ds, err := s.Merged()
	if err != nil {
		return "", err
	}

	return EncodeDataset(ds)
}

// EncodeDataset renders ds as 2-space indented JSON with a trailing newline.
func EncodeDataset(ds Dataset) (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}

	return string(data) + "\n", nil
}

// Import replaces the issues, screenshots, links, decisions and activityLog
// overrides with the collections in text, which must be a dataset document
// as produced by [Service.Export].
//
// Import is all-or-nothing: if text does not parse or fails validation, the
// returned error wraps [ErrImportInvalid] and nothing is written.
func (s *Service) Import(text string) error {
	ds, err := ParseImport(text)
	if err != nil {
		return err
	}

	return s.store.Write(Overrides{
		Issues:      ds.Issues,
		Screenshots: ds.Screenshots,
		Links:       ds.Links,
		Decisions:   ds.Decisions,
		ActivityLog: ds.ActivityLog,
	})
}

// ParseImport parses and validates an import payload without applying it.
func ParseImport(text string) (Dataset, error) {
	standardized, err := hujson.Standardize([]byte(text))
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrImportInvalid, err)
	}

	var raw map[string]json.RawMessage

	err = json.Unmarshal(standardized, &raw)
	if err != nil || raw == nil {
		return Dataset{}, fmt.Errorf("%w: not a dataset object", ErrImportInvalid)
	}

	for _, key := range overridableKeys {
		value, ok := raw[key]
		if !ok {
			return Dataset{}, fmt.Errorf("%w: missing %q", ErrImportInvalid, key)
		}

		var items []json.RawMessage

		if json.Unmarshal(value, &items) != nil || items == nil {
			return Dataset{}, fmt.Errorf("%w: %q must be an array", ErrImportInvalid, key)
		}
	}

	var ds Dataset

	err = json.Unmarshal(standardized, &ds)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrImportInvalid, err)
	}

	err = validateImport(ds)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrImportInvalid, err)
	}

	return normalize(ds), nil
}

func validateImport(ds Dataset) error {
	checks := []struct {
		name string
		ids  []string
	}{
		{"issues", issueIDs(ds.Issues)},
		{"screenshots", screenshotIDs(ds.Screenshots)},
		{"links", linkIDs(ds.Links)},
		{"decisions", decisionIDs(ds.Decisions)},
		{"activityLog", activityIDs(ds.ActivityLog)},
	}

	for _, check := range checks {
		err := uniqueIDs(check.name, check.ids)
		if err != nil {
			return err
		}
	}

	for _, issue := range ds.Issues {
		if !issue.Type.Valid() {
			return fmt.Errorf("issue %s: invalid type %q", issue.ID, issue.Type)
		}

		if !issue.Priority.Valid() {
			return fmt.Errorf("issue %s: invalid priority %q", issue.ID, issue.Priority)
		}

		if !issue.Status.Valid() {
			return fmt.Errorf("issue %s: invalid status %q", issue.ID, issue.Status)
		}
	}

	for _, link := range ds.Links {
		if !link.Type.Valid() {
			return fmt.Errorf("link %s: invalid type %q", link.ID, link.Type)
		}
	}

	return nil
}

func uniqueIDs(collection string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%s: record without id", collection)
		}

		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: duplicate id %s", collection, id)
		}

		seen[id] = struct{}{}
	}

	return nil
}

func decisionIDs(decisions []Decision) []string {
	ids := make([]string, len(decisions))
	for i, d := range decisions {
		ids[i] = d.ID
	}

	return ids
}

func activityIDs(entries []ActivityEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	return ids
}
