package query

import (
	"cmp"
	"slices"

	"github.com/calvinalkan/hq/internal/hqdata"
)

// SortKey names an issue ordering.
type SortKey string

// Sort keys.
const (
	SortNone     SortKey = ""
	SortPriority SortKey = "priority"
	SortUpdated  SortKey = "updated"
	SortCreated  SortKey = "created"
	SortID       SortKey = "id"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortPriority, SortUpdated, SortCreated, SortID}

// Valid reports whether k is a known sort key (or none).
func (k SortKey) Valid() bool {
	return k == SortNone || slices.Contains(SortKeys, k)
}

// SortIssues returns a sorted copy of issues. The sort is stable, so ties
// keep their input order. Priority sorts P0 first; updated and created sort
// newest first; id sorts ascending. [SortNone] returns an unsorted copy.
func SortIssues(issues []hqdata.Issue, key SortKey) []hqdata.Issue {
	out := slices.Clone(issues)

	var compare func(a, b hqdata.Issue) int

	switch key {
	case SortPriority:
		compare = func(a, b hqdata.Issue) int { return cmp.Compare(priorityRank(a.Priority), priorityRank(b.Priority)) }
	case SortUpdated:
		compare = func(a, b hqdata.Issue) int { return cmp.Compare(b.UpdatedAt, a.UpdatedAt) }
	case SortCreated:
		compare = func(a, b hqdata.Issue) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	case SortID:
		compare = func(a, b hqdata.Issue) int { return cmp.Compare(a.ID, b.ID) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)

	return out
}

func priorityRank(p hqdata.Priority) int {
	if i := slices.Index(hqdata.Priorities, p); i >= 0 {
		return i
	}

	return len(hqdata.Priorities)
}
