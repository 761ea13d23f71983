package query

import (
	"slices"

	"github.com/calvinalkan/hq/internal/hqdata"
)

// Stats summarises an issues collection.
//
// ByStatus, ByPriority and ByType always hold every known key, zero counts
// included. Issues with unknown values are counted under their raw value.
type Stats struct {
	Total      int
	ByStatus   map[hqdata.Status]int
	ByPriority map[hqdata.Priority]int
	ByType     map[hqdata.IssueType]int
}

// Open returns the number of issues not yet done.
func (s Stats) Open() int {
	return s.Total - s.ByStatus[hqdata.StatusDone]
}

// IssueStats counts issues with a full scan. Nothing is cached, so the
// result always reflects the collection passed in.
func IssueStats(issues []hqdata.Issue) Stats {
	stats := Stats{
		Total:      len(issues),
		ByStatus:   make(map[hqdata.Status]int, len(hqdata.Statuses)),
		ByPriority: make(map[hqdata.Priority]int, len(hqdata.Priorities)),
		ByType:     make(map[hqdata.IssueType]int, len(hqdata.IssueTypes)),
	}

	for _, s := range hqdata.Statuses {
		stats.ByStatus[s] = 0
	}

	for _, p := range hqdata.Priorities {
		stats.ByPriority[p] = 0
	}

	for _, t := range hqdata.IssueTypes {
		stats.ByType[t] = 0
	}

	for _, issue := range issues {
		stats.ByStatus[issue.Status]++
		stats.ByPriority[issue.Priority]++
		stats.ByType[issue.Type]++
	}

	return stats
}

// Distinct returns the sorted, de-duplicated, non-empty values of key over items.
func Distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{})

	var out []string

	for _, item := range items {
		v := key(item)
		if v == "" {
			continue
		}

		if _, dup := seen[v]; dup {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	slices.Sort(out)

	return out
}

// LinkGroup is the links of one category.
type LinkGroup struct {
	Category string
	Links    []hqdata.Link
}

// GroupLinks groups links by category. Groups appear in the order their
// category is first seen; links keep their input order within a group.
func GroupLinks(links []hqdata.Link) []LinkGroup {
	var groups []LinkGroup

	index := make(map[string]int)

	for _, link := range links {
		i, ok := index[link.Category]
		if !ok {
			i = len(groups)
			index[link.Category] = i
			groups = append(groups, LinkGroup{Category: link.Category})
		}

		groups[i].Links = append(groups[i].Links, link)
	}

	return groups
}
