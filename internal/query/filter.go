// Package query filters, sorts, searches and summarises a merged dataset.
//
// All functions are pure: they never modify their input, and filters keep
// the relative order of the elements they return.
package query

import (
	"strings"

	"github.com/calvinalkan/hq/internal/hqdata"
)

// IssueFilter selects issues. Zero-valued fields match everything; set
// fields must all match (conjunction). Text is a case-insensitive substring
// match over title, id and description.
type IssueFilter struct {
	Status   hqdata.Status
	Priority hqdata.Priority
	Type     hqdata.IssueType
	Area     string
	Platform string
	Assignee string
	SprintID string
	Text     string
}

// Match reports whether issue satisfies f.
func (f IssueFilter) Match(issue hqdata.Issue) bool {
	return matchExact(f.Status, issue.Status) &&
		matchExact(f.Priority, issue.Priority) &&
		matchExact(f.Type, issue.Type) &&
		matchExact(f.Area, issue.Area) &&
		matchExact(f.Platform, issue.Platform) &&
		matchExact(f.Assignee, issue.Assignee) &&
		matchExact(f.SprintID, issue.SprintID) &&
		matchText(f.Text, issue.Title, issue.ID, issue.Description)
}

// FilterIssues returns the issues matching f, in input order.
func FilterIssues(issues []hqdata.Issue, f IssueFilter) []hqdata.Issue {
	return filter(issues, f.Match)
}

// ScreenshotFilter selects screenshots. Tag matches when any tag equals it.
// Text matches name, notes or any tag.
type ScreenshotFilter struct {
	Feature  string
	Platform string
	Tag      string
	Text     string
}

// Match reports whether shot satisfies f.
func (f ScreenshotFilter) Match(shot hqdata.Screenshot) bool {
	if f.Tag != "" && !hasTag(shot.Tags, f.Tag) {
		return false
	}

	fields := append([]string{shot.Name, shot.Notes}, shot.Tags...)

	return matchExact(f.Feature, shot.Feature) &&
		matchExact(f.Platform, shot.Platform) &&
		matchText(f.Text, fields...)
}

// FilterScreenshots returns the screenshots matching f, in input order.
func FilterScreenshots(shots []hqdata.Screenshot, f ScreenshotFilter) []hqdata.Screenshot {
	return filter(shots, f.Match)
}

// LinkFilter selects links. Text matches title, notes or url.
type LinkFilter struct {
	Category string
	Type     hqdata.LinkType
	Text     string
}

// Match reports whether link satisfies f.
func (f LinkFilter) Match(link hqdata.Link) bool {
	return matchExact(f.Category, link.Category) &&
		matchExact(f.Type, link.Type) &&
		matchText(f.Text, link.Title, link.Notes, link.URL)
}

// FilterLinks returns the links matching f, in input order.
func FilterLinks(links []hqdata.Link, f LinkFilter) []hqdata.Link {
	return filter(links, f.Match)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

// matchExact treats the zero value of want as "any".
func matchExact[T comparable](want, got T) bool {
	var zero T

	return want == zero || want == got
}

func matchText(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}

	return containsFold(needle, fields...)
}

// containsFold reports whether any field contains needle, ignoring case.
func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}
