package hqdata

import "fmt"

// Identifier prefixes per collection.
const (
	IssuePrefix      = "ISS-"
	ScreenshotPrefix = "SS-"
	LinkPrefix       = "LNK-"
)

const idDigits = 4

// FormatID formats a sequential identifier, e.g. FormatID("ISS-", 7) = "ISS-0007".
func FormatID(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, idDigits, n)
}

// nextID returns the identifier for a record appended to a collection that
// currently holds the given ids: the count plus one, advanced past any
// identifier already in use. Deletes shrink the count, so the first
// candidate can collide with a surviving record.
func nextID(prefix string, ids []string) string {
	taken := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		taken[id] = struct{}{}
	}

	n := len(ids) + 1
	for {
		candidate := FormatID(prefix, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}

		n++
	}
}

func issueIDs(issues []Issue) []string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}

	return ids
}

func screenshotIDs(shots []Screenshot) []string {
	ids := make([]string, len(shots))
	for i, shot := range shots {
		ids[i] = shot.ID
	}

	return ids
}

func linkIDs(links []Link) []string {
	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.ID
	}

	return ids
}
