package query

import (
	"strings"
	"unicode/utf8"

	"github.com/calvinalkan/hq/internal/hqdata"
)

// Search limits.
const (
	MinSearchLength  = 2
	MaxSearchResults = 20
)

// Kind names the collection a [SearchResult] came from.
type Kind string

// Result kinds.
const (
	KindIssue      Kind = "issue"
	KindScreenshot Kind = "screenshot"
	KindLink       Kind = "link"
)

// SearchResult is one cross-collection match.
type SearchResult struct {
	Kind     Kind
	ID       string
	Title    string
	Subtitle string
}

// Search matches q case-insensitively against issues (title, description),
// screenshots (name, tags) and links (title, notes), in that order.
//
// Queries shorter than [MinSearchLength] characters return nothing. Results are
// concatenated in collection order and then cut to [MaxSearchResults], so
// a query matching many issues can crowd out screenshots and links.
func Search(ds hqdata.Dataset, q string) []SearchResult {
	if utf8.RuneCountInString(q) < MinSearchLength {
		return nil
	}

	var results []SearchResult

	for _, issue := range ds.Issues {
		if containsFold(q, issue.Title, issue.Description) {
			results = append(results, SearchResult{
				Kind:     KindIssue,
				ID:       issue.ID,
				Title:    issue.Title,
				Subtitle: string(issue.Status) + " · " + issue.Area,
			})
		}
	}

	for _, shot := range ds.Screenshots {
		if containsFold(q, append([]string{shot.Name}, shot.Tags...)...) {
			results = append(results, SearchResult{
				Kind:     KindScreenshot,
				ID:       shot.ID,
				Title:    shot.Name,
				Subtitle: shot.Feature,
			})
		}
	}

	for _, link := range ds.Links {
		if containsFold(q, link.Title, link.Notes) {
			results = append(results, SearchResult{
				Kind:     KindLink,
				ID:       link.ID,
				Title:    link.Title,
				Subtitle: link.URL,
			})
		}
	}

	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}

	return results
}

// TrimQuery normalises user input before [Search]; surrounding whitespace
// does not count towards the minimum length.
func TrimQuery(q string) string {
	return strings.TrimSpace(q)
}
