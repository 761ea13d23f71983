package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvinalkan/hq/internal/hqdata"
	"github.com/calvinalkan/hq/internal/query"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("status", "", "Filter by status (backlog|todo|in-progress|done)")
	fs.String("priority", "", "Filter by priority (P0|P1|P2|P3)")
	fs.String("type", "", "Filter by type (Bug|Enhancement|Task)")
	fs.String("area", "", "Filter by area")
	fs.String("platform", "", "Filter by platform")
	fs.String("assignee", "", "Filter by assignee")
	fs.String("sprint", "", "Filter by sprint ID")
	fs.StringP("query", "q", "", "Match title, ID or description")
	fs.String("sort", "", "Sort by priority|updated|created|id")
	fs.Int("limit", 0, "Maximum issues to show (0 = all)")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List issues",
		Long:  "List issues of the merged dataset, newest first unless --sort is given.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, a, fs)
		},
	}
}

func execLs(io *IO, a *app, fs *flag.FlagSet) error {
	filter, err := issueFilterFromFlags(fs)
	if err != nil {
		return err
	}

	sortKey, _ := fs.GetString("sort")
	if !query.SortKey(sortKey).Valid() {
		return fmt.Errorf("%w for --sort: %s (must be one of %s)", errInvalidValue, sortKey, joinValues(query.SortKeys))
	}

	limit, _ := fs.GetInt("limit")
	if limit < 0 {
		return errors.New("--limit must be non-negative")
	}

	ds, err := a.svc.Merged()
	if err != nil {
		return err
	}

	issues := query.SortIssues(query.FilterIssues(ds.Issues, filter), query.SortKey(sortKey))
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}

	for _, issue := range issues {
		io.Println(formatIssueLine(io, issue))
	}

	return nil
}

func issueFilterFromFlags(fs *flag.FlagSet) (query.IssueFilter, error) {
	status, err := enumFlag(fs, "status", hqdata.Statuses)
	if err != nil {
		return query.IssueFilter{}, err
	}

	priority, err := enumFlag(fs, "priority", hqdata.Priorities)
	if err != nil {
		return query.IssueFilter{}, err
	}

	issueType, err := enumFlag(fs, "type", hqdata.IssueTypes)
	if err != nil {
		return query.IssueFilter{}, err
	}

	area, _ := fs.GetString("area")
	platform, _ := fs.GetString("platform")
	assignee, _ := fs.GetString("assignee")
	sprint, _ := fs.GetString("sprint")
	text, _ := fs.GetString("query")

	return query.IssueFilter{
		Status:   status,
		Priority: priority,
		Type:     issueType,
		Area:     area,
		Platform: platform,
		Assignee: assignee,
		SprintID: sprint,
		Text:     text,
	}, nil
}
