package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/calvinalkan/hq/internal/hqdata"

	flag "github.com/spf13/pflag"
)

// Defaults for issues created without explicit type, priority or status.
const (
	defaultIssueType = hqdata.TypeBug
	defaultPriority  = hqdata.P2
	defaultStatus    = hqdata.StatusBacklog
)

// CreateCmd returns the create command.
func CreateCmd(a *app) *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	addIssueFlags(fs, true)

	return &Command{
		Flags:  fs,
		Usage:  "create <title> -a <area> [flags]",
		Writes: true,
		Short:  "Create issue",
		Long: `Create a new issue and print its ID.

The issue is prepended to the issue list. Severity is derived from priority
(P0/P1 high, P2 medium, P3 low) and cannot be set directly.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execCreate(io, a, fs, args)
		},
	}
}

// addIssueFlags registers the editable issue fields. Create gets defaults
// for the enum fields; update leaves every flag empty.
func addIssueFlags(fs *flag.FlagSet, withDefaults bool) {
	issueType, priority, status := "", "", ""
	if withDefaults {
		issueType, priority, status = string(defaultIssueType), string(defaultPriority), string(defaultStatus)
	}

	fs.StringP("area", "a", "", "Product area")
	fs.StringP("type", "t", issueType, "Type (Bug|Enhancement|Task)")
	fs.StringP("priority", "p", priority, "Priority (P0|P1|P2|P3)")
	fs.StringP("status", "s", status, "Status (backlog|todo|in-progress|done)")
	fs.StringP("description", "d", "", "Description")
	fs.String("screen", "", "Screen name")
	fs.String("platform", "", "Platform")
	fs.String("assignee", "", "Assignee")
	fs.String("sprint", "", "Sprint ID")
	fs.String("build", "", "Build number")
	fs.String("root-cause", "", "Root cause")
	fs.String("fix", "", "Fix approach")
	fs.StringSlice("file", nil, "Affected file (repeatable)")
	fs.StringSlice("screenshot", nil, "Screenshot ID (repeatable)")
}

func execCreate(io *IO, a *app, fs *flag.FlagSet, args []string) error {
	title, err := requireArgs(args, "title")
	if err != nil {
		return err
	}

	area, _ := fs.GetString("area")
	if strings.TrimSpace(area) == "" {
		return fmt.Errorf("%w: --area", errFlagRequired)
	}

	issueType, err := enumFlag(fs, "type", hqdata.IssueTypes)
	if err != nil {
		return err
	}

	priority, err := enumFlag(fs, "priority", hqdata.Priorities)
	if err != nil {
		return err
	}

	status, err := enumFlag(fs, "status", hqdata.Statuses)
	if err != nil {
		return err
	}

	in := hqdata.NewIssue{
		Title:    title,
		Type:     issueType,
		Priority: priority,
		Status:   status,
		Area:     area,
	}

	in.Description, _ = fs.GetString("description")
	in.Screen, _ = fs.GetString("screen")
	in.Platform, _ = fs.GetString("platform")
	in.Assignee, _ = fs.GetString("assignee")
	in.SprintID, _ = fs.GetString("sprint")
	in.BuildNumber, _ = fs.GetString("build")
	in.RootCause, _ = fs.GetString("root-cause")
	in.FixApproach, _ = fs.GetString("fix")
	in.Files, _ = fs.GetStringSlice("file")
	in.ScreenshotIDs, _ = fs.GetStringSlice("screenshot")

	issue, err := a.svc.AddIssue(in)
	if err != nil {
		return fmt.Errorf("create issue: %w", err)
	}

	a.logActivity(io, "issue.created", issue.ID, issue.Title)

	io.Println(issue.ID)

	return nil
}
