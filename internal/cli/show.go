package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/calvinalkan/hq/internal/hqdata"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show issue details",
		Long:  "Show all fields of an issue and the screenshots it references.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execShow(io, a, args)
		},
	}
}

func execShow(io *IO, a *app, args []string) error {
	id, err := requireOneArg(args, "one issue ID")
	if err != nil {
		return err
	}

	ds, err := a.svc.Merged()
	if err != nil {
		return err
	}

	issue, ok := hqdata.FindIssue(ds, id)
	if !ok {
		return fmt.Errorf("%w: %s", hqdata.ErrIssueNotFound, id)
	}

	io.Println(issue.ID + "  " + issue.Title)
	io.Println()
	printField(io, "type", string(issue.Type))
	printField(io, "priority", fmt.Sprintf("%s (%s)", priorityLabel(io, issue.Priority), issue.Severity))
	printField(io, "status", strings.TrimSpace(statusLabel(io, issue.Status)))
	printField(io, "area", issue.Area)
	printField(io, "screen", issue.Screen)
	printField(io, "platform", issue.Platform)
	printField(io, "assignee", issue.Assignee)
	printField(io, "sprint", issue.SprintID)
	printField(io, "build", issue.BuildNumber)
	printField(io, "created", issue.CreatedAt)
	printField(io, "updated", issue.UpdatedAt)

	if issue.Description != "" {
		io.Println()
		io.Println(issue.Description)
	}

	if issue.RootCause != "" || issue.FixApproach != "" {
		io.Println()
		printField(io, "root cause", issue.RootCause)
		printField(io, "fix", issue.FixApproach)
	}

	if len(issue.Files) > 0 {
		io.Println()
		io.Println("files:")

		for _, f := range issue.Files {
			io.Println("  " + f)
		}
	}

	// Unresolved screenshot IDs are skipped silently.
	shots := hqdata.IssueScreenshots(ds, issue)
	if len(shots) > 0 {
		io.Println()
		io.Println("screenshots:")

		for _, shot := range shots {
			io.Println("  " + formatScreenshotLine(shot))
		}
	}

	return nil
}
