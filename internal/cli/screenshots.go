package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/calvinalkan/hq/internal/hqdata"
	"github.com/calvinalkan/hq/internal/query"

	flag "github.com/spf13/pflag"
)

// ScreenshotsCmd returns the screenshots command.
func ScreenshotsCmd(a *app) *Command {
	fs := flag.NewFlagSet("screenshots", flag.ContinueOnError)
	fs.String("feature", "", "Filter by feature")
	fs.String("platform", "", "Filter by platform")
	fs.String("tag", "", "Filter by tag (case-insensitive)")
	fs.StringP("query", "q", "", "Match name, notes or tags")

	return &Command{
		Flags: fs,
		Usage: "screenshots [flags]",
		Short: "List screenshots",
		Long:  "List screenshots with the issues that reference them.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			feature, _ := fs.GetString("feature")
			platform, _ := fs.GetString("platform")
			tag, _ := fs.GetString("tag")
			text, _ := fs.GetString("query")

			ds, err := a.svc.Merged()
			if err != nil {
				return err
			}

			shots := query.FilterScreenshots(ds.Screenshots, query.ScreenshotFilter{
				Feature:  feature,
				Platform: platform,
				Tag:      tag,
				Text:     text,
			})

			for _, shot := range shots {
				io.Println(formatScreenshotLine(shot))

				related := hqdata.ScreenshotIssues(ds, shot)
				if len(related) > 0 {
					ids := make([]string, len(related))
					for i, issue := range related {
						ids[i] = issue.ID
					}

					io.Println("  issues: " + strings.Join(ids, ", "))
				}
			}

			return nil
		},
	}
}

// AddScreenshotCmd returns the add-screenshot command.
func AddScreenshotCmd(a *app) *Command {
	fs := flag.NewFlagSet("add-screenshot", flag.ContinueOnError)
	fs.String("path", "", "Image path (required)")
	fs.String("feature", "", "Feature (required)")
	fs.StringSlice("tag", nil, "Tag (repeatable)")
	fs.String("platform", "", "Platform")
	fs.StringSlice("issue", nil, "Related issue ID (repeatable)")
	fs.String("notes", "", "Notes")

	return &Command{
		Flags:  fs,
		Usage:  "add-screenshot <name> --path <p> --feature <f> [flags]",
		Writes: true,
		Short:  "Add screenshot",
		Long:   "Record a screenshot and print its ID. Issue IDs are not checked.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			name, err := requireArgs(args, "name")
			if err != nil {
				return err
			}

			in := hqdata.NewScreenshot{Name: name}
			in.Path, _ = fs.GetString("path")
			in.Feature, _ = fs.GetString("feature")
			in.Tags, _ = fs.GetStringSlice("tag")
			in.Platform, _ = fs.GetString("platform")
			in.RelatedIssueIDs, _ = fs.GetStringSlice("issue")
			in.Notes, _ = fs.GetString("notes")

			if in.Path == "" {
				return fmt.Errorf("%w: --path", errFlagRequired)
			}

			if in.Feature == "" {
				return fmt.Errorf("%w: --feature", errFlagRequired)
			}

			shot, err := a.svc.AddScreenshot(in)
			if err != nil {
				return fmt.Errorf("add screenshot: %w", err)
			}

			a.logActivity(io, "screenshot.added", shot.ID, shot.Name)

			io.Println(shot.ID)

			return nil
		},
	}
}
