package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calvinalkan/hq/internal/hqdata"

	flag "github.com/spf13/pflag"
)

var errNothingToUpdate = errors.New("nothing to update (pass at least one flag)")

// UpdateCmd returns the update command.
func UpdateCmd(a *app) *Command {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.String("title", "", "Title")
	addIssueFlags(fs, false)

	return &Command{
		Flags:  fs,
		Usage:  "update <id> [flags]",
		Writes: true,
		Short:  "Update issue fields",
		Long: `Update fields of an existing issue.

Only the given flags change. The ID, creation date and severity are fixed
at creation. --file and --screenshot replace the whole list.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execUpdate(io, a, fs, args)
		},
	}
}

func execUpdate(io *IO, a *app, fs *flag.FlagSet, args []string) error {
	id, err := requireOneArg(args, "one issue ID")
	if err != nil {
		return err
	}

	if fs.NFlag() == 0 {
		return errNothingToUpdate
	}

	var u hqdata.IssueUpdate

	for _, name := range []string{"title", "area"} {
		if v := changedString(fs, name); v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("--%s: %w", name, errEmptyValue)
		}
	}

	u.Title = changedString(fs, "title")
	u.Area = changedString(fs, "area")
	u.Description = changedString(fs, "description")
	u.Screen = changedString(fs, "screen")
	u.Platform = changedString(fs, "platform")
	u.Assignee = changedString(fs, "assignee")
	u.SprintID = changedString(fs, "sprint")
	u.BuildNumber = changedString(fs, "build")
	u.RootCause = changedString(fs, "root-cause")
	u.FixApproach = changedString(fs, "fix")
	u.Files = changedSlice(fs, "file")
	u.ScreenshotIDs = changedSlice(fs, "screenshot")

	if fs.Changed("type") {
		v, err := enumFlag(fs, "type", hqdata.IssueTypes)
		if err != nil {
			return err
		}

		u.Type = &v
	}

	if fs.Changed("priority") {
		v, err := enumFlag(fs, "priority", hqdata.Priorities)
		if err != nil {
			return err
		}

		u.Priority = &v
	}

	if fs.Changed("status") {
		v, err := enumFlag(fs, "status", hqdata.Statuses)
		if err != nil {
			return err
		}

		u.Status = &v
	}

	issue, err := a.svc.UpdateIssue(id, u)
	if err != nil {
		return fmt.Errorf("update %s: %w", id, err)
	}

	a.logActivity(io, "issue.updated", issue.ID, changedSummary(fs))

	io.Println("Updated", issue.ID)

	return nil
}

// changedSummary lists the given flags as "name -> value" pairs.
func changedSummary(fs *flag.FlagSet) string {
	var parts []string

	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		if sv, ok := f.Value.(flag.SliceValue); ok {
			value = strings.Join(sv.GetSlice(), ",")
		}

		parts = append(parts, f.Name+" -> "+value)
	})

	return strings.Join(parts, "; ")
}
