package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvinalkan/hq/internal/hqdata"

	flag "github.com/spf13/pflag"
)

const defaultActivityLimit = 20

// ActivityCmd returns the activity command.
func ActivityCmd(a *app) *Command {
	fs := flag.NewFlagSet("activity", flag.ContinueOnError)
	fs.Int("limit", defaultActivityLimit, "Maximum entries to show (0 = all)")

	return &Command{
		Flags: fs,
		Usage: "activity [--limit N]",
		Short: "Show activity log",
		Long:  "Show the activity log, newest first. The log keeps the 100 newest entries.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			limit, _ := fs.GetInt("limit")
			if limit < 0 {
				return errors.New("--limit must be non-negative")
			}

			ds, err := a.svc.Merged()
			if err != nil {
				return err
			}

			entries := ds.ActivityLog
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			for _, e := range entries {
				io.Println(formatActivityLine(e))
			}

			return nil
		},
	}
}

func formatActivityLine(e hqdata.ActivityEntry) string {
	line := e.Timestamp + "  " + e.Action

	if e.Target != "" {
		line += " " + e.Target
	}

	if e.Details != "" {
		line += ": " + e.Details
	}

	if e.Actor != "" {
		line += " (" + e.Actor + ")"
	}

	return line
}

// LogCmd returns the log command.
func LogCmd(a *app) *Command {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	fs.String("target", "", "What the entry is about (e.g. an issue ID)")
	fs.String("details", "", "Free-form details")

	return &Command{
		Flags:  fs,
		Usage:  "log <action> [--target T] [--details D]",
		Writes: true,
		Short:  "Add activity log entry",
		Exec: func(_ context.Context, io *IO, args []string) error {
			action, err := requireArgs(args, "action")
			if err != nil {
				return err
			}

			target, _ := fs.GetString("target")
			details, _ := fs.GetString("details")

			entry, err := a.svc.AddActivity(hqdata.NewActivity{
				Action:  action,
				Target:  target,
				Details: details,
				Actor:   a.actor(),
			})
			if err != nil {
				return fmt.Errorf("add activity: %w", err)
			}

			io.Println(entry.ID)

			return nil
		},
	}
}
