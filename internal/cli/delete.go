package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
)

// DeleteCmd returns the delete command.
func DeleteCmd(a *app) *Command {
	return &Command{
		Flags:  flag.NewFlagSet("delete", flag.ContinueOnError),
		Usage:  "delete <id>",
		Writes: true,
		Short:  "Delete issue",
		Long:   "Delete an issue. Screenshots that reference it keep the reference.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			id, err := requireOneArg(args, "one issue ID")
			if err != nil {
				return err
			}

			err = a.svc.DeleteIssue(id)
			if err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}

			a.logActivity(io, "issue.deleted", id, "")

			io.Println("Deleted", id)

			return nil
		},
	}
}
