package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"
)

const (
	exportPerms    = 0o644
	exportDirPerms = 0o750
)

var errResetNotConfirmed = errors.New("reset discards all local edits; pass --yes to confirm")

// ExportCmd returns the export command.
func ExportCmd(a *app) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("output", "o", "", "Write to `file` instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "export [-o file]",
		Short: "Export merged dataset as JSON",
		Long:  "Export the merged dataset as indented JSON. The output can be read back with import.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			text, err := a.svc.Export()
			if err != nil {
				return err
			}

			output, _ := fs.GetString("output")
			if output == "" {
				io.Printf("%s", text)

				return nil
			}

			path := a.resolvePath(output)

			err = a.fsys.MkdirAll(filepath.Dir(path), exportDirPerms)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			err = a.fsys.WriteFileAtomic(path, []byte(text), exportPerms)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			io.Println("Exported to", path)

			return nil
		},
	}
}

// ImportCmd returns the import command.
func ImportCmd(a *app) *Command {
	return &Command{
		Flags:  flag.NewFlagSet("import", flag.ContinueOnError),
		Usage:  "import <file|->",
		Writes: true,
		Short:  "Replace editable collections from a JSON export",
		Long: `Replace issues, screenshots, links, decisions and the activity log with
the ones in an exported dataset. Use - to read from stdin.

The payload must contain all five collections as arrays. Nothing is written
unless the whole payload is valid.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			source, err := requireOneArg(args, "a file or -")
			if err != nil {
				return err
			}

			data, err := a.readInput(source)
			if err != nil {
				return err
			}

			err = a.svc.Import(string(data))
			if err != nil {
				return err
			}

			ds, err := a.svc.Merged()
			if err != nil {
				return err
			}

			o.Printf("Imported %d issues, %d screenshots, %d links, %d decisions, %d activity entries\n",
				len(ds.Issues), len(ds.Screenshots), len(ds.Links), len(ds.Decisions), len(ds.ActivityLog))

			return nil
		},
	}
}

// ResetCmd returns the reset command.
func ResetCmd(a *app) *Command {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.BoolP("yes", "y", false, "Confirm the reset")

	return &Command{
		Flags:  fs,
		Usage:  "reset --yes",
		Writes: true,
		Short:  "Discard all local edits",
		Long:   "Delete the override store so every collection reverts to the baseline.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			yes, _ := fs.GetBool("yes")
			if !yes {
				return errResetNotConfirmed
			}

			err := a.svc.Reset()
			if err != nil {
				return fmt.Errorf("reset: %w", err)
			}

			io.Println("Reset to baseline")

			return nil
		},
	}
}

func (a *app) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(a.cfg.EffectiveCwd, path)
}

func (a *app) readInput(source string) ([]byte, error) {
	if source == "-" {
		if a.in == nil {
			return nil, errors.New("no stdin available")
		}

		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := a.fsys.ReadFile(a.resolvePath(source))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	return data, nil
}
