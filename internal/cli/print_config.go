package cli

import (
	"context"

	"github.com/calvinalkan/hq/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg config.Config) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)
	fs.Bool("json", false, "Print the merged settings as a config file")

	return &Command{
		Flags:   fs,
		Usage:   "print-config [--json]",
		Short:   "Show resolved configuration",
		Long:    "Display the effective configuration and which files it was loaded from.",
		Offline: true,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			asJSON, _ := fs.GetBool("json")
			if asJSON {
				formatted, err := config.Format(cfg)
				if err != nil {
					return err
				}

				io.Println(formatted)

				return nil
			}

			return execPrintConfig(io, cfg)
		},
	}
}

func execPrintConfig(io *IO, cfg config.Config) error {
	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("store=" + cfg.Store)

	switch cfg.Store {
	case config.StoreSQLite:
		io.Println("sqlite_file=" + cfg.SQLiteFileAbs)
	default:
		io.Println("state_file=" + cfg.StateFileAbs)
	}

	if cfg.DataFileAbs != "" {
		io.Println("data_file=" + cfg.DataFileAbs)
	} else {
		io.Println("data_file=(bundled)")
	}

	if cfg.Actor != "" {
		io.Println("actor=" + cfg.Actor)
	}

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
