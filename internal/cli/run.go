package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/hq/internal/config"
	"github.com/calvinalkan/hq/internal/fs"
	"github.com/calvinalkan/hq/internal/hqdata"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
)

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A signal received on it cancels the context passed to
// commands, which ends a running shell.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := flag.NewFlagSet("hq", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	dataFile := globals.String("data", "", "Use baseline dataset from `file`")
	store := globals.String("store", "", "Override store backend (file|sqlite)")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) > 0 {
		args = args[1:]
	}

	err := globals.Parse(args)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, nil)

		return 1
	}

	rest := globals.Args()
	if *help || len(rest) == 0 {
		printUsage(out, nil)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:  *workDir,
		ConfigPath:       *configPath,
		DataFileOverride: *dataFile,
		StoreOverride:    *store,
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	a := newApp(cfg, in, env)

	defer func() {
		closeErr := a.Close()
		if closeErr != nil {
			fprintln(errOut, "error:", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	o := NewIO(out, errOut)
	o.SetColor(colorEnabled(out, env))

	return a.dispatch(ctx, o, rest)
}

// app wires configuration, baseline and override store into the commands.
type app struct {
	cfg   config.Config
	fsys  fs.FS
	svc   *hqdata.Service
	in    io.Reader
	env   map[string]string
	close func() error
}

func newApp(cfg config.Config, in io.Reader, env map[string]string) *app {
	return &app{
		cfg:   cfg,
		fsys:  fs.NewReal(),
		in:    in,
		env:   env,
		close: func() error { return nil },
	}
}

// load opens the baseline and the override store. It runs once, on the
// first command that needs data, so print-config works with a broken
// data_file.
func (a *app) load() error {
	if a.svc != nil {
		return nil
	}

	baseline := hqdata.LoadBaseline()

	if a.cfg.DataFileAbs != "" {
		var err error

		baseline, err = hqdata.LoadBaselineFile(a.fsys, a.cfg.DataFileAbs)
		if err != nil {
			return err
		}
	}

	var store hqdata.Store

	switch a.cfg.Store {
	case config.StoreSQLite:
		sqlite := hqdata.NewSQLiteStore(a.fsys, a.cfg.SQLiteFileAbs)
		a.close = sqlite.Close
		store = sqlite
	default:
		store = hqdata.NewFileStore(a.fsys, a.cfg.StateFileAbs)
	}

	a.svc = hqdata.NewService(baseline, store)

	return nil
}

// Close releases the override store.
func (a *app) Close() error {
	return a.close()
}

// actor names who made a change in the activity log.
func (a *app) actor() string {
	if a.cfg.Actor != "" {
		return a.cfg.Actor
	}

	return a.env["USER"]
}

// logActivity records a change. A failure here is reported as a warning:
// the change itself has already been persisted.
func (a *app) logActivity(o *IO, action, target, details string) {
	_, err := a.svc.AddActivity(hqdata.NewActivity{
		Action:  action,
		Target:  target,
		Details: details,
		Actor:   a.actor(),
	})
	if err != nil {
		o.Warn("activity log not updated: "+err.Error(), "check the override store, then record the change with 'hq log'")
	}
}

func (a *app) commands() []*Command {
	return []*Command{
		LsCmd(a),
		ShowCmd(a),
		CreateCmd(a),
		UpdateCmd(a),
		DeleteCmd(a),
		ScreenshotsCmd(a),
		AddScreenshotCmd(a),
		LinksCmd(a),
		AddLinkCmd(a),
		ActivityCmd(a),
		LogCmd(a),
		DecisionsCmd(a),
		BuildsCmd(a),
		SprintsCmd(a),
		OverviewCmd(a),
		SearchCmd(a),
		StatsCmd(a),
		ExportCmd(a),
		ImportCmd(a),
		ResetCmd(a),
		ShellCmd(a),
		PrintConfigCmd(a.cfg),
	}
}

// dispatch runs the command named by args[0]. Commands are built fresh on
// every call so flag state never leaks between shell lines.
func (a *app) dispatch(ctx context.Context, o *IO, args []string) int {
	name := args[0]
	cmds := a.commands()

	if name == "help" || name == "-h" || name == "--help" {
		printUsage(o.out, cmds)

		return 0
	}

	for _, cmd := range cmds {
		if cmd.Name() != name {
			continue
		}

		return cmd.Run(ctx, o, args[1:], a.load)
	}

	o.ErrPrintln("error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
	printUsage(o.errOut, cmds)

	return 1
}

func colorEnabled(out io.Writer, env map[string]string) bool {
	if env["NO_COLOR"] != "" || env["TERM"] == "dumb" {
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, cmds []*Command) {
	fprintln(w, `hq - project dashboard data

Usage: hq [options] <command> [args]

Options:
  -C, --cwd <dir>       Run as if started in <dir>
  -c, --config <file>   Use specified config file
      --data <file>     Use baseline dataset from <file>
      --store <backend> Override store backend (file|sqlite)

Commands:`)

	if cmds == nil {
		cmds = (&app{}).commands()
	}

	for _, cmd := range cmds {
		fprintln(w, cmd.HelpLine())
	}
}

var (
	errUnknownCommand = errors.New("unknown command")
	errArgCount       = errors.New("wrong number of arguments")
	errFlagRequired   = errors.New("missing required flag")
	errInvalidValue   = errors.New("invalid value")
	errEmptyValue     = errors.New("value cannot be empty")
)
