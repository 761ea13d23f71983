package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// overridesNote is appended to the help of every [Command] with Writes set.
const overridesNote = `Changes are saved as overrides on top of the baseline dataset.
'hq export' shows the merged result; 'hq reset --yes' drops every override.`

// Command is one hq subcommand.
//
// Commands are rebuilt for every invocation (including each shell line),
// so a FlagSet is parsed at most once.
type Command struct {
	// Flags defines command-specific flags.
	// The FlagSet name is not used; command identity comes from Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "hq" in help.
	// Examples: "show <id>", "create <title> -a <area> [flags]", "ls [flags]"
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// Offline commands run without the baseline and override store, so
	// they keep working when the configured data_file is broken.
	Offline bool

	// Writes marks commands that change the override store.
	Writes bool

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the main usage display.
// Commands that write are marked with "*".
func (c *Command) HelpLine() string {
	marker := " "
	if c.Writes {
		marker = "*"
	}

	return fmt.Sprintf(" %s%-34s %s", marker, c.Usage, c.Short)
}

// PrintHelp prints the full help output for "hq <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: hq", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}

	if c.Writes {
		o.Println()
		o.Println(overridesNote)
	}
}

// Run parses flags, loads data unless the command is Offline, and executes
// the command. Returns the exit code; errors are printed here so stdout and
// stderr stay ordered.
func (c *Command) Run(ctx context.Context, o *IO, args []string, load func() error) int {
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if !c.Offline && load != nil {
		err = load()
		if err != nil {
			o.ErrPrintln("error:", err)
			return 1
		}
	}

	err = c.Exec(ctx, o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return o.Finish()
}
