package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/calvinalkan/hq/internal/hqdata"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

func statusLabel(o *IO, s hqdata.Status) string {
	text := fmt.Sprintf("%-11s", s)

	switch s {
	case hqdata.StatusDone:
		return o.Paint(text, color.FgGreen)
	case hqdata.StatusInProgress:
		return o.Paint(text, color.FgCyan)
	case hqdata.StatusTodo:
		return o.Paint(text, color.FgYellow)
	default:
		return o.Paint(text, color.Faint)
	}
}

func priorityLabel(o *IO, p hqdata.Priority) string {
	switch p {
	case hqdata.P0:
		return o.Paint(string(p), color.FgRed, color.Bold)
	case hqdata.P1:
		return o.Paint(string(p), color.FgRed)
	case hqdata.P2:
		return o.Paint(string(p), color.FgYellow)
	default:
		return string(p)
	}
}

func formatIssueLine(o *IO, issue hqdata.Issue) string {
	var b strings.Builder

	b.WriteString(issue.ID)
	b.WriteString("  ")
	b.WriteString(priorityLabel(o, issue.Priority))
	b.WriteString("  ")
	b.WriteString(statusLabel(o, issue.Status))
	b.WriteString("  ")
	b.WriteString(issue.Title)

	if issue.Area != "" {
		b.WriteString(" (")
		b.WriteString(issue.Area)
		b.WriteString(")")
	}

	return b.String()
}

func formatScreenshotLine(shot hqdata.Screenshot) string {
	line := shot.ID + "  " + shot.Name + "  " + shot.Path
	if len(shot.Tags) > 0 {
		line += "  [" + strings.Join(shot.Tags, ", ") + "]"
	}

	return line
}

// printField prints "name: value", skipping empty values.
func printField(o *IO, name, value string) {
	if value == "" {
		return
	}

	o.Printf("%s: %s\n", name, value)
}

// enumFlag reads a string flag and checks it against the allowed values.
// An unset flag yields the zero value, which filters match as "any".
func enumFlag[T ~string](fs *flag.FlagSet, name string, allowed []T) (T, error) {
	raw, _ := fs.GetString(name)
	if !fs.Changed(name) {
		return T(raw), nil
	}

	if raw == "" {
		return "", fmt.Errorf("--%s: %w", name, errEmptyValue)
	}

	if !slices.Contains(allowed, T(raw)) {
		return "", fmt.Errorf("%w for --%s: %s (must be one of %s)", errInvalidValue, name, raw, joinValues(allowed))
	}

	return T(raw), nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}

	return strings.Join(parts, ", ")
}

// changedString returns a pointer to the flag value when the flag was given.
func changedString(fs *flag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}

	v, _ := fs.GetString(name)

	return &v
}

// changedSlice returns a pointer to the flag's values when the flag was given.
func changedSlice(fs *flag.FlagSet, name string) *[]string {
	if !fs.Changed(name) {
		return nil
	}

	v, _ := fs.GetStringSlice(name)

	return &v
}

// requireArgs joins positional args into one value, failing when none were given.
func requireArgs(args []string, what string) (string, error) {
	value := strings.TrimSpace(strings.Join(args, " "))
	if value == "" {
		return "", fmt.Errorf("%w: %s required", errArgCount, what)
	}

	return value, nil
}

func requireOneArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected %s", errArgCount, what)
	}

	return args[0], nil
}
