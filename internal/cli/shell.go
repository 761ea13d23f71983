package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const historyFileName = ".hq_history"

var errNestedShell = errors.New("already in shell")

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive command loop",
		Long: `Run hq commands interactively, one per line, without the "hq" prefix.
Arguments may be quoted. Type 'help' for commands and 'exit' to leave.

When stdin is not a terminal, lines are read from stdin without a prompt.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			sh := &shell{app: a, io: o}

			if f, ok := a.in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				return sh.runInteractive(ctx)
			}

			if a.in == nil {
				return nil
			}

			return sh.runScript(ctx, a.in)
		},
	}
}

// shell dispatches command lines to the regular commands.
type shell struct {
	app   *app
	io    *IO
	liner *liner.State
}

// runInteractive reads lines with history and tab completion.
func (s *shell) runInteractive(ctx context.Context) error {
	s.liner = liner.NewLiner()
	defer s.liner.Close()

	s.liner.SetCtrlCAborts(true)
	s.liner.SetCompleter(s.completer)

	if f, err := os.Open(s.historyFile()); err == nil {
		_, _ = s.liner.ReadHistory(f)
		_ = f.Close()
	}

	defer s.saveHistory()

	s.io.Println("hq shell - type 'help' for commands, 'exit' to quit.")

	for ctx.Err() == nil {
		line, err := s.liner.Prompt("hq> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			s.liner.AppendHistory(line)
		}

		if s.exec(ctx, line) {
			return nil
		}
	}

	return nil
}

// runScript executes every line of r.
func (s *shell) runScript(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for ctx.Err() == nil && scanner.Scan() {
		if s.exec(ctx, scanner.Text()) {
			return nil
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

// exec runs one line. Returns true when the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	args, err := shlex.Split(line)
	if err != nil {
		s.io.ErrPrintln("error:", err)

		return false
	}

	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "exit", "quit", "q":
		return true
	case "shell":
		s.io.ErrPrintln("error:", errNestedShell)

		return false
	}

	// Failures are already printed; the loop keeps going.
	_ = s.app.dispatch(ctx, s.io, args)

	return false
}

func (s *shell) historyFile() string {
	home := s.app.env["HOME"]
	if home == "" {
		return ""
	}

	return filepath.Join(home, historyFileName)
}

func (s *shell) saveHistory() {
	path := s.historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = s.liner.WriteHistory(f)
	_ = f.Close()
}

// completer completes command names at the start of the line.
func (s *shell) completer(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}

	var completions []string

	for _, cmd := range s.app.commands() {
		if name := cmd.Name(); name != "shell" && strings.HasPrefix(name, line) {
			completions = append(completions, name)
		}
	}

	for _, name := range []string{"help", "exit"} {
		if strings.HasPrefix(name, line) {
			completions = append(completions, name)
		}
	}

	return completions
}
