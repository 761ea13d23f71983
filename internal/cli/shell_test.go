package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/hq/internal/cli"
)

func TestShellCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	script := strings.Join([]string{
		"# comments and blank lines are skipped",
		"",
		`create "Quoted title" -a Ops -d 'two words'`,
		"show ISS-0007",
		"frobnicate",
		"show ISS-9999",
		"shell",
		"exit",
		"create After exit -a Ops",
	}, "\n")

	stdout, stderr, code := c.RunWithInput(script, "shell")
	if code != 0 {
		t.Fatalf("exitCode=%d\nstderr: %s", code, stderr)
	}

	cli.AssertContains(t, stdout, "ISS-0007  Quoted title")
	cli.AssertContains(t, stdout, "two words")

	// Failures are reported and the loop goes on.
	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "issue not found: ISS-9999")
	cli.AssertContains(t, stderr, "already in shell")

	cli.AssertNotContains(t, c.MustRun("ls"), "After exit")
}

func Test_Shell_Reports_Unbalanced_Quotes_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, code := c.RunWithInput("create \"unterminated -a Ops\nls --limit 1\n", "shell")
	if code != 0 {
		t.Fatalf("exitCode=%d\nstderr: %s", code, stderr)
	}

	cli.AssertContains(t, stderr, "error:")
	cli.AssertContains(t, stdout, "ISS-0006")
	cli.AssertNotContains(t, c.MustRun("ls"), "unterminated")
}

func Test_Shell_Flags_Do_Not_Leak_When_Commands_Repeat(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, code := c.RunWithInput("ls --status done\nls\n", "shell")
	if code != 0 {
		t.Fatalf("exitCode=%d\nstderr: %s", code, stderr)
	}

	// 2 done issues, then all 6.
	if got, want := len(strings.Split(strings.TrimSpace(stdout), "\n")), 8; got != want {
		t.Errorf("lines=%d, want=%d\n%s", got, want, stdout)
	}
}
