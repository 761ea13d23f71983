package cli_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/calvinalkan/hq/internal/cli"
)

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("search", "coupon")
	lines := strings.Split(stdout, "\n")

	if got, want := len(lines), 2; got != want {
		t.Fatalf("results=%d, want=%d\n%s", got, want, stdout)
	}

	// Issues come before screenshots.
	cli.AssertContains(t, lines[0], "issue")
	cli.AssertContains(t, lines[0], "ISS-0006")
	cli.AssertContains(t, lines[0], "in-progress · Checkout")
	cli.AssertContains(t, lines[1], "screenshot")
	cli.AssertContains(t, lines[1], "SS-0002")

	// Links match on notes.
	cli.AssertContains(t, c.MustRun("search", "SUBMISSION"), "LNK-0002")

	// Too short after trimming.
	if got := c.MustRun("search", " a "); got != "" {
		t.Errorf("short query should match nothing, got %q", got)
	}

	cli.AssertContains(t, c.MustFail("search"), "query required")

	// One non-ASCII character is still one character.
	c.MustRun("create", "Café menu broken", "-a", "Ordering")

	if got := c.MustRun("search", "é"); got != "" {
		t.Errorf("single character query should match nothing, got %q", got)
	}

	cli.AssertContains(t, c.MustRun("search", "fé"), "Café menu broken")
}

func Test_Search_Caps_Results_When_Many_Match(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	for range 25 {
		c.MustRun("create", "Flaky widget", "-a", "QA")
	}

	lines := strings.Split(c.MustRun("search", "widget"), "\n")
	if got, want := len(lines), 20; got != want {
		t.Errorf("results=%d, want=%d", got, want)
	}
}

func TestStatsCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("stats")

	cli.AssertContains(t, stdout, "total: 6 (open 4)")
	assertCount(t, stdout, "done", 2)
	assertCount(t, stdout, "in-progress", 1)
	assertCount(t, stdout, "P3", 2)
	assertCount(t, stdout, "Enhancement", 1)
	assertCount(t, stdout, "Marketplace", 2)

	// Stats are recomputed after every change.
	c.MustRun("update", "ISS-0002", "-s", "done")
	stdout = c.MustRun("stats")
	cli.AssertContains(t, stdout, "total: 6 (open 3)")
	assertCount(t, stdout, "done", 3)
}

func assertCount(t *testing.T, stdout, key string, want int) {
	t.Helper()

	re := regexp.MustCompile(`(?m)^\s+` + regexp.QuoteMeta(key) + `\s+(\d+)$`)

	m := re.FindStringSubmatch(stdout)
	if m == nil {
		t.Errorf("no count for %q in:\n%s", key, stdout)

		return
	}

	if got := m[1]; got != strconv.Itoa(want) {
		t.Errorf("%s=%s, want=%d", key, got, want)
	}
}

func TestOverviewCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("overview")

	cli.AssertContains(t, stdout, "Harbor Marketplace 2.4.0")
	cli.AssertContains(t, stdout, "owner: Platform Team")
	cli.AssertContains(t, stdout, "issues: 4 open / 6 total")
	cli.AssertContains(t, stdout, "active sprint: Sprint 12 (2026-10-06..2026-10-19)")
	cli.AssertContains(t, stdout, "latest build: 412 2.4.0 iOS [testing]")
	cli.AssertContains(t, stdout, "Moorings  planned (0 items)")
	cli.AssertContains(t, stdout, "Build 412 sent to testers.")
	cli.AssertContains(t, stdout, "Design system  https://design.example.com/harbor")
}

func Test_Readonly_Views_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	cli.AssertContains(t, c.MustRun("decisions"), "DEC-0002  2026-09-12  [accepted] Keep dashboard edits local")
	cli.AssertContains(t, c.MustRun("builds"), "409  2.3.2  iOS  2026-09-17  [released]  Hotfix for login.")
	cli.AssertContains(t, c.MustRun("sprints"), "SPR-12  Sprint 12  2026-10-06..2026-10-19  [active]  Stabilise checkout")
}

func TestScreenshotsCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("screenshots", "--tag", "COUPON")
	cli.AssertContains(t, stdout, "SS-0002  Cart with coupon applied  screenshots/checkout/cart-coupon.png  [coupon, bug]")
	cli.AssertContains(t, stdout, "  issues: ISS-0006")
	cli.AssertNotContains(t, stdout, "SS-0001")

	stdout = c.MustRun("screenshots", "--platform", "iOS")
	cli.AssertContains(t, stdout, "SS-0003")
	cli.AssertContains(t, stdout, "SS-0002")
	cli.AssertNotContains(t, stdout, "SS-0001")

	cli.AssertContains(t, c.MustRun("screenshots", "-q", "tablet"), "SS-0001")
}

func TestAddScreenshotCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	id := c.MustRun("add-screenshot", "Cart", "empty", "--path", "shots/cart.png", "--feature", "Checkout",
		"--tag", "empty-state", "--issue", "ISS-0006", "--issue", "ISS-0404")
	if got, want := id, "SS-0004"; got != want {
		t.Fatalf("id=%q, want=%q", got, want)
	}

	stdout := c.MustRun("screenshots", "--feature", "Checkout")
	lines := strings.Split(stdout, "\n")
	cli.AssertContains(t, lines[0], "SS-0004  Cart empty  shots/cart.png  [empty-state]")
	// ISS-0404 does not exist and is skipped.
	cli.AssertContains(t, lines[1], "  issues: ISS-0006")
	cli.AssertNotContains(t, stdout, "ISS-0404")

	cli.AssertContains(t, c.MustRun("activity", "--limit", "1"), "screenshot.added SS-0004: Cart empty")

	cli.AssertContains(t, c.MustFail("add-screenshot", "No path", "--feature", "X"), "missing required flag: --path")
	cli.AssertContains(t, c.MustFail("add-screenshot", "No feature", "--path", "x.png"), "missing required flag: --feature")
}

func TestLinksCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("links")
	want := `Design
  LNK-0003  Design system  https://design.example.com/harbor

Release
  LNK-0002  Release runbook  docs/release/runbook.md

Monitoring
  LNK-0001  Crash dashboard  https://crashes.example.com/harbor`

	if stdout != want {
		t.Errorf("links output mismatch\ngot:\n%s\nwant:\n%s", stdout, want)
	}

	stdout = c.MustRun("links", "--type", "local")
	cli.AssertContains(t, stdout, "LNK-0002")
	cli.AssertNotContains(t, stdout, "LNK-0001")

	cli.AssertContains(t, c.MustFail("links", "--type", "remote"), "invalid value for --type")
}

func TestAddLinkCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	id := c.MustRun("add-link", "Status page", "--url", "https://status.example.com", "--category", "Monitoring")
	if got, want := id, "LNK-0004"; got != want {
		t.Fatalf("id=%q, want=%q", got, want)
	}

	stdout := c.MustRun("links", "--category", "Monitoring")
	lines := strings.Split(stdout, "\n")
	cli.AssertContains(t, lines[1], "LNK-0004  Status page")
	cli.AssertContains(t, lines[2], "LNK-0001")

	cli.AssertContains(t, c.MustFail("add-link", "No url"), "missing required flag: --url")
	cli.AssertContains(t, c.MustFail("add-link", "Bad", "--url", "x", "--type", "ftp"), "invalid value for --type")
}

func TestActivityAndLogCommands(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	id := c.MustRun("log", "build.shipped", "--target", "412", "--details", "to testers")
	if !regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`).MatchString(id) {
		t.Errorf("log should print a UUID, got %q", id)
	}

	lines := strings.Split(c.MustRun("activity"), "\n")
	if got, want := len(lines), 3; got != want {
		t.Fatalf("entries=%d, want=%d", got, want)
	}

	cli.AssertContains(t, lines[0], "build.shipped 412: to testers (tester)")
	cli.AssertContains(t, lines[1], "2026-10-10T16:04:00Z  issue.updated ISS-0006: status -> in-progress")

	cli.AssertContains(t, c.MustFail("log"), "action required")
	cli.AssertContains(t, c.MustFail("activity", "--limit", "-5"), "--limit must be non-negative")
}

func Test_Activity_Log_Capped_When_Many_Entries(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	var script strings.Builder
	for range 105 {
		script.WriteString("log tick\n")
	}

	_, stderr, code := c.RunWithInput(script.String(), "shell")
	if code != 0 {
		t.Fatalf("exitCode=%d\nstderr: %s", code, stderr)
	}

	lines := strings.Split(c.MustRun("activity", "--limit", "0"), "\n")
	if got, want := len(lines), 100; got != want {
		t.Fatalf("entries=%d, want=%d", got, want)
	}

	// Both baseline entries were pushed out.
	for _, line := range lines {
		cli.AssertContains(t, line, "tick")
	}
}
