package cli

import (
	"context"

	"github.com/calvinalkan/hq/internal/hqdata"
	"github.com/calvinalkan/hq/internal/query"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

// viewCmd builds a flagless read-only command over the merged dataset.
func viewCmd(a *app, name, short string, render func(io *IO, ds hqdata.Dataset)) *Command {
	return &Command{
		Flags: flag.NewFlagSet(name, flag.ContinueOnError),
		Usage: name,
		Short: short,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			ds, err := a.svc.Merged()
			if err != nil {
				return err
			}

			render(io, ds)

			return nil
		},
	}
}

// DecisionsCmd returns the decisions command.
func DecisionsCmd(a *app) *Command {
	return viewCmd(a, "decisions", "List decisions", func(io *IO, ds hqdata.Dataset) {
		for _, d := range ds.Decisions {
			io.Printf("%s  %s  [%s] %s\n", d.ID, d.Date, d.Status, d.Title)
		}
	})
}

// BuildsCmd returns the builds command.
func BuildsCmd(a *app) *Command {
	return viewCmd(a, "builds", "List builds", func(io *IO, ds hqdata.Dataset) {
		for _, b := range ds.Builds {
			line := b.BuildNumber + "  " + b.Version + "  " + b.Platform + "  " + b.Date + "  [" + b.Status + "]"
			if b.Notes != "" {
				line += "  " + b.Notes
			}

			io.Println(line)
		}
	})
}

// SprintsCmd returns the sprints command.
func SprintsCmd(a *app) *Command {
	return viewCmd(a, "sprints", "List sprints", func(io *IO, ds hqdata.Dataset) {
		for _, s := range ds.Sprints {
			line := s.ID + "  " + s.Name + "  " + s.StartDate + ".." + s.EndDate + "  [" + s.Status + "]"
			if s.Goal != "" {
				line += "  " + s.Goal
			}

			io.Println(line)
		}
	})
}

// OverviewCmd returns the overview command.
func OverviewCmd(a *app) *Command {
	return viewCmd(a, "overview", "Show project overview", func(io *IO, ds hqdata.Dataset) {
		stats := query.IssueStats(ds.Issues)

		io.Println(io.Paint(ds.Meta.ProjectName, color.Bold) + " " + ds.Meta.Version)
		printField(io, "owner", ds.Meta.Owner)
		printField(io, "data updated", ds.Meta.LastUpdated)
		io.Printf("issues: %d open / %d total\n", stats.Open(), stats.Total)
		io.Printf("screenshots: %d, links: %d, decisions: %d\n", len(ds.Screenshots), len(ds.Links), len(ds.Decisions))

		for _, s := range ds.Sprints {
			if s.Status == "active" {
				io.Printf("active sprint: %s (%s..%s)\n", s.Name, s.StartDate, s.EndDate)
			}
		}

		if len(ds.Builds) > 0 {
			b := ds.Builds[0]
			io.Printf("latest build: %s %s %s [%s]\n", b.BuildNumber, b.Version, b.Platform, b.Status)
		}

		if len(ds.MarketplaceCategories) > 0 {
			io.Println()
			io.Println("marketplace:")

			for _, c := range ds.MarketplaceCategories {
				io.Printf("  %s  %s (%d items)\n", c.Name, c.Status, c.ItemCount)
			}
		}

		if len(ds.RecentChanges) > 0 {
			io.Println()
			io.Println("recent changes:")

			for _, c := range ds.RecentChanges {
				io.Printf("  %s  %s\n", c.Date, c.Summary)
			}
		}

		if len(ds.QuickLinks) > 0 {
			io.Println()
			io.Println("quick links:")

			for _, l := range ds.QuickLinks {
				io.Printf("  %s  %s\n", l.Title, l.URL)
			}
		}
	})
}

// StatsCmd returns the stats command.
func StatsCmd(a *app) *Command {
	return viewCmd(a, "stats", "Show issue statistics", func(io *IO, ds hqdata.Dataset) {
		stats := query.IssueStats(ds.Issues)

		io.Printf("total: %d (open %d)\n", stats.Total, stats.Open())

		io.Println()
		io.Println("by status:")

		for _, s := range hqdata.Statuses {
			io.Printf("  %-12s %d\n", s, stats.ByStatus[s])
		}

		io.Println()
		io.Println("by priority:")

		for _, p := range hqdata.Priorities {
			io.Printf("  %-12s %d\n", p, stats.ByPriority[p])
		}

		io.Println()
		io.Println("by type:")

		for _, t := range hqdata.IssueTypes {
			io.Printf("  %-12s %d\n", t, stats.ByType[t])
		}

		areas := query.Distinct(ds.Issues, func(i hqdata.Issue) string { return i.Area })
		if len(areas) > 0 {
			io.Println()
			io.Println("areas:")

			for _, area := range areas {
				n := len(query.FilterIssues(ds.Issues, query.IssueFilter{Area: area}))
				io.Printf("  %-12s %d\n", area, n)
			}
		}
	})
}

// SearchCmd returns the search command.
func SearchCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("search", flag.ContinueOnError),
		Usage: "search <query>",
		Short: "Search issues, screenshots and links",
		Long: `Search issues (title, description), screenshots (name, tags) and links
(title, notes). Queries shorter than two characters match nothing. At most
20 results are shown.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			q, err := requireArgs(args, "query")
			if err != nil {
				return err
			}

			ds, err := a.svc.Merged()
			if err != nil {
				return err
			}

			for _, r := range query.Search(ds, query.TrimQuery(q)) {
				io.Printf("%-10s %-9s %s  %s\n", r.Kind, r.ID, r.Title, io.Paint(r.Subtitle, color.Faint))
			}

			return nil
		},
	}
}
