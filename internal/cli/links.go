package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/hq/internal/hqdata"
	"github.com/calvinalkan/hq/internal/query"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

const defaultLinkCategory = "General"

// LinksCmd returns the links command.
func LinksCmd(a *app) *Command {
	fs := flag.NewFlagSet("links", flag.ContinueOnError)
	fs.String("category", "", "Filter by category")
	fs.String("type", "", "Filter by type (external|local)")
	fs.StringP("query", "q", "", "Match title, notes or URL")

	return &Command{
		Flags: fs,
		Usage: "links [flags]",
		Short: "List links by category",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			linkType, err := enumFlag(fs, "type", hqdata.LinkTypes)
			if err != nil {
				return err
			}

			category, _ := fs.GetString("category")
			text, _ := fs.GetString("query")

			ds, err := a.svc.Merged()
			if err != nil {
				return err
			}

			links := query.FilterLinks(ds.Links, query.LinkFilter{Category: category, Type: linkType, Text: text})

			for i, group := range query.GroupLinks(links) {
				if i > 0 {
					io.Println()
				}

				io.Println(io.Paint(group.Category, color.Bold))

				for _, link := range group.Links {
					io.Printf("  %s  %s  %s\n", link.ID, link.Title, link.URL)
				}
			}

			return nil
		},
	}
}

// AddLinkCmd returns the add-link command.
func AddLinkCmd(a *app) *Command {
	fs := flag.NewFlagSet("add-link", flag.ContinueOnError)
	fs.String("url", "", "URL or local path (required)")
	fs.String("category", defaultLinkCategory, "Category")
	fs.String("type", string(hqdata.LinkExternal), "Type (external|local)")
	fs.String("owner", "", "Owner")
	fs.String("notes", "", "Notes")

	return &Command{
		Flags:  fs,
		Usage:  "add-link <title> --url <url> [flags]",
		Writes: true,
		Short:  "Add link",
		Exec: func(_ context.Context, io *IO, args []string) error {
			title, err := requireArgs(args, "title")
			if err != nil {
				return err
			}

			linkType, err := enumFlag(fs, "type", hqdata.LinkTypes)
			if err != nil {
				return err
			}

			in := hqdata.NewLink{Title: title, Type: linkType}
			in.URL, _ = fs.GetString("url")
			in.Category, _ = fs.GetString("category")
			in.Owner, _ = fs.GetString("owner")
			in.Notes, _ = fs.GetString("notes")

			if in.URL == "" {
				return fmt.Errorf("%w: --url", errFlagRequired)
			}

			if in.Category == "" {
				return fmt.Errorf("--category: %w", errEmptyValue)
			}

			link, err := a.svc.AddLink(in)
			if err != nil {
				return fmt.Errorf("add link: %w", err)
			}

			a.logActivity(io, "link.added", link.ID, link.Title)

			io.Println(link.ID)

			return nil
		},
	}
}
