package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/evops/catalog/internal/config"
	"github.com/evops/catalog/internal/database/events"
	"github.com/evops/catalog/internal/database/tags"
	"github.com/evops/catalog/internal/database/users"
	"github.com/evops/catalog/internal/domain"
)

// ListCommand prints users, tags or events for operational inspection.
type ListCommand struct {
	Kind         string // "users", "tags" or "events"
	DatabasePath string
	After        string
	Limit        int
	TagIDs       string
	Search       string
}

func NewListCommand(kind string) *ListCommand {
	return &ListCommand{Kind: kind}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet(cmd.Kind, flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the sqlite database file (overrides DATABASE_PATH)")
	if cmd.Kind != "users" {
		fs.StringVar(&cmd.After, "after", "", "Only show entries after this ID")
		fs.IntVar(&cmd.Limit, "limit", config.NewConfig().Listing.DefaultLimit, "Page size (1-100)")
	}
	if cmd.Kind == "events" {
		fs.StringVar(&cmd.TagIDs, "tags", "", "Comma-separated tag IDs; show events with any of them")
		fs.StringVar(&cmd.Search, "search", "", "Case-insensitive text to look for in titles and descriptions")
	}

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], cmd.Kind)
		fmt.Fprintf(os.Stderr, "List %s stored in the catalog.\n\n", cmd.Kind)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		if cmd.Kind == "events" {
			fmt.Fprintf(os.Stderr, "\nExamples:\n")
			fmt.Fprintf(os.Stderr, "  %s events -search meetup -limit 10\n", os.Args[0])
			fmt.Fprintf(os.Stderr, "  %s events -tags 0190c7a4-...,0190c7a5-...\n", os.Args[0])
		}
	}

	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	db, log, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	ctx := context.Background()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch cmd.Kind {
	case "users":
		list, err := users.NewRepository(db, log).List(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tLOGIN\tDISPLAY NAME")
		for _, u := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Login, u.DisplayName)
		}

	case "tags":
		limit, err := domain.NewLimit(cmd.Limit)
		if err != nil {
			return err
		}
		var after *domain.TagID
		if cmd.After != "" {
			id, err := domain.ParseTagID(cmd.After)
			if err != nil {
				return err
			}
			after = &id
		}
		list, err := tags.NewRepository(db, log).List(ctx, after, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tOWNER\tALIASES")
		for _, t := range list {
			owner := "-"
			if t.OwnerID != nil {
				owner = t.OwnerID.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, owner, joinAliases(t.Aliases))
		}

	case "events":
		filter, err := cmd.eventFilter()
		if err != nil {
			return err
		}
		list, err := events.NewRepository(db, log).List(ctx, filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tIMAGES\tTAGS\tMODIFIED")
		for _, ev := range list {
			names := make([]string, 0, ev.Tags.Len())
			for _, t := range ev.Tags.Items() {
				names = append(names, t.Name.String())
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				ev.ID, ev.Title, ev.Author.Login, ev.ImageIDs.Len(), strings.Join(names, ","), ev.ModifiedAt.Format("2006-01-02 15:04"))
		}

	default:
		return fmt.Errorf("unknown list kind %q", cmd.Kind)
	}
	return nil
}

func (cmd *ListCommand) eventFilter() (events.ListFilter, error) {
	limit, err := domain.NewLimit(cmd.Limit)
	if err != nil {
		return events.ListFilter{}, err
	}
	filter := events.ListFilter{Limit: limit}

	if cmd.After != "" {
		id, err := domain.ParseEventID(cmd.After)
		if err != nil {
			return events.ListFilter{}, err
		}
		filter.LastID = &id
	}
	if cmd.TagIDs != "" {
		for _, raw := range strings.Split(cmd.TagIDs, ",") {
			id, err := domain.ParseTagID(strings.TrimSpace(raw))
			if err != nil {
				return events.ListFilter{}, err
			}
			filter.TagIDs = append(filter.TagIDs, id)
		}
	}
	if cmd.Search != "" {
		term, err := domain.NewSearchTerm(cmd.Search)
		if err != nil {
			return events.ListFilter{}, err
		}
		filter.Search = &term
	}
	return filter, nil
}

func joinAliases(aliases domain.TagAliases) string {
	if aliases.Len() == 0 {
		return "-"
	}
	names := make([]string, 0, aliases.Len())
	for _, a := range aliases.Items() {
		names = append(names, a.String())
	}
	return strings.Join(names, ",")
}
