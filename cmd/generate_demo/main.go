// Command generate_demo creates a demo database with a few users, tags and events.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/evops/catalog/internal/auth"
	"github.com/evops/catalog/internal/config"
	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/database/events"
	"github.com/evops/catalog/internal/database/tags"
	"github.com/evops/catalog/internal/database/users"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/logger"
)

const defaultDemoDatabasePath = "./demo/demo.db"

const demoPassword = "demo-password-123"

type demoTag struct {
	Name    string
	Aliases []string
	System  bool
}

type demoEvent struct {
	Title       string
	Description string
	Attendance  bool
	Tags        []string
	Images      []string
}

var demoTags = []demoTag{
	{Name: "music", System: true},
	{Name: "sports", System: true},
	{Name: "rust", Aliases: []string{"rs", "rustlang"}},
	{Name: "go", Aliases: []string{"golang"}},
}

var demoEvents = []demoEvent{
	{
		Title:       "Rust Meetup",
		Description: "Monthly gathering for Rustaceans. Lightning talks welcome.",
		Attendance:  true,
		Tags:        []string{"rust"},
		Images:      []string{"https://images.example.com/rust-meetup.png"},
	},
	{
		Title:       "Gophers Night",
		Description: "Go talks, pizza and a hands-on session on generics.",
		Tags:        []string{"go", "rust"},
	},
	{
		Title:       "Campus Jazz Evening",
		Description: "Student bands play in the main hall.",
		Attendance:  true,
		Tags:        []string{"music"},
		Images: []string{
			"https://images.example.com/jazz-1.png",
			"https://images.example.com/jazz-2.png",
		},
	},
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log, err := logger.New("dev")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Generating demo database", "path", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatal("Failed to remove existing demo database", "error", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatal("Failed to create demo directory", "error", err)
	}

	cfg := config.NewConfig()
	cfg.Database.Driver = config.DatabaseDriverSQLite
	cfg.Database.Path = *dbPath

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to create database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	authService := auth.NewService(users.NewRepository(db, log), cfg.Auth, log)
	session, err := authService.SignUp(ctx, "demo", "Demo Organiser", demoPassword)
	if err != nil {
		log.Fatal("Failed to create demo user", "error", err)
	}

	tagIDs := createTags(ctx, tags.NewRepository(db, log), session.UserID, log)
	createEvents(ctx, events.NewRepository(db, log), session.UserID, tagIDs, log)

	log.Info("Demo database generated successfully", "login", "demo")
}

func createTags(ctx context.Context, repo *tags.Repository, owner domain.UserID, log *logger.Logger) map[string]domain.TagID {
	ids := make(map[string]domain.TagID)
	for _, t := range demoTags {
		form, err := tagForm(t)
		if err != nil {
			log.Warn("Skipping invalid demo tag", "name", t.Name, "error", err)
			continue
		}
		var ownerID *domain.UserID
		if !t.System {
			ownerID = &owner
		}
		id, err := repo.Create(ctx, form, ownerID)
		if err != nil {
			log.Warn("Failed to create tag", "name", t.Name, "error", err)
			continue
		}
		ids[t.Name] = id
	}
	return ids
}

func tagForm(t demoTag) (domain.NewTagForm, error) {
	name, err := domain.NewTagName(t.Name)
	if err != nil {
		return domain.NewTagForm{}, err
	}
	aliases := make([]domain.TagAlias, 0, len(t.Aliases))
	for _, raw := range t.Aliases {
		alias, err := domain.NewTagAlias(raw)
		if err != nil {
			return domain.NewTagForm{}, err
		}
		aliases = append(aliases, alias)
	}
	set, err := domain.NewTagAliases(aliases)
	if err != nil {
		return domain.NewTagForm{}, err
	}
	return domain.NewTagForm{Name: name, Aliases: set}, nil
}

func createEvents(ctx context.Context, repo *events.Repository, author domain.UserID, tagIDs map[string]domain.TagID, log *logger.Logger) {
	for _, e := range demoEvents {
		form, err := eventForm(e, tagIDs)
		if err != nil {
			log.Warn("Skipping invalid demo event", "title", e.Title, "error", err)
			continue
		}
		ev, err := repo.Create(ctx, form, author)
		if err != nil {
			log.Warn("Failed to create event", "title", e.Title, "error", err)
			continue
		}
		log.Info("Saved event", "title", e.Title, "images", ev.ImageIDs.Len(), "tags", ev.Tags.Len())
	}
}

func eventForm(e demoEvent, tagIDs map[string]domain.TagID) (domain.NewEventForm, error) {
	title, err := domain.NewEventTitle(e.Title)
	if err != nil {
		return domain.NewEventForm{}, err
	}
	desc, err := domain.NewEventDescription(e.Description)
	if err != nil {
		return domain.NewEventForm{}, err
	}

	ids := make([]domain.TagID, 0, len(e.Tags))
	for _, name := range e.Tags {
		if id, ok := tagIDs[name]; ok {
			ids = append(ids, id)
		}
	}
	tagSet, err := domain.NewEventTagIDs(ids)
	if err != nil {
		return domain.NewEventForm{}, err
	}

	urls := make([]domain.EventImageURL, 0, len(e.Images))
	for _, raw := range e.Images {
		u, err := domain.NewEventImageURL(raw)
		if err != nil {
			return domain.NewEventForm{}, err
		}
		urls = append(urls, u)
	}
	images, err := domain.NewEventImageURLs(urls)
	if err != nil {
		return domain.NewEventForm{}, err
	}

	return domain.NewEventForm{
		Title:          title,
		Description:    desc,
		WithAttendance: e.Attendance,
		TagIDs:         tagSet,
		ImageURLs:      images,
	}, nil
}
