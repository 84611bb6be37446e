package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/noteful/config"
	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/internal/container"
	pginfra "github.com/oksasatya/noteful/internal/infrastructure/postgres"
	"github.com/oksasatya/noteful/pkg/helpers"
)

type seedNote struct {
	title, content, folder string
	tags                   []string
}

var (
	seedFolders = []string{"Archive", "Drafts", "Personal", "Work"}
	seedTags    = []string{"breed", "hybrid", "domestic", "feral"}
	seedNotes   = []seedNote{
		{"5 life lessons learned from cats", "Lorem ipsum dolor sit amet, consectetur adipiscing elit.", "Archive", []string{"breed"}},
		{"What the government doesn't want you to know about cats", "Posuere sollicitudin aliquam ultrices sagittis orci.", "Drafts", []string{"breed", "hybrid"}},
		{"The most boring article about cats you'll ever read", "Lorem ipsum dolor sit amet, consectetur adipiscing elit.", "Personal", nil},
		{"7 things Lady Gaga has in common with cats", "Posuere sollicitudin aliquam ultrices sagittis orci.", "Personal", []string{"domestic", "feral"}},
		{"10 ways cats can help you live to 100", "Posuere sollicitudin aliquam ultrices sagittis orci.", "", []string{"feral"}},
	}
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	st := container.PostgresStores(pool)
	hasher := helpers.BcryptHasher{Cost: cfg.BcryptCost}
	users := application.NewUserService(st.Users, hasher, logger)
	cascade := application.NewCascadeCoordinator(st.Tx, st.Folders, st.Tags, st.Notes, logger)
	folders := application.NewFolderService(st.Folders, cascade, logger)
	tags := application.NewTagService(st.Tags, cascade, logger)
	notes := application.NewNoteService(st.Notes, st.Tags, application.NewReferenceValidator(st.Folders, st.Tags), logger)

	username, password := "demouser", "password123"
	u, err := users.Register(ctx, application.RegisterInput{Username: username, Password: password, Fullname: "Demo User"})
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", username, err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", u.ID, username, password)

	folderIDs := map[string]string{}
	for _, name := range seedFolders {
		f, err := folders.Create(ctx, name, u.ID)
		if err != nil {
			log.Fatalf("failed to seed folder %s: %v", name, err)
		}
		folderIDs[name] = f.ID
	}
	tagIDs := map[string]string{}
	for _, name := range seedTags {
		t, err := tags.Create(ctx, name, u.ID)
		if err != nil {
			log.Fatalf("failed to seed tag %s: %v", name, err)
		}
		tagIDs[name] = t.ID
	}

	for _, sn := range seedNotes {
		ids := make([]string, 0, len(sn.tags))
		for _, name := range sn.tags {
			ids = append(ids, tagIDs[name])
		}
		raw, err := json.Marshal(ids)
		if err != nil {
			log.Fatalf("encode tags: %v", err)
		}
		in := application.NoteInput{Title: sn.title, Content: sn.content, FolderID: folderIDs[sn.folder], Tags: raw}
		if _, err := notes.Create(ctx, in, u.ID); err != nil {
			log.Fatalf("failed to seed note %q: %v", sn.title, err)
		}
	}
	fmt.Printf("seeded %d folders, %d tags, %d notes\n", len(seedFolders), len(seedTags), len(seedNotes))
}
