// Command seed fills the configured store with sample folders and notes,
// handy for trying out the API or the clients against realistic data.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"esulat/pkg/config"
	"esulat/pkg/kv"
	"esulat/pkg/repository"
	"esulat/pkg/services"
)

var sampleNotes = map[string][]struct {
	Title   string
	Content string
}{
	"Personal": {
		{Title: "Grocery list", Content: "Rice, eggs, kalamansi, coffee"},
		{Title: "Weekend plans", Content: "Visit the beach if the weather holds."},
	},
	"Work": {
		{Title: "Standup notes", Content: "Finish the report draft before Thursday."},
		{Title: "Ideas", Content: "Prototype the new dashboard layout."},
	},
	"School": {
		{Title: "Reading list", Content: "Chapters 4-6 for next week."},
	},
}

func main() {
	cfg, err := config.Load(os.Getenv("ESULAT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()

	var store kv.Store
	switch cfg.Storage.Backend {
	case config.BackendBadger:
		store, err = kv.NewBadgerStore(kv.BadgerConfig{
			Path:       cfg.Storage.DataDir,
			SyncWrites: cfg.Storage.SyncWrites,
		})
	default:
		store, err = kv.NewFileStore(cfg.Storage.DataDir, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := repository.New(store, logger)
	folderService := services.NewFolders(repo, logger)
	noteService := services.NewNotes(repo, logger)

	for name, notes := range sampleNotes {
		folder, err := folderService.Create(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping folder %q: %v\n", name, err)
			continue
		}
		for _, n := range notes {
			if _, err := noteService.Create(folder.ID, n.Title, n.Content); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create note %q: %v\n", n.Title, err)
				continue
			}
		}
		fmt.Printf("Seeded folder %q with %d notes\n", name, len(notes))
	}
}
