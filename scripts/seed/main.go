// Seed adds sample submissions to the configured store. Run from project root: go run ./scripts/seed [-n 50]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wedding-rsvp/internal/cache"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/database"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/relay"
	"wedding-rsvp/internal/repository"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/internal/store"
)

var (
	names    = []string{"Aigerim", "Nurlan", "Dana", "Yerlan", "Madina", "Askar", "Zhanna", "Timur"}
	messages = []string{
		"Құттықтаймыз!",
		"Бақытты болыңдар!",
		"Поздравляем молодых!",
		"Congratulations!",
	}
	attendance = []models.Attendance{models.AttendanceYes, models.AttendanceMaybe, models.AttendanceNo}
)

func main() {
	_ = godotenv.Load()
	n := flag.Int("n", 50, "number of submissions")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Get()

	var kv store.KV
	switch cfg.StoreBackend {
	case config.BackendRedis:
		if rc := cache.Client(ctx); rc != nil {
			kv = store.NewRedis(rc)
		}
	case config.BackendPostgres:
		if db := database.DB(ctx); db != nil {
			if err := database.MigrateOrCreateSchema(ctx, db); err != nil {
				fmt.Fprintln(os.Stderr, "Schema failed:", err)
				os.Exit(1)
			}
			kv = store.NewPostgres(db)
		}
	}
	localDB, err := database.OpenLocal(ctx, cfg.LocalStorePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Local store failed:", err)
		os.Exit(1)
	}
	defer localDB.Close()
	repo := repository.Select(ctx, kv, store.NewSQLite(localDB))

	// Sample data never alerts the host.
	w := rsvp.NewWriter(repo, relay.NotifierFunc(func(context.Context, models.Submission) error { return nil }),
		rsvp.WithLocation(cfg.Event.Location()))

	start := time.Now()
	for i := 0; i < *n; i++ {
		s, err := w.Build(models.Form{
			Name:       names[i%len(names)],
			Message:    messages[i%len(messages)],
			Attendance: attendance[i%len(attendance)],
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Build failed:", err)
			os.Exit(1)
		}
		if err := repo.Save(ctx, s); err != nil {
			fmt.Fprintln(os.Stderr, "Save failed:", err)
			os.Exit(1)
		}
		fmt.Printf("\rInserted %d / %d", i+1, *n)
	}
	if rc := cache.Client(ctx); rc != nil {
		cache.NewSubmissions(rc, 0).Invalidate(ctx)
	}
	fmt.Printf("\nDone: %d submissions in %v\n", *n, time.Since(start))
}
