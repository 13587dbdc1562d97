package main

import (
	"context"
	"flag"
	"log"
	"os"

	"course-rag-be/internal/bootstrap"
	"course-rag-be/internal/config"
	"course-rag-be/pkg/database"

	"github.com/fatih/color"
)

// One-shot corpus loader: parses every course document in a folder, stores
// the new ones, and embeds them synchronously so the command exits only when
// the index is ready.
func main() {
	docsPath := flag.String("docs", "", "folder containing course documents (defaults to DOCS_PATH)")
	flag.Parse()

	cfg := config.Load()

	path := *docsPath
	if path == "" {
		path = cfg.Ingest.DocsPath
	}
	if path == "" {
		color.Red("No docs folder given. Pass -docs or set DOCS_PATH.")
		os.Exit(1)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	ctx := context.Background()

	color.Cyan("Loading course documents from %s ...", path)
	added, err := container.IngestService.LoadCourseFolder(ctx, path)
	if err != nil {
		color.Red("Load failed: %v", err)
		os.Exit(1)
	}
	if len(added) == 0 {
		color.Yellow("No new courses found, index is up to date.")
		return
	}

	for _, title := range added {
		color.White("Embedding: %s", title)
		if err := container.ConsumerService.ProcessCourse(ctx, title); err != nil {
			color.Red("  failed: %v", err)
			os.Exit(1)
		}
		color.Green("  done")
	}

	color.Green("Loaded %d new course(s).", len(added))
}
