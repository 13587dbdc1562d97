package main

import (
	"context"
	"log"

	"course-rag-be/internal/bootstrap"
	"course-rag-be/internal/config"
	"course-rag-be/internal/server"
	"course-rag-be/internal/tracer"
	"course-rag-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services. Subscribing completes before the startup
	// ingest can publish, so index messages are never dropped.
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Load course documents on startup when a docs folder is configured
	if cfg.Ingest.DocsPath != "" {
		go func() {
			added, err := container.IngestService.LoadCourseFolder(context.Background(), cfg.Ingest.DocsPath)
			if err != nil {
				log.Printf("Startup ingest error: %v", err)
				return
			}
			log.Printf("Startup ingest queued %d new course(s)", len(added))
		}()
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
