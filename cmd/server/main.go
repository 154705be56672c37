package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"toolhub/internal/approval"
	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/email"
	"toolhub/internal/jobs"
	"toolhub/internal/metrics"
	"toolhub/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Seed tags and tools from the optional seed file. Seeding is
	// idempotent; existing rows are left alone.
	seed, err := config.LoadSeedConfig()
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	if seed != nil {
		if err := database.SeedTags(ctx, seed.Tags); err != nil {
			log.Fatalf("Failed to seed tags: %v", err)
		}
		for _, tool := range seed.Tools {
			if err := database.SeedTool(ctx, tool.Name, tool.URL, tool.Description, tool.Tags); err != nil {
				log.Fatalf("Failed to seed tool %q: %v", tool.Name, err)
			}
		}
		log.Printf("Seeded %d tags and %d tools", len(seed.Tags), len(seed.Tools))
	}

	// Prometheus decision metrics
	metrics.Init(database)

	workflow := approval.New(database, slog.Default())
	notifier := email.NewNotifier(cfg, database)
	checker := jobs.NewHealthChecker(database, cfg.HealthCheckInterval, cfg.HealthCheckMaxAge)

	// Background health checker
	checkerCtx, stopChecker := context.WithCancel(ctx)
	defer stopChecker()
	if cfg.EnableHealthChecker {
		go checker.Start(checkerCtx)
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, workflow, notifier, checker); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopChecker()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
