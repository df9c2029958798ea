package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"linkdeck/internal/config"
	"linkdeck/internal/db"
	"linkdeck/internal/email"
	"linkdeck/internal/jobs"
	"linkdeck/internal/metrics"
	"linkdeck/internal/server"
)

func main() {
	// Load .env if present; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	if cfg.IsDev() {
		if err := database.SeedDemoData(ctx); err != nil {
			log.Printf("Warning: failed to seed demo data: %v", err)
		}
	}

	metrics.Init(database)
	notifier := email.NewNotifier(cfg, database)

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Background metadata refresh
	if cfg.RefreshEnabled {
		refresher := jobs.NewMetadataRefresher(database, cfg.RefreshInterval, cfg.RefreshMaxAge)
		go refresher.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
