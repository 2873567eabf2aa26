package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kurihiro0119/gh-reinvite/internal/api"
	"github.com/kurihiro0119/gh-reinvite/internal/config"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
	"github.com/kurihiro0119/gh-reinvite/internal/reinvite"
	"github.com/kurihiro0119/gh-reinvite/internal/storage"
	"github.com/kurihiro0119/gh-reinvite/internal/storage/postgres"
	"github.com/kurihiro0119/gh-reinvite/internal/storage/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize run store
	var store storage.RunStore
	switch cfg.StorageType {
	case "postgres":
		store, err = postgres.NewPostgresStore(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL store: %v", err)
		}
	default:
		store, err = sqlite.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite store: %v", err)
		}
	}
	defer store.Close()

	// Initialize the reinvite executor
	svc := hosting.NewGitHubService(cfg.GitHubToken)
	executor := &reinvite.Executor{
		Service:  svc,
		Store:    store,
		Reporter: reinvite.NopReporter{},
	}

	// Initialize handler
	handler := api.NewHandler(store, executor)

	// Setup routes
	router := api.SetupRoutes(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	fmt.Printf("Starting API server on %s\n", addr)
	fmt.Printf("Storage type: %s\n", cfg.StorageType)

	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
