package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/estoqueops/estqop/internal/config"
	"github.com/estoqueops/estqop/internal/drive"
	"github.com/estoqueops/estqop/internal/repository"
	"github.com/estoqueops/estqop/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	driveService, err := drive.NewService(cfg.Drive.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Initialize Database; without it ingests still run, unrecorded
	var ingestRepo *repository.IngestRepository
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Printf("Ingest ledger unavailable, provenance will not be recorded: %v", err)
	} else {
		ingestRepo = repository.NewIngestRepository(db.DB.DB)
	}

	// Initialize Services
	ingestService := drive.NewIngestService(driveService, ingestRepo, cfg.App.InboxDir)

	// Register routes
	r := mux.NewRouter()
	driveHandler := drive.NewHandler(driveService, ingestService)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Poll the drop folder in the background when one is configured
	if cfg.Drive.FolderID != "" {
		interval := time.Duration(cfg.Drive.PollSeconds) * time.Second
		go ingestService.Watch(context.Background(), cfg.Drive.FolderID, interval)
		log.Printf("Watching Drive folder %s every %s", cfg.Drive.FolderID, interval)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
