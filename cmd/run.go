package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"gramboard/api"
	"gramboard/config"
	"gramboard/database"
	"gramboard/repository"
	"gramboard/scheduler"
	"gramboard/scraper"
	"gramboard/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting gramboard...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize repository
	profileRepo := repository.NewProfileRepository(db)

	// Initialize scraper runner
	scraperTimeout := time.Duration(cfg.ScraperTimeoutMinutes) * time.Minute
	runner := scraper.NewRunner(cfg.ScraperCommand, scraperTimeout)
	log.Printf("Scraper runner initialized (command: %q, timeout: %v)", cfg.ScraperCommand, scraperTimeout)

	// Initialize services
	syncService := service.NewSyncService(profileRepo, runner)
	leaderboardService := service.NewLeaderboardService(profileRepo)
	log.Println("Services initialized successfully")

	// Initialize and start the recurring sync scheduler
	sched := scheduler.New(cfg.SyncSchedule, scraperTimeout+5*time.Minute, func(ctx context.Context) {
		if _, err := syncService.SyncAll(ctx); err != nil {
			if errors.Is(err, service.ErrSyncInProgress) {
				log.Println("Scheduled sync skipped: a run is already in progress")
				return
			}
			log.Printf("Scheduled sync failed: %v", err)
		}
	})
	sched.Start()
	if next, ok := sched.NextRun(); ok {
		log.Printf("Next scheduled sync: %v", next)
	}

	// Initialize HTTP server
	router := api.NewServer(syncService, leaderboardService, sched, cfg.HighEngagementThreshold)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server failure
	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")

	// Stop the scheduler and wait for any in-flight sync to finish
	<-sched.Stop().Done()

	// Shut down the HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close the database pool
	db.Close()
	log.Println("Shutdown complete")

	return nil
}
