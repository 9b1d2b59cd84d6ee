package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gramboard/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// syncService implements the SyncService interface
type syncService struct {
	profileRepo ProfileRepository
	runner      ScraperRunner

	// Guards against overlapping runs. A firing that arrives while a
	// previous run is still in flight is skipped, never queued
	mu sync.Mutex
}

// NewSyncService creates a new sync service
func NewSyncService(profileRepo ProfileRepository, runner ScraperRunner) SyncService {
	return &syncService{
		profileRepo: profileRepo,
		runner:      runner,
	}
}

// SyncAll runs one full reconciliation pass: invoke the external collector,
// then walk every tracked profile and refresh its last-synchronized
// timestamp. A collector failure or a per-profile failure never aborts the
// batch; only a failed read of the profile list does
func (s *syncService) SyncAll(ctx context.Context) (*models.SyncReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	report := &models.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		ScraperOK: true,
	}

	log.Infof("Starting sync run %s", report.RunID)

	if err := s.runner.Run(ctx); err != nil {
		// The store may still hold useful prior data, so reconcile anyway
		log.Warnf("Scraper failed, continuing with existing data: %v", err)
		report.ScraperOK = false
	}

	usernames, err := s.profileRepo.ListUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked profiles: %w", err)
	}

	for _, username := range usernames {
		if err := s.syncOne(ctx, username); err != nil {
			log.Errorf("Failed to sync profile %s: %v", username, err)
			report.Failed = append(report.Failed, models.SyncFailure{
				Username: username,
				Reason:   err.Error(),
			})
			continue
		}
		report.Succeeded = append(report.Succeeded, username)
	}

	report.Duration = time.Since(report.StartedAt)
	log.Infof("Sync run %s completed in %v: %d succeeded, %d failed (scraper ok: %t)",
		report.RunID, report.Duration, len(report.Succeeded), len(report.Failed), report.ScraperOK)

	return report, nil
}

// SyncProfile refreshes a single profile's last-synchronized timestamp
func (s *syncService) SyncProfile(ctx context.Context, username string) error {
	return s.syncOne(ctx, username)
}

// RunScraper runs only the external collector
func (s *syncService) RunScraper(ctx context.Context) error {
	return s.runner.Run(ctx)
}

func (s *syncService) syncOne(ctx context.Context, username string) error {
	if err := s.profileRepo.TouchLastSynced(ctx, username); err != nil {
		return fmt.Errorf("failed to touch last synced for %s: %w", username, err)
	}
	return nil
}
