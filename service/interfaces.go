package service

import (
	"context"
	"time"

	"gramboard/models"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// GetByUsername retrieves a profile by its username, nil if not found
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)

	// GetAll returns all profiles ordered by follower count descending
	GetAll(ctx context.Context) ([]*models.Profile, error)

	// ListUsernames returns the identifiers of all tracked profiles
	ListUsernames(ctx context.Context) ([]string, error)

	// TouchLastSynced refreshes a profile's last-synchronized timestamp
	TouchLastSynced(ctx context.Context, username string) error

	// Upsert inserts a profile or updates its metrics if it already exists
	Upsert(ctx context.Context, profile *models.Profile) error

	// UpsertBatch inserts or updates multiple profiles within one transaction
	UpsertBatch(ctx context.Context, profiles []*models.Profile) error
}

// ScraperRunner defines the interface for invoking the external collector
type ScraperRunner interface {
	// Run launches the collector once and waits for it to terminate
	Run(ctx context.Context) error
}

// SyncService defines the interface for reconciliation operations
type SyncService interface {
	// SyncAll runs the external collector and then refreshes every tracked
	// profile, isolating per-profile failures into the returned report
	SyncAll(ctx context.Context) (*models.SyncReport, error)

	// SyncProfile refreshes a single profile's last-synchronized timestamp
	SyncProfile(ctx context.Context, username string) error

	// RunScraper runs only the external collector
	RunScraper(ctx context.Context) error
}

// LeaderboardService defines the interface for aggregation queries
type LeaderboardService interface {
	// GetLeaderboard composes the ranked profile list, top-5 cuts and
	// summary statistics into one dashboard response
	GetLeaderboard(ctx context.Context) (*models.Leaderboard, error)

	// GetTopProfiles returns the top n profiles by the given metric
	GetTopProfiles(ctx context.Context, metric string, n int) ([]*models.Profile, error)

	// GetSummaryStats returns aggregate statistics over all profiles
	GetSummaryStats(ctx context.Context) (*models.ProfileStats, error)

	// GetHighEngagement returns profiles with engagement >= minRate,
	// descending by engagement
	GetHighEngagement(ctx context.Context, minRate float64) ([]*models.Profile, error)

	// GetProfile retrieves a single profile, nil if not found
	GetProfile(ctx context.Context, username string) (*models.Profile, error)

	// GetAllProfiles returns all profiles ordered by followers descending
	GetAllProfiles(ctx context.Context) ([]*models.Profile, error)
}

// NextRunQuerier reports the next scheduled sync run, false when no run is
// scheduled (scheduler disabled or not started)
type NextRunQuerier interface {
	NextRun() (time.Time, bool)
}
