package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gramboard/models"
)

// Recognized metric names for top-N queries
const (
	MetricFollowers  = "followers"
	MetricFollowing  = "following"
	MetricPosts      = "posts"
	MetricEngagement = "engagement"
)

const topCutSize = 5

// leaderboardService implements the LeaderboardService interface
type leaderboardService struct {
	profileRepo ProfileRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(profileRepo ProfileRepository) LeaderboardService {
	return &leaderboardService{
		profileRepo: profileRepo,
	}
}

// GetLeaderboard composes the full ranked list, the top-5-by-followers and
// top-5-by-posts cuts, and summary statistics into one response
func (s *leaderboardService) GetLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	byFollowers := topNByMetric(profiles, MetricFollowers, len(profiles))

	rankings := make([]*models.LeaderboardEntry, 0, len(byFollowers))
	for i, profile := range byFollowers {
		rankings = append(rankings, &models.LeaderboardEntry{
			Rank:        i + 1,
			Username:    profile.Username,
			Followers:   profile.Followers,
			Following:   profile.Following,
			PostsCount:  profile.PostsCount,
			Engagement:  profile.Engagement,
			LastUpdated: profile.LastUpdated,
		})
	}

	leaderboard := &models.Leaderboard{
		GeneratedAt:    time.Now(),
		Rankings:       rankings,
		TopByFollowers: topNByMetric(profiles, MetricFollowers, topCutSize),
		TopByPosts:     topNByMetric(profiles, MetricPosts, topCutSize),
		Stats:          summarize(profiles),
	}

	return leaderboard, nil
}

// GetTopProfiles returns the top n profiles by the given metric
func (s *leaderboardService) GetTopProfiles(ctx context.Context, metric string, n int) ([]*models.Profile, error) {
	if !validMetric(metric) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	return topNByMetric(profiles, metric, n), nil
}

// GetSummaryStats returns aggregate statistics over all profiles
func (s *leaderboardService) GetSummaryStats(ctx context.Context) (*models.ProfileStats, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	return summarize(profiles), nil
}

// GetHighEngagement returns profiles with engagement >= minRate, descending
func (s *leaderboardService) GetHighEngagement(ctx context.Context, minRate float64) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	return filterHighEngagement(profiles, minRate), nil
}

// GetProfile retrieves a single profile, nil if not found
func (s *leaderboardService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetAllProfiles returns all profiles ordered by followers descending
func (s *leaderboardService) GetAllProfiles(ctx context.Context) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	return profiles, nil
}

func validMetric(metric string) bool {
	switch metric {
	case MetricFollowers, MetricFollowing, MetricPosts, MetricEngagement:
		return true
	}
	return false
}

func metricValue(profile *models.Profile, metric string) float64 {
	switch metric {
	case MetricFollowers:
		return float64(profile.Followers)
	case MetricFollowing:
		return float64(profile.Following)
	case MetricPosts:
		return float64(profile.PostsCount)
	case MetricEngagement:
		return profile.Engagement
	}
	return 0
}

// topNByMetric sorts a copy of the snapshot descending by the given metric.
// The sort is stable so ties keep the original read order
func topNByMetric(profiles []*models.Profile, metric string, n int) []*models.Profile {
	sorted := make([]*models.Profile, len(profiles))
	copy(sorted, profiles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return metricValue(sorted[i], metric) > metricValue(sorted[j], metric)
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}

	return sorted[:n]
}

// summarize computes aggregate statistics over the snapshot. An empty
// snapshot yields a zero count and zero aggregates, never a division error
func summarize(profiles []*models.Profile) *models.ProfileStats {
	stats := &models.ProfileStats{
		Count: len(profiles),
	}
	if len(profiles) == 0 {
		return stats
	}

	var totalEngagement float64
	stats.MaxFollowers = profiles[0].Followers
	stats.MinFollowers = profiles[0].Followers

	for _, profile := range profiles {
		stats.TotalFollowers += profile.Followers
		stats.TotalPosts += profile.PostsCount
		totalEngagement += profile.Engagement

		if profile.Followers > stats.MaxFollowers {
			stats.MaxFollowers = profile.Followers
		}
		if profile.Followers < stats.MinFollowers {
			stats.MinFollowers = profile.Followers
		}
	}

	stats.AvgFollowers = float64(stats.TotalFollowers) / float64(stats.Count)
	stats.AvgEngagement = totalEngagement / float64(stats.Count)

	return stats
}

// filterHighEngagement returns the subset with engagement >= minRate,
// descending by engagement rate
func filterHighEngagement(profiles []*models.Profile, minRate float64) []*models.Profile {
	filtered := make([]*models.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if profile.Engagement >= minRate {
			filtered = append(filtered, profile)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Engagement > filtered[j].Engagement
	})

	return filtered
}
