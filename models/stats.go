package models

import (
	"time"
)

// ProfileStats represents aggregated statistics over all tracked profiles
type ProfileStats struct {
	Count          int     `json:"count"`
	TotalFollowers int64   `json:"total_followers"`
	AvgFollowers   float64 `json:"avg_followers"`
	MaxFollowers   int64   `json:"max_followers"`
	MinFollowers   int64   `json:"min_followers"`
	TotalPosts     int64   `json:"total_posts"`
	AvgEngagement  float64 `json:"avg_engagement"`
}

// LeaderboardEntry represents a profile's ranked entry in the leaderboard
type LeaderboardEntry struct {
	Rank        int        `json:"rank"`
	Username    string     `json:"username"`
	Followers   int64      `json:"followers"`
	Following   int64      `json:"following"`
	PostsCount  int64      `json:"posts_count"`
	Engagement  float64    `json:"engagement"`
	LastUpdated *time.Time `json:"last_updated"`
}

// Leaderboard is the composed dashboard view: the full ranked profile list,
// the top-5 cuts and summary statistics, recomputed on every query
type Leaderboard struct {
	GeneratedAt    time.Time           `json:"generated_at"`
	Rankings       []*LeaderboardEntry `json:"rankings"`
	TopByFollowers []*Profile          `json:"top_by_followers"`
	TopByPosts     []*Profile          `json:"top_by_posts"`
	Stats          *ProfileStats       `json:"stats"`
}
