package models

import (
	"time"
)

// Profile represents one tracked social-media account and its stored metrics
type Profile struct {
	Username    string     `db:"username" json:"username"`
	Followers   int64      `db:"followers" json:"followers"`
	Following   int64      `db:"following" json:"following"`
	PostsCount  int64      `db:"posts_count" json:"posts_count"`
	Engagement  float64    `db:"engagement" json:"engagement"`
	LastUpdated *time.Time `db:"last_updated" json:"last_updated"` // nil until first sync
}
