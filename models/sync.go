package models

import (
	"time"
)

// SyncFailure records one profile that could not be updated during a sync run
type SyncFailure struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// SyncReport is the in-memory record of one reconciliation pass. It is never
// persisted; it exists so callers and tests can assert on partial-failure
// shape instead of digging through logs
type SyncReport struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	ScraperOK bool          `json:"scraper_ok"`
	Succeeded []string      `json:"succeeded"`
	Failed    []SyncFailure `json:"failed"`
}
