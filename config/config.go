package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP server configuration
	ListenAddr string

	// Scraper configuration
	ScraperCommand        string // Command line invoking the external collector
	ScraperTimeoutMinutes int    // Upper bound on one collector run

	// Sync configuration
	SyncSchedule string // Cron expression for the recurring sync job

	// Aggregation defaults
	HighEngagementThreshold float64 // Minimum engagement rate (percent)

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// HTTP server
		ListenAddr: os.Getenv("LISTEN_ADDR"),

		// Scraper
		ScraperCommand:        os.Getenv("SCRAPER_COMMAND"),
		ScraperTimeoutMinutes: 30,

		// Sync schedule
		SyncSchedule: os.Getenv("SYNC_SCHEDULE"),

		// Aggregation
		HighEngagementThreshold: 5.0,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Defaults
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.ScraperCommand == "" {
		config.ScraperCommand = "python3 scraper/scraper.py"
	}
	if config.SyncSchedule == "" {
		// Midnight local time, once per day
		config.SyncSchedule = "0 0 * * *"
	}

	// Override defaults if environment variables are set
	if timeout := os.Getenv("SCRAPER_TIMEOUT_MINUTES"); timeout != "" {
		if parsedTimeout, err := strconv.Atoi(timeout); err == nil && parsedTimeout > 0 {
			config.ScraperTimeoutMinutes = parsedTimeout
		}
	}
	if threshold := os.Getenv("HIGH_ENGAGEMENT_THRESHOLD"); threshold != "" {
		if parsedThreshold, err := strconv.ParseFloat(threshold, 64); err == nil && parsedThreshold >= 0 {
			config.HighEngagementThreshold = parsedThreshold
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
