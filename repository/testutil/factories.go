package testutil

import (
	"gramboard/models"
)

// CreateTestProfile creates a test profile with default metrics
func CreateTestProfile(username string) *models.Profile {
	return &models.Profile{
		Username:   username,
		Followers:  1000,
		Following:  500,
		PostsCount: 100,
		Engagement: 2.5,
	}
}

// CreateTestProfileWithMetrics creates a test profile with specific metrics
func CreateTestProfileWithMetrics(username string, followers, following, posts int64, engagement float64) *models.Profile {
	return &models.Profile{
		Username:   username,
		Followers:  followers,
		Following:  following,
		PostsCount: posts,
		Engagement: engagement,
	}
}
