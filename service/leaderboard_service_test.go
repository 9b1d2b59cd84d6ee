package service

import (
	"context"
	"errors"
	"testing"

	"gramboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture mirroring the store's read order (followers descending)
func snapshotProfiles() []*models.Profile {
	return []*models.Profile{
		{Username: "b", Followers: 500, Following: 50, PostsCount: 20, Engagement: 6.0},
		{Username: "c", Followers: 200, Following: 80, PostsCount: 90, Engagement: 7.0},
		{Username: "a", Followers: 100, Following: 30, PostsCount: 40, Engagement: 3.0},
	}
}

func TestLeaderboardService_GetTopProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("top 2 by followers", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		top, err := svc.GetTopProfiles(ctx, MetricFollowers, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)

		assert.Equal(t, "b", top[0].Username)
		assert.Equal(t, int64(500), top[0].Followers)
		assert.Equal(t, "c", top[1].Username)
		assert.Equal(t, int64(200), top[1].Followers)
	})

	t.Run("top by posts", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		top, err := svc.GetTopProfiles(ctx, MetricPosts, 3)
		require.NoError(t, err)
		require.Len(t, top, 3)

		assert.Equal(t, "c", top[0].Username)
		assert.Equal(t, "a", top[1].Username)
		assert.Equal(t, "b", top[2].Username)
	})

	t.Run("n larger than set", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		top, err := svc.GetTopProfiles(ctx, MetricEngagement, 10)
		require.NoError(t, err)
		assert.Len(t, top, 3)
	})

	t.Run("ties keep read order", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return([]*models.Profile{
			{Username: "first", Followers: 300, Engagement: 5.0},
			{Username: "second", Followers: 300, Engagement: 5.0},
			{Username: "third", Followers: 300, Engagement: 5.0},
		}, nil)

		svc := NewLeaderboardService(mockRepo)

		top, err := svc.GetTopProfiles(ctx, MetricFollowers, 3)
		require.NoError(t, err)

		assert.Equal(t, "first", top[0].Username)
		assert.Equal(t, "second", top[1].Username)
		assert.Equal(t, "third", top[2].Username)
	})

	t.Run("unknown metric", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)

		svc := NewLeaderboardService(mockRepo)

		_, err := svc.GetTopProfiles(ctx, "likes", 5)
		assert.ErrorIs(t, err, ErrUnknownMetric)

		// The snapshot must not be read for an invalid metric
		mockRepo.AssertNotCalled(t, "GetAll")
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(nil, errors.New("store unavailable"))

		svc := NewLeaderboardService(mockRepo)

		_, err := svc.GetTopProfiles(ctx, MetricFollowers, 5)
		assert.Error(t, err)
	})
}

func TestLeaderboardService_GetSummaryStats(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty set", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		stats, err := svc.GetSummaryStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.Count)
		assert.Equal(t, int64(800), stats.TotalFollowers)
		assert.InDelta(t, 266.67, stats.AvgFollowers, 0.01)
		assert.Equal(t, int64(500), stats.MaxFollowers)
		assert.Equal(t, int64(100), stats.MinFollowers)
		assert.Equal(t, int64(150), stats.TotalPosts)
		assert.InDelta(t, 5.333, stats.AvgEngagement, 0.001)

		assert.GreaterOrEqual(t, float64(stats.MaxFollowers), stats.AvgFollowers)
		assert.GreaterOrEqual(t, stats.AvgFollowers, float64(stats.MinFollowers))
	})

	t.Run("empty set", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return([]*models.Profile{}, nil)

		svc := NewLeaderboardService(mockRepo)

		stats, err := svc.GetSummaryStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, stats.Count)
		assert.Zero(t, stats.TotalFollowers)
		assert.Zero(t, stats.AvgFollowers)
		assert.Zero(t, stats.MaxFollowers)
		assert.Zero(t, stats.MinFollowers)
	})
}

func TestLeaderboardService_GetHighEngagement(t *testing.T) {
	ctx := context.Background()

	t.Run("default threshold", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		high, err := svc.GetHighEngagement(ctx, 5.0)
		require.NoError(t, err)
		require.Len(t, high, 2)

		// Descending by engagement rate
		assert.Equal(t, "c", high[0].Username)
		assert.InDelta(t, 7.0, high[0].Engagement, 0.0001)
		assert.Equal(t, "b", high[1].Username)
		assert.InDelta(t, 6.0, high[1].Engagement, 0.0001)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		high, err := svc.GetHighEngagement(ctx, 6.0)
		require.NoError(t, err)
		require.Len(t, high, 2)
		assert.Equal(t, "b", high[1].Username)
	})

	t.Run("zero threshold returns full set", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

		svc := NewLeaderboardService(mockRepo)

		high, err := svc.GetHighEngagement(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, high, 3)
	})
}

func TestLeaderboardService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockProfileRepository)
	mockRepo.On("GetAll", ctx).Return(snapshotProfiles(), nil)

	svc := NewLeaderboardService(mockRepo)

	board, err := svc.GetLeaderboard(ctx)
	require.NoError(t, err)

	require.Len(t, board.Rankings, 3)
	assert.Equal(t, 1, board.Rankings[0].Rank)
	assert.Equal(t, "b", board.Rankings[0].Username)
	assert.Equal(t, 2, board.Rankings[1].Rank)
	assert.Equal(t, "c", board.Rankings[1].Username)
	assert.Equal(t, 3, board.Rankings[2].Rank)
	assert.Equal(t, "a", board.Rankings[2].Username)

	// Top cuts truncate to min(5, set size)
	assert.Len(t, board.TopByFollowers, 3)
	assert.Equal(t, "b", board.TopByFollowers[0].Username)
	assert.Len(t, board.TopByPosts, 3)
	assert.Equal(t, "c", board.TopByPosts[0].Username)

	require.NotNil(t, board.Stats)
	assert.Equal(t, 3, board.Stats.Count)
	assert.False(t, board.GeneratedAt.IsZero())
}

func TestLeaderboardService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUsername", ctx, "b").Return(snapshotProfiles()[0], nil)

		svc := NewLeaderboardService(mockRepo)

		profile, err := svc.GetProfile(ctx, "b")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, int64(500), profile.Followers)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil)

		svc := NewLeaderboardService(mockRepo)

		profile, err := svc.GetProfile(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, profile)
	})
}
