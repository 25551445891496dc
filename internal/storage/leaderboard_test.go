package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func newTestLeaderboardManager(t *testing.T) (*LeaderboardManager, *miniredis.Miniredis) {
	t.Helper()
	client, mr := newTestClient(t)
	lm := NewLeaderboardManager(client)
	lm.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }
	return lm, mr
}

func TestPointsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank, players, want int
	}{
		{1, 4, 3},
		{2, 4, 2},
		{4, 4, 0},
		{1, 2, 1},
		{5, 4, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsFor(tt.rank, tt.players), "rank %d of %d", tt.rank, tt.players)
	}
}

func TestLeaderboard_RecordGameResult_NewPlayer(t *testing.T) {
	t.Parallel()

	lm, _ := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "Ann", 1, 4))

	stats, err := lm.GetPlayerStats(ctx, "Ann")
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, "Ann", stats.PlayerName)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.DalmutiFinishes)
	assert.Equal(t, 0, stats.PeasantFinishes)
	assert.Equal(t, 1, stats.BestRank)
	assert.Equal(t, 3, stats.Points)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestLeaderboard_RecordGameResult_Update(t *testing.T) {
	t.Parallel()

	lm, _ := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "Ann", 2, 5))
	require.NoError(t, lm.RecordGameResult(ctx, "Ann", 1, 5))
	require.NoError(t, lm.RecordGameResult(ctx, "Ann", 5, 5))

	stats, err := lm.GetPlayerStats(ctx, "Ann")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 1, stats.DalmutiFinishes)
	assert.Equal(t, 1, stats.PeasantFinishes)
	assert.Equal(t, 1, stats.BestRank)
	assert.Equal(t, 3+4+0, stats.Points)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxStreak)
}

func TestLeaderboard_RecordGameResult_BadRank(t *testing.T) {
	t.Parallel()

	lm, _ := newTestLeaderboardManager(t)
	ctx := context.Background()

	assert.Error(t, lm.RecordGameResult(ctx, "Ann", 0, 4))
	assert.Error(t, lm.RecordGameResult(ctx, "Ann", 5, 4))

	stats, err := lm.GetPlayerStats(ctx, "Ann")
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	lm, _ := newTestLeaderboardManager(t)
	ctx := context.Background()

	// 连续 5 局第一：1+1+(1+5)+(1+5)+(1+10)
	for range 5 {
		require.NoError(t, lm.RecordGameResult(ctx, "Ann", 1, 2))
	}

	stats, err := lm.GetPlayerStats(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.CurrentStreak)
	assert.Equal(t, 5, stats.MaxStreak)
	assert.Equal(t, 25, stats.Points)
}

func TestCalculateStreakBonus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, calculateStreakBonus(2))
	assert.Equal(t, StreakBonus3, calculateStreakBonus(3))
	assert.Equal(t, StreakBonus5, calculateStreakBonus(7))
	assert.Equal(t, StreakBonus10, calculateStreakBonus(12))
}

func TestLeaderboard_GetLeaderboard(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "Ann", 1, 4))
	require.NoError(t, lm.RecordGameResult(ctx, "Bo", 2, 4))
	require.NoError(t, lm.RecordGameResult(ctx, "Cy", 4, 4))

	entries, err := lm.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, &LeaderboardEntry{Rank: 1, PlayerName: "Ann", Points: 3, Games: 1, DalmutiRate: 100}, entries[0])
	assert.Equal(t, "Bo", entries[1].PlayerName)
	assert.Equal(t, 2, entries[1].Rank)

	daily, err := lm.GetLeaderboardFor(ctx, PeriodDaily, 10)
	require.NoError(t, err)
	assert.Len(t, daily, 3)
	assert.True(t, mr.Exists("leaderboard:daily:2026-03-04"))
	assert.True(t, mr.Exists("leaderboard:weekly:2026-W10"))
	assert.Equal(t, dailyExpiration, mr.TTL("leaderboard:daily:2026-03-04"))

	none, err := lm.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLeaderboard_GetPlayerRank(t *testing.T) {
	t.Parallel()

	lm, _ := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "Ann", 3, 3))
	require.NoError(t, lm.RecordGameResult(ctx, "Bo", 1, 3))

	rank, err := lm.GetPlayerRank(ctx, "Bo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = lm.GetPlayerRank(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)

	rank, err = lm.GetPlayerRank(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}
