package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:score"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"

	dailyExpiration  = 48 * time.Hour
	weeklyExpiration = 8 * 24 * time.Hour
)

// PlayerStats 玩家统计数据，按玩家名记录
type PlayerStats struct {
	PlayerName string `json:"player_name"`

	TotalGames      int `json:"total_games"`
	DalmutiFinishes int `json:"dalmuti_finishes"` // 第一个出完
	PeasantFinishes int `json:"peasant_finishes"` // 最后一个
	BestRank        int `json:"best_rank"`

	Points int `json:"points"`

	// 连续拿到第一名的局数
	CurrentStreak int `json:"current_streak"`
	MaxStreak     int `json:"max_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// 连胜加成
const (
	StreakBonus3  = 5
	StreakBonus5  = 10
	StreakBonus10 = 20
)

// Period 排行榜周期
type Period string

const (
	PeriodTotal  Period = "total"
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	PlayerName  string  `json:"player_name"`
	Points      int     `json:"points"`
	Games       int     `json:"games"`
	DalmutiRate float64 `json:"dalmuti_rate"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

// GetPlayerStats returns nil without error for an unknown player.
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerName string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerName).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode stats for %s: %w", playerName, err)
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerName, data, 0).Err()
}

func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerName)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerName: playerName,
			CreatedAt:  lm.now().Unix(),
		}
	}
	return stats, nil
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// PointsFor 名次积分：最后一名 0 分，每高一名多 1 分
func PointsFor(finishRank, playerCount int) int {
	return max(0, playerCount-finishRank)
}

// RecordGameResult 记录一名玩家的最终名次
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, playerName string, finishRank, playerCount int) error {
	if finishRank < 1 || finishRank > playerCount {
		return fmt.Errorf("finish rank %d outside [1,%d]", finishRank, playerCount)
	}

	stats, err := lm.getOrCreateStats(ctx, playerName)
	if err != nil {
		return err
	}

	stats.TotalGames++
	stats.LastPlayedAt = lm.now().Unix()
	if stats.BestRank == 0 || finishRank < stats.BestRank {
		stats.BestRank = finishRank
	}

	points := PointsFor(finishRank, playerCount)
	switch finishRank {
	case 1:
		stats.DalmutiFinishes++
		stats.CurrentStreak++
		stats.MaxStreak = max(stats.MaxStreak, stats.CurrentStreak)
		points += calculateStreakBonus(stats.CurrentStreak)
	default:
		stats.CurrentStreak = 0
	}
	if finishRank == playerCount {
		stats.PeasantFinishes++
	}
	stats.Points += points

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

func (lm *LeaderboardManager) keyFor(period Period) string {
	now := lm.now()
	switch period {
	case PeriodDaily:
		return dailyLeaderboard + now.Format("2006-01-02")
	case PeriodWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	default:
		return leaderboardKey
	}
}

// UpdateLeaderboard 更新总榜、日榜和周榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	member := redis.Z{Score: float64(stats.Points), Member: stats.PlayerName}

	pipe := lm.redis.TxPipeline()
	pipe.ZAdd(ctx, lm.keyFor(PeriodTotal), member)

	dailyKey := lm.keyFor(PeriodDaily)
	pipe.ZAdd(ctx, dailyKey, member)
	pipe.Expire(ctx, dailyKey, dailyExpiration)

	weeklyKey := lm.keyFor(PeriodWeekly)
	pipe.ZAdd(ctx, weeklyKey, member)
	pipe.Expire(ctx, weeklyKey, weeklyExpiration)

	_, err := pipe.Exec(ctx)
	return err
}

// GetLeaderboard 获取总排行榜
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	return lm.GetLeaderboardFor(ctx, PeriodTotal, limit)
}

// GetLeaderboardFor 获取指定周期的排行榜（从高到低）
func (lm *LeaderboardManager) GetLeaderboardFor(ctx context.Context, period Period, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := lm.redis.ZRevRangeWithScores(ctx, lm.keyFor(period), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for i, result := range results {
		name, ok := result.Member.(string)
		if !ok {
			continue
		}
		entry := &LeaderboardEntry{
			Rank:       i + 1,
			PlayerName: name,
			Points:     int(result.Score),
		}

		stats, err := lm.GetPlayerStats(ctx, name)
		if err == nil && stats != nil {
			entry.Games = stats.TotalGames
			if stats.TotalGames > 0 {
				entry.DalmutiRate = float64(stats.DalmutiFinishes) / float64(stats.TotalGames) * 100
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetPlayerRank 获取玩家在总榜的排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerName string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
