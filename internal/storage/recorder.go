package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/boneekim/Dalmuni-game/internal/config"
)

// Recorder persists finished games and serves the leaderboard.
type Recorder interface {
	Record(ctx context.Context, result GameResult) error
	Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	Close() error
}

// NewClient 根据配置创建 Redis 客户端
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Open returns a Redis-backed recorder when enabled, otherwise a no-op one.
// The connection is checked once so a missing server fails fast.
func Open(ctx context.Context, cfg config.RedisConfig) (Recorder, error) {
	if !cfg.Enabled {
		return NopRecorder{}, nil
	}
	client := NewClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return NewRecorder(client), nil
}

// RedisRecorder 同时写对局记录和排行榜
type RedisRecorder struct {
	client      *redis.Client
	results     *ResultStore
	leaderboard *LeaderboardManager
}

// NewRecorder wraps an existing client.
func NewRecorder(client *redis.Client) *RedisRecorder {
	return &RedisRecorder{
		client:      client,
		results:     NewResultStore(client),
		leaderboard: NewLeaderboardManager(client),
	}
}

// Record 保存对局并更新每名玩家的积分
func (r *RedisRecorder) Record(ctx context.Context, result GameResult) error {
	if err := r.results.SaveResult(ctx, result); err != nil {
		return err
	}
	for _, s := range result.Standings {
		if err := r.leaderboard.RecordGameResult(ctx, s.Name, s.Rank, result.Players); err != nil {
			return fmt.Errorf("record %s: %w", s.Name, err)
		}
	}
	return nil
}

func (r *RedisRecorder) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	return r.leaderboard.GetLeaderboard(ctx, limit)
}

// Results exposes the recent-games list.
func (r *RedisRecorder) Results() *ResultStore {
	return r.results
}

// Stats exposes the leaderboard manager.
func (r *RedisRecorder) Stats() *LeaderboardManager {
	return r.leaderboard
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

// NopRecorder 未启用 Redis 时使用
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, GameResult) error { return nil }

func (NopRecorder) Leaderboard(context.Context, int) ([]*LeaderboardEntry, error) {
	return nil, nil
}

func (NopRecorder) Close() error { return nil }
