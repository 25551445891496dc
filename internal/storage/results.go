package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/boneekim/Dalmuni-game/internal/game"
)

const (
	recentResultsKey = "results:recent"
	// MaxRecentResults 最多保留的对局记录数
	MaxRecentResults = 50
)

// ResultEntry 一名玩家在一局中的名次
type ResultEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Title string `json:"title"`
	IsAI  bool   `json:"is_ai"`
}

// GameResult 一局结束后的记录
type GameResult struct {
	ID          string        `json:"id"`
	PlayedAt    int64         `json:"played_at"`
	Players     int           `json:"players"`
	Difficulty  string        `json:"difficulty"`
	Turns       int           `json:"turns"` // 出牌与 PASS 的次数
	Revolutions int           `json:"revolutions"`
	Standings   []ResultEntry `json:"standings"`
}

// NewGameResult builds the record of a finished game.
func NewGameResult(g *game.GameState, playedAt time.Time) (GameResult, error) {
	standings, err := g.Standings()
	if err != nil {
		return GameResult{}, err
	}

	result := GameResult{
		ID:         uuid.NewString(),
		PlayedAt:   playedAt.Unix(),
		Players:    len(g.Players),
		Difficulty: string(g.Difficulty),
		Standings:  make([]ResultEntry, len(standings)),
	}
	for i, s := range standings {
		result.Standings[i] = ResultEntry{Rank: s.Rank, Name: s.Name, Title: s.Title, IsAI: s.IsAI}
	}
	for _, a := range g.History {
		switch a.Kind {
		case game.ActionPlay, game.ActionPass:
			result.Turns++
		case game.ActionRevolution:
			result.Revolutions++
		}
	}
	return result, nil
}

// ResultStore 最近对局记录，存于 Redis 列表
type ResultStore struct {
	client *redis.Client
}

// NewResultStore 创建对局记录存储
func NewResultStore(client *redis.Client) *ResultStore {
	return &ResultStore{client: client}
}

// SaveResult 保存一局记录，只保留最近 MaxRecentResults 条
func (rs *ResultStore) SaveResult(ctx context.Context, result GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化对局记录失败: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.LPush(ctx, recentResultsKey, data)
	pipe.LTrim(ctx, recentResultsKey, 0, MaxRecentResults-1)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentResults returns up to n results, newest first.
func (rs *ResultStore) RecentResults(ctx context.Context, n int) ([]GameResult, error) {
	if n <= 0 {
		return nil, nil
	}
	items, err := rs.client.LRange(ctx, recentResultsKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	results := make([]GameResult, 0, len(items))
	for _, item := range items {
		var r GameResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("反序列化对局记录失败: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}
