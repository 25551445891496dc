//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boneekim/Dalmuni-game/internal/storage"
)

// MockRecorder 对局记录 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, result storage.GameResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockRecorder) Leaderboard(ctx context.Context, limit int) ([]*storage.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.LeaderboardEntry), args.Error(1)
}

func (m *MockRecorder) Close() error {
	args := m.Called()
	return args.Error(0)
}
