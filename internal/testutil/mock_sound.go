//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/boneekim/Dalmuni-game/internal/sound"
)

// MockSoundPlayer 音效 mock
type MockSoundPlayer struct {
	mock.Mock
}

func (m *MockSoundPlayer) Play(cue sound.Cue) {
	m.Called(cue)
}

// SoundRecorder 记录播放过的音效，不使用 testify（用于不需要断言调用次数的测试）
type SoundRecorder struct {
	Played []sound.Cue
}

func (s *SoundRecorder) Play(cue sound.Cue) { s.Played = append(s.Played, cue) }
