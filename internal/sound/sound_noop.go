//go:build ci

package sound

// SoundManager CI 环境下不初始化音频设备
type SoundManager struct{}

func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(cue Cue) {
	// No-op
}

func (sm *SoundManager) Loaded() int {
	return 0
}

func (sm *SoundManager) Close() {
	// No-op
}
