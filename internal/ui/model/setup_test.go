package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/game"
)

func TestNewSetupModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		cfg            config.GameConfig
		wantPlayers    int
		wantDifficulty game.Difficulty
	}{
		{"defaults", config.Default().Game, 4, game.DifficultyEasy},
		{"too few players", config.GameConfig{Players: 1, Difficulty: "hard"}, game.MinPlayers, game.DifficultyHard},
		{"too many players", config.GameConfig{Players: 12}, game.MaxPlayers, game.DifficultyEasy},
		{"unknown difficulty", config.GameConfig{Players: 3, Difficulty: "impossible"}, 3, game.DifficultyEasy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewSetupModel(tt.cfg)
			assert.Equal(t, tt.wantPlayers, m.Players())
			assert.Equal(t, tt.wantDifficulty, m.Difficulty())
		})
	}
}

func TestSetupModel_PlayerBounds(t *testing.T) {
	t.Parallel()

	m := NewSetupModel(config.GameConfig{Players: game.MaxPlayers})
	m.IncPlayers()
	assert.Equal(t, game.MaxPlayers, m.Players())

	for range 10 {
		m.DecPlayers()
	}
	assert.Equal(t, game.MinPlayers, m.Players())
}

func TestSetupModel_CycleDifficulty(t *testing.T) {
	t.Parallel()

	m := NewSetupModel(config.Default().Game)
	start := m.Difficulty()
	m.CycleDifficulty()
	assert.NotEqual(t, start, m.Difficulty())
	m.CycleDifficulty()
	m.CycleDifficulty()
	assert.Equal(t, start, m.Difficulty())
}

func TestSetupModel_PlayerName(t *testing.T) {
	t.Parallel()

	m := NewSetupModel(config.GameConfig{Players: 4, PlayerName: "Mina"})
	assert.Equal(t, "Jun", m.PlayerName("  Jun  "))
	assert.Equal(t, "Mina", m.PlayerName("   "))

	anon := NewSetupModel(config.GameConfig{Players: 4})
	assert.Equal(t, "You", anon.PlayerName(""))
}

func TestSetupModel_Options(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Game.AINames = []string{"Ada", "Bo", "Cy", "Di"}
	cfg.Game.Seed = 42

	m := NewSetupModel(cfg.Game)
	m.DecPlayers()
	m.CycleDifficulty()

	opts := m.Options(cfg, "Eve")
	assert.Equal(t, 3, opts.PlayerCount)
	assert.Equal(t, []string{"Eve", "Ada", "Bo"}, opts.PlayerNames)
	assert.Equal(t, m.Difficulty(), opts.Difficulty)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.False(t, opts.AllAI)
}
