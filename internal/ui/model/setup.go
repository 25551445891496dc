package model

import (
	"strings"

	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/game"
)

// SetupModel handles the pre-game options screen.
type SetupModel struct {
	players     int
	difficulty  game.Difficulty
	defaultName string
}

// NewSetupModel seeds the screen from configuration.
func NewSetupModel(cfg config.GameConfig) *SetupModel {
	difficulty, err := game.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		difficulty = game.DifficultyEasy
	}
	players := min(max(cfg.Players, game.MinPlayers), game.MaxPlayers)
	return &SetupModel{
		players:     players,
		difficulty:  difficulty,
		defaultName: cfg.PlayerName,
	}
}

func (m *SetupModel) Players() int                { return m.players }
func (m *SetupModel) Difficulty() game.Difficulty { return m.difficulty }

// IncPlayers 增加人数，最多 8 人
func (m *SetupModel) IncPlayers() {
	m.players = min(m.players+1, game.MaxPlayers)
}

// DecPlayers 减少人数，至少 2 人
func (m *SetupModel) DecPlayers() {
	m.players = max(m.players-1, game.MinPlayers)
}

func (m *SetupModel) CycleDifficulty() {
	m.difficulty = m.difficulty.Next()
}

// PlayerName returns typed, falling back to the configured name.
func (m *SetupModel) PlayerName(typed string) string {
	if name := strings.TrimSpace(typed); name != "" {
		return name
	}
	if m.defaultName != "" {
		return m.defaultName
	}
	return "You"
}

// Options builds engine options from the screen and the config file.
func (m *SetupModel) Options(cfg *config.Config, typedName string) game.Options {
	opts := cfg.GameOptions()
	opts.PlayerCount = m.players
	opts.Difficulty = m.difficulty

	names := []string{m.PlayerName(typedName)}
	for i, name := range cfg.Game.AINames {
		if i >= m.players-1 {
			break
		}
		names = append(names, name)
	}
	opts.PlayerNames = names
	return opts
}
