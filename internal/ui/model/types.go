// Package model defines the core types and interfaces for the UI.
package model

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boneekim/Dalmuni-game/internal/sound"
	"github.com/boneekim/Dalmuni-game/internal/storage"
)

// HumanSeat 人类玩家总是 0 号座位
const HumanSeat = 0

// LeaderboardSize 结算页显示的排行榜条数
const LeaderboardSize = 5

// Screen represents the current screen.
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenPlaying
	ScreenFinale
)

// --- Tea Messages ---

// AITurnMsg asks the model to let the current computer player act once.
// Gen ties the tick to the game that scheduled it.
type AITurnMsg struct {
	Gen int
}

// ClearErrorMsg clears error message.
type ClearErrorMsg struct {
	Gen int
}

// ResultRecordedMsg carries the ledger outcome after a game ends.
type ResultRecordedMsg struct {
	Gen         int
	Leaderboard []*storage.LeaderboardEntry
	Err         error
}

// SoundPlayer plays a sound cue.
type SoundPlayer interface {
	Play(cue sound.Cue)
}

// --- Model Interface ---

// Model is the main interface for AppModel, used by view/input packages.
type Model interface {
	Screen() Screen

	// Sub-models
	Setup() *SetupModel
	Game() *GameModel

	// Actions
	StartGame() tea.Cmd
	PlaySelected() tea.Cmd
	Pass() tea.Cmd
	Hint()
	BackToSetup()

	// Finale
	Leaderboard() []*storage.LeaderboardEntry
	LedgerError() string

	Error() string
	SetError(e string) tea.Cmd

	NameInput() *textinput.Model

	// Dimensions
	Width() int
	Height() int
}
