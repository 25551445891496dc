// Package model contains the UI model implementations.
package model

import (
	"slices"

	"github.com/boneekim/Dalmuni-game/internal/game"
)

// GameModel handles game-specific UI state on top of one engine game.
type GameModel struct {
	state *game.GameState
	gen   int

	cursor   int
	selected map[int]bool

	// Features
	cardCounterEnabled bool
	showingHelp        bool

	notice   string
	recorded bool
}

// NewGameModel creates a new GameModel.
func NewGameModel() *GameModel {
	return &GameModel{selected: make(map[int]bool)}
}

// Reset 换一局新的牌，旧的 AI 定时消息会因代号不同被丢弃
func (m *GameModel) Reset(state *game.GameState) {
	m.state = state
	m.gen++
	m.cursor = 0
	m.selected = make(map[int]bool)
	m.notice = ""
	m.recorded = false
	m.showingHelp = false
}

func (m *GameModel) State() *game.GameState { return m.state }
func (m *GameModel) Generation() int        { return m.gen }

// View returns what the human seat may see.
func (m *GameModel) View() game.PublicState {
	return m.state.PublicView(HumanSeat)
}

func (m *GameModel) handSize() int {
	if m.state == nil {
		return 0
	}
	return len(m.state.Players[HumanSeat].Hand)
}

func (m *GameModel) Cursor() int { return m.cursor }

// MoveCursor moves within the hand, wrapping at both ends.
func (m *GameModel) MoveCursor(delta int) {
	n := m.handSize()
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// ToggleSelected 选中/取消光标处的牌
func (m *GameModel) ToggleSelected() {
	if m.cursor >= m.handSize() {
		return
	}
	if m.selected[m.cursor] {
		delete(m.selected, m.cursor)
		return
	}
	m.selected[m.cursor] = true
}

func (m *GameModel) IsSelected(i int) bool { return m.selected[i] }

// SelectedIndices returns the selection in hand order.
func (m *GameModel) SelectedIndices() []int {
	indices := make([]int, 0, len(m.selected))
	for i := range m.selected {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	return indices
}

// SetSelection replaces the selection, e.g. with a hint.
func (m *GameModel) SetSelection(indices []int) {
	m.selected = make(map[int]bool, len(indices))
	for _, i := range indices {
		m.selected[i] = true
	}
	if len(indices) > 0 {
		m.cursor = indices[0]
	}
}

func (m *GameModel) ClearSelection() {
	m.selected = make(map[int]bool)
}

// clampCursor keeps the cursor inside a hand that just shrank.
func (m *GameModel) clampCursor() {
	if n := m.handSize(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *GameModel) CardCounterEnabled() bool           { return m.cardCounterEnabled }
func (m *GameModel) SetCardCounterEnabled(enabled bool) { m.cardCounterEnabled = enabled }
func (m *GameModel) ShowingHelp() bool                  { return m.showingHelp }
func (m *GameModel) SetShowingHelp(showing bool)        { m.showingHelp = showing }

func (m *GameModel) Notice() string          { return m.notice }
func (m *GameModel) SetNotice(notice string) { m.notice = notice }
