package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/game"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
	"github.com/boneekim/Dalmuni-game/internal/sound"
	"github.com/boneekim/Dalmuni-game/internal/storage"
	"github.com/boneekim/Dalmuni-game/internal/testutil"
)

func newTestApp(rec storage.Recorder, snd SoundPlayer) *AppModel {
	cfg := config.Default()
	cfg.Game.Seed = 7
	cfg.Game.AIDelayMs = 1
	m := NewAppModel(cfg, rec, snd)
	m.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return m
}

func cardsOf(ranks ...card.Rank) []card.Card {
	out := make([]card.Card, len(ranks))
	for i, r := range ranks {
		out[i] = card.Card{Rank: r}
	}
	return out
}

// testState 构造固定手牌的牌局，0 号是人类玩家
func testState(hands ...[]card.Card) *game.GameState {
	g := &game.GameState{
		Phase:      game.PhasePlaying,
		LastPlayer: -1,
		Passed:     make(map[int]bool),
		Tax:        game.TaxExchange{Dalmuti: -1, Peasant: -1},
	}
	for i, h := range hands {
		g.Players = append(g.Players, &game.Player{
			Name: fmt.Sprintf("P%d", i),
			Hand: h,
			IsAI: i != HumanSeat,
		})
	}
	return g
}

func TestNewAppModel(t *testing.T) {
	t.Parallel()

	m := newTestApp(nil, nil)

	assert.Equal(t, ScreenSetup, m.Screen())
	assert.Equal(t, 4, m.Setup().Players())
	assert.Equal(t, game.DifficultyEasy, m.Setup().Difficulty())
	assert.Nil(t, m.Game().State())
	assert.Empty(t, m.Error())
	assert.Equal(t, "Loading...", m.View())
	assert.IsType(t, storage.NopRecorder{}, m.recorder)
}

func TestAppModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := newTestApp(nil, nil)
	m.SetViewRenderer(func(Model) string { return "rendered" })

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.Width())
	assert.Equal(t, 40, m.Height())
	assert.Contains(t, m.View(), "rendered")
}

func TestAppModel_StartGame(t *testing.T) {
	t.Parallel()

	m := newTestApp(nil, nil)
	m.Setup().IncPlayers()
	m.NameInput().SetValue("  Ann ")

	cmd := m.StartGame()

	require.Equal(t, ScreenPlaying, m.Screen())
	state := m.Game().State()
	require.NotNil(t, state)
	assert.Len(t, state.Players, 5)
	assert.Equal(t, "Ann", state.Players[HumanSeat].Name)
	assert.Equal(t, 1, m.Game().Generation())
	assert.Contains(t, m.Game().Notice(), "leads")
	assert.Equal(t, state.Current().IsAI, cmd != nil, "a tick is scheduled only for computer players")
}

func TestAppModel_StaleAITurnIgnored(t *testing.T) {
	t.Parallel()

	m := newTestApp(nil, nil)
	m.StartGame()
	gen := m.Game().Generation()
	m.BackToSetup()

	_, cmd := m.Update(AITurnMsg{Gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenSetup, m.Screen())
	assert.Nil(t, m.Game().State())
}

func TestAppModel_HumanTurnFlow(t *testing.T) {
	t.Parallel()

	rec := new(testutil.MockRecorder)
	snd := &testutil.SoundRecorder{}
	m := newTestApp(rec, snd)
	m.Game().Reset(testState(cardsOf(3, 5, 5), cardsOf(4, 6)))
	m.screen = ScreenPlaying
	gen := m.Game().Generation()

	// nothing selected
	cmd := m.PlaySelected()
	assert.NotNil(t, cmd)
	assert.Contains(t, m.Error(), "Select one or more cards")

	_, _ = m.Update(ClearErrorMsg{Gen: gen})
	assert.Empty(t, m.Error())

	// pair of 5s flips the order
	m.Game().SetSelection([]int{1, 2})
	cmd = m.PlaySelected()
	require.NotNil(t, cmd, "computer player is next")
	assert.Empty(t, m.Game().SelectedIndices())
	assert.True(t, m.Game().State().Revolution)
	assert.Contains(t, m.Game().Notice(), "Revolution!")
	assert.Equal(t, []sound.Cue{sound.CueRevolution}, snd.Played)

	// P1 cannot beat a pair and passes, the trick clears back to us
	_, cmd = m.Update(AITurnMsg{Gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, HumanSeat, m.Game().State().CurrentPlayer)
	assert.Contains(t, m.Game().Notice(), "Everyone passed. P0 leads.")
	assert.Equal(t, sound.CueClear, snd.Played[len(snd.Played)-1])

	// going out ends a two player game
	rec.On("Record", mock.Anything, mock.MatchedBy(func(r storage.GameResult) bool {
		return r.Players == 2 && r.Standings[0].Name == "P0" && r.Revolutions == 1
	})).Return(nil).Once()
	rec.On("Leaderboard", mock.Anything, LeaderboardSize).
		Return([]*storage.LeaderboardEntry{{Rank: 1, PlayerName: "P0", Points: 1}}, nil).Once()

	m.Game().SetSelection([]int{0})
	cmd = m.PlaySelected()
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenFinale, m.Screen())
	assert.Equal(t, sound.CueGameOver, snd.Played[len(snd.Played)-1])

	_, _ = m.Update(cmd())
	require.Len(t, m.Leaderboard(), 1)
	assert.Equal(t, "P0", m.Leaderboard()[0].PlayerName)
	assert.Empty(t, m.LedgerError())

	// a second attempt does not record again
	assert.Nil(t, m.recordResult())
	rec.AssertExpectations(t)
}

func TestAppModel_IllegalPlayKeepsSelection(t *testing.T) {
	t.Parallel()

	m := newTestApp(nil, nil)
	st := testState(cardsOf(3, 9), cardsOf(4, 6))
	st.LastPlayed = cardsOf(8)
	st.LastPlayer = 1
	m.Game().Reset(st)
	m.screen = ScreenPlaying

	m.Game().SetSelection([]int{1})
	m.PlaySelected()

	assert.Contains(t, m.Error(), "lower rank than 8")
	assert.Equal(t, []int{1}, m.Game().SelectedIndices())
	assert.Equal(t, cardsOf(3, 9), st.Players[HumanSeat].Hand)
}

func TestAppModel_Hint(t *testing.T) {
	t.Parallel()

	t.Run("suggests the weakest play", func(t *testing.T) {
		t.Parallel()
		m := newTestApp(nil, nil)
		m.Game().Reset(testState(cardsOf(2, 7, 7, 11), cardsOf(4)))
		m.screen = ScreenPlaying

		m.Hint()
		assert.Equal(t, []int{3}, m.Game().SelectedIndices())
		assert.Equal(t, "Hint: 11", m.Game().Notice())
	})

	t.Run("nothing beats the table", func(t *testing.T) {
		t.Parallel()
		m := newTestApp(nil, nil)
		st := testState(cardsOf(7, 8), cardsOf(4))
		st.LastPlayed = cardsOf(1)
		st.LastPlayer = 1
		m.Game().Reset(st)
		m.screen = ScreenPlaying

		m.Hint()
		assert.Empty(t, m.Game().SelectedIndices())
		assert.Contains(t, m.Game().Notice(), "Press p to pass")
	})
}

func TestAppModel_FullGame(t *testing.T) {
	t.Parallel()

	rec := new(testutil.MockRecorder)
	rec.On("Record", mock.Anything, mock.AnythingOfType("storage.GameResult")).Return(nil).Once()
	rec.On("Leaderboard", mock.Anything, LeaderboardSize).Return(nil, errors.New("redis down")).Once()

	m := newTestApp(rec, nil)
	m.StartGame()

	var last tea.Cmd
	for i := 0; m.Screen() == ScreenPlaying; i++ {
		require.Less(t, i, 5000, "game did not finish")
		state := m.Game().State()
		if state.Current().IsAI {
			_, last = m.Update(AITurnMsg{Gen: m.Game().Generation()})
			continue
		}
		m.Game().ClearSelection()
		m.Hint()
		if len(m.Game().SelectedIndices()) > 0 {
			last = m.PlaySelected()
		} else {
			last = m.Pass()
		}
		require.Empty(t, m.Error())
	}

	require.Equal(t, ScreenFinale, m.Screen())
	require.NotNil(t, last)
	_, _ = m.Update(last())

	assert.Equal(t, "redis down", m.LedgerError())
	assert.Empty(t, m.Leaderboard())
	rec.AssertExpectations(t)
}

func TestCueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []game.Action
		want   sound.Cue
		ok     bool
	}{
		{"nothing", nil, "", false},
		{"pass", []game.Action{{Kind: game.ActionPass}}, sound.CuePass, true},
		{"pass then clear", []game.Action{{Kind: game.ActionPass}, {Kind: game.ActionClear}}, sound.CueClear, true},
		{"play with revolution", []game.Action{{Kind: game.ActionPlay}, {Kind: game.ActionRevolution}}, sound.CueRevolution, true},
		{"last play", []game.Action{
			{Kind: game.ActionPlay}, {Kind: game.ActionFinish}, {Kind: game.ActionFinish}, {Kind: game.ActionGameOver},
		}, sound.CueGameOver, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := cueFor(tt.events)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeError(t *testing.T) {
	t.Parallel()

	st := testState(cardsOf(3), cardsOf(4))
	assert.Equal(t, "It's not your turn.", describeError(apperrors.ErrNotYourTurn, st))
	assert.Equal(t, "Cards must share one rank. Jesters are wild.", describeError(apperrors.ErrIllegalMove, st))
	assert.Equal(t, "The game is over.", describeError(apperrors.ErrGameNotPlaying, st))
	assert.Equal(t, "boom", describeError(errors.New("boom"), st))

	st.LastPlayed = cardsOf(6, 6)
	st.Revolution = true
	assert.Equal(t, "Play 2 cards of one higher rank than 6 6, or pass.", describeError(apperrors.ErrIllegalMove, st))
}

func TestFormatCards(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5 5 J", FormatCards(cardsOf(5, 5, card.Joker)))
	assert.Empty(t, FormatCards(nil))
}

func TestAppModel_PassClearsTrick(t *testing.T) {
	t.Parallel()

	snd := new(testutil.MockSoundPlayer)
	snd.On("Play", sound.CueClear).Once()

	m := newTestApp(nil, snd)
	st := testState(cardsOf(3, 5), cardsOf(4, 6))
	st.LastPlayed = cardsOf(2)
	st.LastPlayer = 1
	m.Game().Reset(st)
	m.screen = ScreenPlaying

	cmd := m.Pass()
	assert.NotNil(t, cmd, "P1 leads the next trick")
	assert.Empty(t, st.LastPlayed)
	assert.Equal(t, 1, st.CurrentPlayer)
	assert.Equal(t, "Everyone passed. P1 leads.", m.Game().Notice())
	snd.AssertExpectations(t)
}
