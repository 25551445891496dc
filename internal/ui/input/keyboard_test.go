package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/game"
	"github.com/boneekim/Dalmuni-game/internal/ui/model"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newApp() *model.AppModel {
	cfg := config.Default()
	cfg.Game.Seed = 11
	m := model.NewAppModel(cfg, nil, nil)
	m.SetKeyHandler(HandleKeyPress)
	return m
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestHandleKeyPress_CtrlC(t *testing.T) {
	t.Parallel()

	for _, screen := range []string{"setup", "playing"} {
		t.Run(screen, func(t *testing.T) {
			t.Parallel()
			m := newApp()
			if screen == "playing" {
				m.StartGame()
			}
			handled, cmd := HandleKeyPress(m, key(tea.KeyCtrlC))
			assert.True(t, handled)
			assert.True(t, isQuit(t, cmd))
		})
	}
}

func TestHandleKeyPress_Setup(t *testing.T) {
	t.Parallel()

	m := newApp()

	handled, _ := HandleKeyPress(m, key(tea.KeyRight))
	assert.True(t, handled)
	assert.Equal(t, 5, m.Setup().Players())

	HandleKeyPress(m, key(tea.KeyLeft))
	HandleKeyPress(m, key(tea.KeyLeft))
	assert.Equal(t, 3, m.Setup().Players())

	HandleKeyPress(m, runeKey("d"))
	assert.Equal(t, game.DifficultyMedium, m.Setup().Difficulty())

	handled, cmd := HandleKeyPress(m, runeKey("q"))
	assert.True(t, handled)
	assert.True(t, isQuit(t, cmd))

	handled, _ = HandleKeyPress(m, runeKey("x"))
	assert.False(t, handled)
}

func TestHandleKeyPress_NameInput(t *testing.T) {
	t.Parallel()

	m := newApp()
	HandleKeyPress(m, key(tea.KeyTab))
	require.True(t, m.NameInput().Focused())

	// letters go to the input, not to the setup shortcuts
	handled, _ := HandleKeyPress(m, runeKey("q"))
	assert.False(t, handled)
	m.Update(runeKey("d"))
	assert.Equal(t, "d", m.NameInput().Value())
	assert.Equal(t, game.DifficultyEasy, m.Setup().Difficulty())

	HandleKeyPress(m, key(tea.KeyEsc))
	assert.False(t, m.NameInput().Focused())

	HandleKeyPress(m, key(tea.KeyTab))
	handled, _ = HandleKeyPress(m, key(tea.KeyEnter))
	assert.True(t, handled)
	require.Equal(t, model.ScreenPlaying, m.Screen())
	assert.Equal(t, "d", m.Game().State().Players[model.HumanSeat].Name)
}

func TestHandleKeyPress_Playing(t *testing.T) {
	t.Parallel()

	m := newApp()
	HandleKeyPress(m, key(tea.KeyEnter))
	require.Equal(t, model.ScreenPlaying, m.Screen())
	gm := m.Game()

	HandleKeyPress(m, key(tea.KeyRight))
	assert.Equal(t, 1, gm.Cursor())
	HandleKeyPress(m, key(tea.KeyLeft))
	assert.Equal(t, 0, gm.Cursor())

	HandleKeyPress(m, key(tea.KeySpace))
	assert.Equal(t, []int{0}, gm.SelectedIndices())
	HandleKeyPress(m, key(tea.KeyEsc))
	assert.Empty(t, gm.SelectedIndices())

	HandleKeyPress(m, runeKey("c"))
	assert.True(t, gm.CardCounterEnabled())

	HandleKeyPress(m, runeKey("h"))
	require.True(t, gm.ShowingHelp())
	// help swallows other keys
	handled, _ := HandleKeyPress(m, runeKey("n"))
	assert.True(t, handled)
	assert.Equal(t, model.ScreenPlaying, m.Screen())
	HandleKeyPress(m, key(tea.KeyEsc))
	assert.False(t, gm.ShowingHelp())

	handled, _ = HandleKeyPress(m, runeKey("z"))
	assert.False(t, handled)

	HandleKeyPress(m, runeKey("n"))
	assert.Equal(t, model.ScreenSetup, m.Screen())
}

func TestHandleKeyPress_HintAndPlay(t *testing.T) {
	t.Parallel()

	m := newApp()
	m.StartGame()

	// let the computer players act until it is our turn
	for i := 0; m.Game().State().Current().IsAI; i++ {
		require.Less(t, i, 100)
		m.Update(model.AITurnMsg{Gen: m.Game().Generation()})
	}
	before := len(m.Game().State().History)

	HandleKeyPress(m, runeKey("a"))
	if len(m.Game().SelectedIndices()) == 0 {
		HandleKeyPress(m, runeKey("p"))
	} else {
		HandleKeyPress(m, key(tea.KeyEnter))
	}

	assert.Empty(t, m.Error())
	assert.Greater(t, len(m.Game().State().History), before)
}

func TestHandleKeyPress_Finale(t *testing.T) {
	t.Parallel()

	m := newApp()
	m.StartGame()
	for i := 0; m.Screen() == model.ScreenPlaying; i++ {
		require.Less(t, i, 5000)
		if m.Game().State().Current().IsAI {
			m.Update(model.AITurnMsg{Gen: m.Game().Generation()})
			continue
		}
		m.Game().ClearSelection()
		HandleKeyPress(m, runeKey("a"))
		if len(m.Game().SelectedIndices()) == 0 {
			HandleKeyPress(m, runeKey("p"))
		} else {
			HandleKeyPress(m, key(tea.KeyEnter))
		}
	}
	require.Equal(t, model.ScreenFinale, m.Screen())

	handled, _ := HandleKeyPress(m, runeKey("x"))
	assert.False(t, handled)

	handled, _ = HandleKeyPress(m, key(tea.KeyEnter))
	assert.True(t, handled)
	assert.Equal(t, model.ScreenSetup, m.Screen())
}
