// Package input handles keyboard input processing.
package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boneekim/Dalmuni-game/internal/ui/model"
)

// HandleKeyPress handles keyboard input and returns whether it was handled.
// Unhandled keys on the setup screen go to the name input.
func HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return true, tea.Quit
	}

	switch m.Screen() {
	case model.ScreenSetup:
		return handleSetupKey(m, msg)
	case model.ScreenPlaying:
		return handlePlayingKey(m, msg)
	case model.ScreenFinale:
		return handleFinaleKey(m, msg)
	}
	return false, nil
}

func handleSetupKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	nameInput := m.NameInput()

	// 输入名字时只拦截这几个键
	if nameInput.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			return true, m.StartGame()
		case tea.KeyTab, tea.KeyEsc:
			nameInput.Blur()
			return true, nil
		}
		return false, nil
	}

	setup := m.Setup()
	switch msg.Type {
	case tea.KeyLeft:
		setup.DecPlayers()
		return true, nil
	case tea.KeyRight:
		setup.IncPlayers()
		return true, nil
	case tea.KeyTab:
		return true, nameInput.Focus()
	case tea.KeyEnter:
		return true, m.StartGame()
	case tea.KeyRunes:
		switch msg.String() {
		case "d", "D":
			setup.CycleDifficulty()
			return true, nil
		case "q", "Q":
			return true, tea.Quit
		}
	}
	return false, nil
}

func handlePlayingKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	gm := m.Game()

	if gm.ShowingHelp() {
		if msg.Type == tea.KeyEsc || msg.String() == "h" || msg.String() == "H" {
			gm.SetShowingHelp(false)
		}
		return true, nil
	}

	switch msg.Type {
	case tea.KeyLeft:
		gm.MoveCursor(-1)
		return true, nil
	case tea.KeyRight:
		gm.MoveCursor(1)
		return true, nil
	case tea.KeySpace:
		gm.ToggleSelected()
		return true, nil
	case tea.KeyEnter:
		return true, m.PlaySelected()
	case tea.KeyEsc:
		gm.ClearSelection()
		return true, nil
	case tea.KeyRunes:
		return handlePlayingRune(m, msg)
	}
	return false, nil
}

func handlePlayingRune(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	gm := m.Game()
	switch msg.String() {
	case " ":
		gm.ToggleSelected()
	case "p", "P":
		return true, m.Pass()
	case "a", "A":
		m.Hint()
	case "c", "C":
		gm.SetCardCounterEnabled(!gm.CardCounterEnabled())
	case "h", "H":
		gm.SetShowingHelp(true)
	case "n", "N":
		m.BackToSetup()
	case "q", "Q":
		return true, tea.Quit
	default:
		return false, nil
	}
	return true, nil
}

func handleFinaleKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter, msg.String() == "n", msg.String() == "N":
		m.BackToSetup()
		return true, nil
	case msg.String() == "q", msg.String() == "Q":
		return true, tea.Quit
	}
	return false, nil
}
