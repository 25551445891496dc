package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/game"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
	"github.com/boneekim/Dalmuni-game/internal/game/rule"
	"github.com/boneekim/Dalmuni-game/internal/logger"
	"github.com/boneekim/Dalmuni-game/internal/sound"
	"github.com/boneekim/Dalmuni-game/internal/storage"
	"github.com/boneekim/Dalmuni-game/internal/ui/common"
)

const (
	errorDisplayTime = 3 * time.Second
	ledgerTimeout    = 3 * time.Second
)

// AppModel is the root bubbletea model for a local game.
type AppModel struct {
	cfg      *config.Config
	recorder storage.Recorder
	sound    SoundPlayer
	aiDelay  time.Duration
	now      func() time.Time

	screen Screen
	error  string

	// Sub-models
	setup *SetupModel
	game  *GameModel

	nameInput textinput.Model

	// Finale
	leaderboard []*storage.LeaderboardEntry
	ledgerErr   string

	width  int
	height int

	// View renderer (injected to break circular import)
	viewRenderer func(Model) string

	// Key handler (injected to break circular import)
	keyHandler func(Model, tea.KeyMsg) (bool, tea.Cmd)
}

type nopSound struct{}

func (nopSound) Play(sound.Cue) {}

// NewAppModel creates the root model. A nil recorder or sound player
// disables that feature.
func NewAppModel(cfg *config.Config, recorder storage.Recorder, player SoundPlayer) *AppModel {
	if recorder == nil {
		recorder = storage.NopRecorder{}
	}
	if player == nil {
		player = nopSound{}
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Game.PlayerName
	ti.CharLimit = 16
	ti.Width = 20

	return &AppModel{
		cfg:       cfg,
		recorder:  recorder,
		sound:     player,
		aiDelay:   cfg.Game.AIDelay(),
		now:       time.Now,
		screen:    ScreenSetup,
		setup:     NewSetupModel(cfg.Game),
		game:      NewGameModel(),
		nameInput: ti,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// --- Model interface implementation ---

func (m *AppModel) Screen() Screen                            { return m.screen }
func (m *AppModel) Setup() *SetupModel                        { return m.setup }
func (m *AppModel) Game() *GameModel                          { return m.game }
func (m *AppModel) NameInput() *textinput.Model               { return &m.nameInput }
func (m *AppModel) Leaderboard() []*storage.LeaderboardEntry { return m.leaderboard }
func (m *AppModel) LedgerError() string                       { return m.ledgerErr }
func (m *AppModel) Error() string                             { return m.error }
func (m *AppModel) Width() int                                { return m.width }
func (m *AppModel) Height() int                               { return m.height }

// SetError shows e for a few seconds.
func (m *AppModel) SetError(e string) tea.Cmd {
	m.error = e
	gen := m.game.gen
	return tea.Tick(errorDisplayTime, func(time.Time) tea.Msg {
		return ClearErrorMsg{Gen: gen}
	})
}

// SetViewRenderer sets the view rendering function.
func (m *AppModel) SetViewRenderer(fn func(Model) string) {
	m.viewRenderer = fn
}

// SetKeyHandler sets the keyboard event handler function.
func (m *AppModel) SetKeyHandler(fn func(Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

// Update handles tea messages.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.keyHandler != nil {
			if handled, cmd := m.keyHandler(m, msg); handled {
				return m, cmd
			}
		}
		if m.screen == ScreenSetup && m.nameInput.Focused() {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}

	case AITurnMsg:
		return m, m.stepAI(msg.Gen)

	case ClearErrorMsg:
		if msg.Gen == m.game.gen {
			m.error = ""
		}

	case ResultRecordedMsg:
		if msg.Gen != m.game.gen {
			break
		}
		m.leaderboard = msg.Leaderboard
		if msg.Err != nil {
			m.ledgerErr = msg.Err.Error()
			logger.LogError("record result: %v", msg.Err)
		}
	}

	return m, nil
}

// View renders the model.
func (m *AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.viewRenderer == nil {
		return "View renderer not initialized"
	}
	return common.DocStyle.Render(m.viewRenderer(m))
}

// --- Actions ---

// StartGame deals a new game from the setup screen.
func (m *AppModel) StartGame() tea.Cmd {
	opts := m.setup.Options(m.cfg, m.nameInput.Value())
	state, err := game.StartGame(opts)
	if err != nil {
		logger.LogError("start game: %v", err)
		return m.SetError(err.Error())
	}

	m.game.Reset(state)
	m.nameInput.Blur()
	m.screen = ScreenPlaying
	m.error = ""
	m.leaderboard = nil
	m.ledgerErr = ""

	logger.LogInfo("game started: %d players, difficulty %s, %s leads",
		len(state.Players), state.Difficulty, state.Current().Name)
	m.game.notice = openingNotice(state)

	if state.Current().IsAI {
		return m.scheduleAI()
	}
	return nil
}

// BackToSetup 放弃当前牌局，回到设置页
func (m *AppModel) BackToSetup() {
	m.game.Reset(nil)
	m.screen = ScreenSetup
	m.error = ""
}

// PlaySelected submits the selected cards for the human seat.
func (m *AppModel) PlaySelected() tea.Cmd {
	state := m.game.state
	if m.screen != ScreenPlaying || state == nil {
		return nil
	}
	before := len(state.History)
	if err := state.SubmitPlay(HumanSeat, m.game.SelectedIndices()); err != nil {
		return m.SetError(describeError(err, state))
	}
	m.game.ClearSelection()
	return m.afterTransition(before)
}

// Pass submits a pass for the human seat.
func (m *AppModel) Pass() tea.Cmd {
	state := m.game.state
	if m.screen != ScreenPlaying || state == nil {
		return nil
	}
	before := len(state.History)
	if err := state.SubmitPass(HumanSeat); err != nil {
		return m.SetError(describeError(err, state))
	}
	m.game.ClearSelection()
	return m.afterTransition(before)
}

// Hint selects the play the computer would make from the human hand.
func (m *AppModel) Hint() {
	state := m.game.state
	if m.screen != ScreenPlaying || state == nil {
		return
	}
	play, ok := rule.ChoosePlay(state.EnumerateLegalPlays(HumanSeat))
	if !ok {
		m.game.notice = "No legal play. Press p to pass."
		return
	}
	indices, found := card.IndicesOf(state.Players[HumanSeat].Hand, play)
	if !found {
		return
	}
	m.game.SetSelection(indices)
	m.game.notice = fmt.Sprintf("Hint: %s", FormatCards(play))
}

func (m *AppModel) stepAI(gen int) tea.Cmd {
	state := m.game.state
	if gen != m.game.gen || m.screen != ScreenPlaying || state == nil {
		return nil
	}
	if state.Phase != game.PhasePlaying || !state.Current().IsAI {
		return nil
	}

	before := len(state.History)
	name := state.Current().Name
	action, err := state.StepAITurn()
	if err != nil {
		logger.LogError("%s failed to act: %v", name, err)
		return m.SetError(err.Error())
	}
	logger.LogInfo("%s: %s %s", name, action.Kind, FormatCards(action.Cards))
	return m.afterTransition(before)
}

func (m *AppModel) scheduleAI() tea.Cmd {
	gen := m.game.gen
	return tea.Tick(m.aiDelay, func(time.Time) tea.Msg {
		return AITurnMsg{Gen: gen}
	})
}

// afterTransition reacts to the history entries appended since before.
func (m *AppModel) afterTransition(before int) tea.Cmd {
	state := m.game.state
	events := state.History[before:]

	if cue, ok := cueFor(events); ok {
		m.sound.Play(cue)
	}
	m.game.clampCursor()
	m.game.notice = noticeFor(events, state)

	if state.Phase == game.PhaseFinished {
		m.screen = ScreenFinale
		return m.recordResult()
	}
	if state.Current().IsAI {
		return m.scheduleAI()
	}
	return nil
}

// recordResult writes the finished game to the ledger once.
func (m *AppModel) recordResult() tea.Cmd {
	if m.game.recorded {
		return nil
	}
	m.game.recorded = true

	state, rec, gen, playedAt := m.game.state, m.recorder, m.game.gen, m.now()
	if standings, err := state.Standings(); err == nil {
		for _, s := range standings {
			logger.LogInfo("standing %d: %s (%s)", s.Rank, s.Name, s.Title)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		defer cancel()

		result, err := storage.NewGameResult(state, playedAt)
		if err != nil {
			return ResultRecordedMsg{Gen: gen, Err: err}
		}
		if err := rec.Record(ctx, result); err != nil {
			return ResultRecordedMsg{Gen: gen, Err: err}
		}
		board, err := rec.Leaderboard(ctx, LeaderboardSize)
		return ResultRecordedMsg{Gen: gen, Leaderboard: board, Err: err}
	}
}

// cuePriority 同一次操作产生多个事件时只播放最重要的音效
var cuePriority = map[game.ActionKind]int{
	game.ActionPass:       1,
	game.ActionPlay:       2,
	game.ActionClear:      3,
	game.ActionRevolution: 4,
	game.ActionFinish:     5,
	game.ActionGameOver:   6,
}

func cueFor(events []game.Action) (sound.Cue, bool) {
	best, bestPriority := game.ActionKind(""), 0
	for _, e := range events {
		if p := cuePriority[e.Kind]; p > bestPriority {
			best, bestPriority = e.Kind, p
		}
	}
	if bestPriority == 0 {
		return "", false
	}
	return sound.Cue(best), true
}

func noticeFor(events []game.Action, state *game.GameState) string {
	var parts []string
	for _, e := range events {
		switch e.Kind {
		case game.ActionRevolution:
			if e.Revolution {
				parts = append(parts, "Revolution! Higher numbers now win.")
			} else {
				parts = append(parts, "Order restored. Lower numbers win again.")
			}
		case game.ActionFinish:
			parts = append(parts, fmt.Sprintf("%s went out %s.", state.Players[e.Player].Name, common.Ordinal(e.Rank)))
		case game.ActionClear:
			if state.Phase == game.PhasePlaying {
				parts = append(parts, fmt.Sprintf("Everyone passed. %s leads.", state.Current().Name))
			}
		}
	}
	return strings.Join(parts, " ")
}

func openingNotice(state *game.GameState) string {
	view := state.PublicView(HumanSeat)
	lead := fmt.Sprintf("%s holds the Dalmuti card and leads.", state.Current().Name)
	if view.Tax == nil {
		return lead
	}
	if view.Tax.Dalmuti == HumanSeat {
		return fmt.Sprintf("Tax: you received %s and returned %s. %s",
			FormatCards(view.Tax.Paid), FormatCards(view.Tax.Returned), lead)
	}
	return fmt.Sprintf("Tax: you paid %s and got back %s. %s",
		FormatCards(view.Tax.Paid), FormatCards(view.Tax.Returned), lead)
}

// describeError turns an engine error into a short prompt for the player.
func describeError(err error, state *game.GameState) string {
	switch {
	case errors.Is(err, apperrors.ErrNotYourTurn):
		return "It's not your turn."
	case errors.Is(err, apperrors.ErrInvalidSelection):
		return "Select one or more cards first (space)."
	case errors.Is(err, apperrors.ErrIllegalMove):
		if len(state.LastPlayed) == 0 {
			return "Cards must share one rank. Jesters are wild."
		}
		dir := "lower"
		if state.Revolution {
			dir = "higher"
		}
		return fmt.Sprintf("Play %s of one %s rank than %s, or pass.",
			common.CardCount(len(state.LastPlayed)), dir, FormatCards(state.LastPlayed))
	case errors.Is(err, apperrors.ErrGameNotPlaying):
		return "The game is over."
	default:
		return err.Error()
	}
}

// FormatCards renders cards as "5 5 J".
func FormatCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
