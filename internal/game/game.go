package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
	"github.com/boneekim/Dalmuni-game/internal/game/rule"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Options configures a new game.
type Options struct {
	PlayerCount int
	// PlayerNames overrides the default seat names, index-aligned.
	PlayerNames []string
	// AllAI makes every seat computer-controlled; otherwise seat 0 is human.
	AllAI      bool
	Difficulty Difficulty
	// Seed makes the deal reproducible when non-zero.
	Seed    uint64
	SkipTax bool
	// Rand overrides Seed when set.
	Rand *rand.Rand
}

func (o Options) validate() error {
	if o.PlayerCount < MinPlayers || o.PlayerCount > MaxPlayers {
		return fmt.Errorf("%w: player count %d outside [%d,%d]", apperrors.ErrConfig, o.PlayerCount, MinPlayers, MaxPlayers)
	}
	if len(o.PlayerNames) > o.PlayerCount {
		return fmt.Errorf("%w: %d names for %d players", apperrors.ErrConfig, len(o.PlayerNames), o.PlayerCount)
	}
	if _, err := ParseDifficulty(string(o.Difficulty)); err != nil {
		return err
	}
	return nil
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	if o.Seed != 0 {
		return rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
	}
	return nil
}

// StartGame 初始化一个新游戏：洗牌、发牌、交换，然后进入出牌阶段
func StartGame(opts Options) (*GameState, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	difficulty, _ := ParseDifficulty(string(opts.Difficulty))

	g := &GameState{
		Phase:      PhaseSetup,
		LastPlayer: -1,
		Passed:     make(map[int]bool),
		Difficulty: difficulty,
		Tax:        TaxExchange{Dalmuti: -1, Peasant: -1},
	}

	deck := card.BuildShuffledDeck(opts.rng())
	g.Players = Deal(deck, opts.PlayerCount)
	for i, p := range g.Players {
		p.IsAI = opts.AllAI || i != 0
		switch {
		case i < len(opts.PlayerNames) && opts.PlayerNames[i] != "":
			p.Name = opts.PlayerNames[i]
		case !p.IsAI:
			p.Name = "You"
		default:
			p.Name = fmt.Sprintf("AI %d", i)
		}
	}

	if !opts.SkipTax {
		g.Tax = ApplyTaxExchange(g.Players)
	}
	g.StartingPlayer = FindStartingPlayer(g.Players)
	g.CurrentPlayer = g.StartingPlayer
	g.Phase = PhasePlaying
	return g, nil
}

// Table returns the snapshot the play validator judges against.
func (g *GameState) Table() rule.Table {
	return rule.Table{
		LastPlayed: g.LastPlayed,
		Revolution: g.Revolution,
		Cleared:    len(g.LastPlayed) > 0 && len(g.Passed) == g.ActiveCount()-1,
	}
}

func (g *GameState) checkTurn(playerIndex int) error {
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: phase is %s", apperrors.ErrGameNotPlaying, g.Phase)
	}
	if playerIndex != g.CurrentPlayer {
		return fmt.Errorf("%w: it is player %d's turn, not %d", apperrors.ErrNotYourTurn, g.CurrentPlayer, playerIndex)
	}
	return nil
}

// SubmitPlay plays the cards at cardIndices of the player's hand. On any
// error the state is left untouched.
func (g *GameState) SubmitPlay(playerIndex int, cardIndices []int) error {
	if err := g.checkTurn(playerIndex); err != nil {
		return err
	}
	player := g.Players[playerIndex]

	selected, err := card.SelectIndices(player.Hand, cardIndices)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidSelection, err)
	}
	if !rule.IsLegalPlay(g.Table(), selected) {
		return fmt.Errorf("%w: %v cannot be played onto %v", apperrors.ErrIllegalMove, selected, g.LastPlayed)
	}
	play, _ := rule.ParsePlay(selected)

	g.Discard = append(g.Discard, g.LastPlayed...)
	g.LastPlayed = selected
	g.LastPlayer = playerIndex
	g.Passed = make(map[int]bool)
	player.Hand = card.RemoveIndices(player.Hand, cardIndices)
	g.record(Action{Kind: ActionPlay, Player: playerIndex, Cards: selected})

	if play.IsRevolution() {
		g.Revolution = !g.Revolution
		g.record(Action{Kind: ActionRevolution, Player: playerIndex})
	}

	if len(player.Hand) == 0 && !player.IsFinished() {
		g.finish(playerIndex)
	}

	if g.ActiveCount() == 1 {
		last := g.nextActive(playerIndex)
		g.finish(last)
		g.Phase = PhaseFinished
		g.CurrentPlayer = last
		g.record(Action{Kind: ActionGameOver, Player: -1})
		return nil
	}

	g.CurrentPlayer = g.nextActive(playerIndex)
	return nil
}

// SubmitPass 玩家 PASS；若其余在场玩家都已 PASS，则清桌并由最后出牌者领出
func (g *GameState) SubmitPass(playerIndex int) error {
	if err := g.checkTurn(playerIndex); err != nil {
		return err
	}

	g.Passed[playerIndex] = true
	g.record(Action{Kind: ActionPass, Player: playerIndex})

	if len(g.Passed) < g.ActiveCount()-1 {
		g.CurrentPlayer = g.nextActive(playerIndex)
		return nil
	}

	g.Discard = append(g.Discard, g.LastPlayed...)
	g.LastPlayed = nil
	g.Passed = make(map[int]bool)
	g.record(Action{Kind: ActionClear, Player: -1})

	switch {
	case g.LastPlayer < 0:
		g.CurrentPlayer = g.nextActive(playerIndex)
	case g.Players[g.LastPlayer].IsFinished():
		// the leader went out on their last play
		g.CurrentPlayer = g.nextActive(g.LastPlayer)
	default:
		g.CurrentPlayer = g.LastPlayer
	}
	return nil
}

// finish assigns the next finish rank to a player.
func (g *GameState) finish(playerIndex int) {
	rank := len(g.Finished) + 1
	g.Players[playerIndex].FinishRank = rank
	g.Finished = append(g.Finished, playerIndex)
	g.record(Action{Kind: ActionFinish, Player: playerIndex, Rank: rank})
}

// nextActive returns the next seat after from that still holds cards,
// wrapping around the table. It returns from when nobody else is active.
func (g *GameState) nextActive(from int) int {
	n := len(g.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !g.Players[i].IsFinished() {
			return i
		}
	}
	return from
}

func (g *GameState) record(a Action) {
	a.Revolution = g.Revolution
	g.History = append(g.History, a)
}
