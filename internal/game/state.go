package game

import (
	"fmt"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
)

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseSetup is the state while hands are being dealt and taxed.
	PhaseSetup Phase = "setup"
	// PhasePlaying is the active state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseFinished is the terminal state once every finish rank is assigned.
	PhaseFinished Phase = "finished"
)

// Difficulty is accepted for computer players but does not change how they
// choose plays.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty 校验难度，空字符串视为 easy
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case "":
		return DifficultyEasy, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrConfig, s)
	}
}

// Next cycles easy -> medium -> hard -> easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// Player 玩家
type Player struct {
	ID         string
	Name       string
	Hand       []card.Card // 按点数升序
	IsAI       bool
	FinishRank int // 0 表示尚未出完
}

func (p *Player) IsFinished() bool {
	return p.FinishRank != 0
}

// ActionKind identifies an entry in the turn history.
type ActionKind string

const (
	ActionPlay       ActionKind = "play"
	ActionPass       ActionKind = "pass"
	ActionClear      ActionKind = "clear"
	ActionRevolution ActionKind = "revolution"
	ActionFinish     ActionKind = "finish"
	ActionGameOver   ActionKind = "gameover"
)

// Action is one entry of the turn history.
type Action struct {
	Kind   ActionKind
	Player int // -1 for table events
	Cards  []card.Card
	Rank   int // finish rank for ActionFinish
	// Revolution is the comparison direction after the action.
	Revolution bool
}

// TaxExchange 记录开局交换的结果
type TaxExchange struct {
	Applied  bool
	Dalmuti  int // -1 if nobody holds rank 1
	Peasant  int // -1 if nobody else holds rank 12
	Paid     []card.Card
	Returned []card.Card
}

// GameState holds the whole game and is the only thing transitions mutate.
// It is not safe for concurrent use; callers serialize every call.
type GameState struct {
	Phase   Phase
	Players []*Player

	CurrentPlayer int
	LastPlayed    []card.Card
	LastPlayer    int          // -1 until someone plays
	Passed        map[int]bool // 自上次出牌后已 PASS 的玩家
	Finished      []int        // 出完牌的顺序
	Revolution    bool

	// Discard holds cards from plays that were beaten or cleared.
	Discard []card.Card
	History []Action

	Tax            TaxExchange
	StartingPlayer int
	Difficulty     Difficulty
}

// ActiveCount returns how many players still hold cards.
func (g *GameState) ActiveCount() int {
	count := 0
	for _, p := range g.Players {
		if !p.IsFinished() {
			count++
		}
	}
	return count
}

// Current returns the player whose turn it is.
func (g *GameState) Current() *Player {
	return g.Players[g.CurrentPlayer]
}

// CardsInPlay counts every card in hands, on the table and in the discard.
func (g *GameState) CardsInPlay() int {
	total := len(g.LastPlayed) + len(g.Discard)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}
