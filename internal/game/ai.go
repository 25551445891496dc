package game

import (
	"fmt"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
	"github.com/boneekim/Dalmuni-game/internal/game/rule"
)

// EnumerateLegalPlays lists every legal play for the player against the
// current table. An empty result means the player must pass.
func (g *GameState) EnumerateLegalPlays(playerIndex int) [][]card.Card {
	if playerIndex < 0 || playerIndex >= len(g.Players) {
		return nil
	}
	p := g.Players[playerIndex]
	if p.IsFinished() {
		return nil
	}
	return rule.EnumerateLegalPlays(p.Hand, g.Table())
}

// StepAITurn 让当前的电脑玩家行动一次：有合法出牌就出，否则 PASS
func (g *GameState) StepAITurn() (Action, error) {
	if g.Phase != PhasePlaying {
		return Action{}, fmt.Errorf("%w: phase is %s", apperrors.ErrGameNotPlaying, g.Phase)
	}
	idx := g.CurrentPlayer
	p := g.Players[idx]
	if !p.IsAI {
		return Action{}, fmt.Errorf("%w: player %d (%s)", apperrors.ErrNotAIPlayer, idx, p.Name)
	}

	play, ok := rule.ChoosePlay(g.EnumerateLegalPlays(idx))
	if !ok {
		if err := g.SubmitPass(idx); err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionPass, Player: idx, Revolution: g.Revolution}, nil
	}

	indices, found := card.IndicesOf(p.Hand, play)
	if !found {
		return Action{}, fmt.Errorf("%w: enumerated play %v not in hand", apperrors.ErrInvalidSelection, play)
	}
	if err := g.SubmitPlay(idx, indices); err != nil {
		return Action{}, err
	}
	return Action{Kind: ActionPlay, Player: idx, Cards: play, Revolution: g.Revolution}, nil
}
