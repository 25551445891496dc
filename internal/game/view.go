package game

import (
	"fmt"
	"slices"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
)

// PublicPlayer 对其他玩家可见的信息：只有手牌数量
type PublicPlayer struct {
	Name       string
	IsAI       bool
	CardCount  int
	FinishRank int
	Passed     bool
}

// PublicState is what one viewer may see of the game. Only the viewer's
// own hand is included.
type PublicState struct {
	Phase         Phase
	Viewer        int
	Hand          []card.Card
	Players       []PublicPlayer
	CurrentPlayer int
	LastPlayed    []card.Card
	LastPlayer    int
	Revolution    bool
	Finished      []int
	History       []Action
	Difficulty    Difficulty

	// Unseen counts, per rank, the cards outside the viewer's hand that have
	// not reached the table yet.
	Unseen      map[card.Rank]int
	UnseenTotal int

	// Tax is only filled in for the two players who took part in it.
	Tax *TaxExchange
}

// PublicView builds the view for viewerIndex. An out-of-range viewer
// gets a spectator view with no hand.
func (g *GameState) PublicView(viewerIndex int) PublicState {
	view := PublicState{
		Phase:         g.Phase,
		Viewer:        viewerIndex,
		Players:       make([]PublicPlayer, len(g.Players)),
		CurrentPlayer: g.CurrentPlayer,
		LastPlayed:    slices.Clone(g.LastPlayed),
		LastPlayer:    g.LastPlayer,
		Revolution:    g.Revolution,
		Finished:      slices.Clone(g.Finished),
		History:       cloneHistory(g.History),
		Difficulty:    g.Difficulty,
	}
	for i, p := range g.Players {
		view.Players[i] = PublicPlayer{
			Name:       p.Name,
			IsAI:       p.IsAI,
			CardCount:  len(p.Hand),
			FinishRank: p.FinishRank,
			Passed:     g.Passed[i],
		}
	}

	counter := card.NewCounter()
	counter.DeductCards(g.LastPlayed)
	counter.DeductCards(g.Discard)

	if viewerIndex >= 0 && viewerIndex < len(g.Players) {
		view.Hand = slices.Clone(g.Players[viewerIndex].Hand)
		counter.DeductCards(view.Hand)
		if g.Tax.Applied && (viewerIndex == g.Tax.Dalmuti || viewerIndex == g.Tax.Peasant) {
			tax := g.Tax
			tax.Paid = slices.Clone(g.Tax.Paid)
			tax.Returned = slices.Clone(g.Tax.Returned)
			view.Tax = &tax
		}
	}
	view.Unseen = counter.Remaining()
	view.UnseenTotal = counter.Total()
	return view
}

func cloneHistory(history []Action) []Action {
	out := make([]Action, len(history))
	for i, a := range history {
		a.Cards = slices.Clone(a.Cards)
		out[i] = a
	}
	return out
}

// Standing 最终名次
type Standing struct {
	Rank        int
	PlayerIndex int
	Name        string
	Title       string
	IsAI        bool
}

// Standings returns the final order, first place first. It fails with
// ErrGameNotFinished while the game is still running.
func (g *GameState) Standings() ([]Standing, error) {
	if g.Phase != PhaseFinished {
		return nil, fmt.Errorf("%w: phase is %s", apperrors.ErrGameNotFinished, g.Phase)
	}
	standings := make([]Standing, 0, len(g.Finished))
	for i, idx := range g.Finished {
		p := g.Players[idx]
		standings = append(standings, Standing{
			Rank:        p.FinishRank,
			PlayerIndex: idx,
			Name:        p.Name,
			Title:       titleFor(i+1, len(g.Finished)),
			IsAI:        p.IsAI,
		})
	}
	return standings, nil
}

func titleFor(rank, total int) string {
	switch rank {
	case 1:
		return card.RankDalmuti.Name()
	case total:
		return card.RankPeasant.Name()
	default:
		return fmt.Sprintf("Merchant #%d", rank-1)
	}
}
