package rule

import (
	"cmp"
	"slices"

	"github.com/boneekim/Dalmuni-game/internal/game/card"
)

// EnumerateLegalPlays lists every distinct legal play hand can make onto
// table, ordered by preference (see ChoosePlay). Plays are built per rank
// from that rank's own cards plus the Jokers actually in hand, so the cost
// stays linear in ranks times hand size.
func EnumerateLegalPlays(hand []card.Card, table Table) [][]card.Card {
	a := analyzeCards(hand)

	var candidates []Play
	for r, n := range a.counts {
		for naturals := 1; naturals <= n; naturals++ {
			for jokers := 0; jokers <= a.jokers; jokers++ {
				candidates = append(candidates, buildPlay(r, naturals, jokers))
			}
		}
	}
	// jokers alone stand as rank 13
	for jokers := 1; jokers <= a.jokers; jokers++ {
		candidates = append(candidates, buildPlay(card.Joker, 0, jokers))
	}

	legal := make([]Play, 0, len(candidates))
	for _, p := range candidates {
		if IsLegalPlay(table, p.Cards) {
			legal = append(legal, p)
		}
	}
	sortByPreference(legal)

	plays := make([][]card.Card, len(legal))
	for i, p := range legal {
		plays[i] = p.Cards
	}
	return plays
}

// ChoosePlay picks the play a computer player makes from an enumerated list.
// It reports false when the list is empty and the player must pass.
func ChoosePlay(plays [][]card.Card) ([]card.Card, bool) {
	if len(plays) == 0 {
		return nil, false
	}
	return plays[0], true
}

func buildPlay(r card.Rank, naturals, jokers int) Play {
	cards := append(card.Repeat(r, naturals), card.Repeat(card.Joker, jokers)...)
	return Play{Rank: r, Count: len(cards), Jokers: jokers, Cards: cards}
}

// sortByPreference 优先出最弱的点数（数字最大），同点数先出张数多的，再少用小丑牌
func sortByPreference(plays []Play) {
	slices.SortFunc(plays, func(a, b Play) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Jokers, b.Jokers)
	})
}
