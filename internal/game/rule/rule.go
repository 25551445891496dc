package rule

import (
	"fmt"

	"github.com/boneekim/Dalmuni-game/internal/game/card"
)

// Play 解析后的出牌，用于比较
type Play struct {
	Rank   card.Rank   // 决定大小的点数，纯小丑牌为 13
	Count  int         // 张数
	Jokers int         // 其中充当百搭的小丑牌数量
	Cards  []card.Card // 这手牌包含的卡牌
}

func (p Play) IsEmpty() bool {
	return p.Count == 0
}

// IsRevolution reports whether the play is exactly two cards of one printed
// rank, the shape that flips the comparison direction.
func (p Play) IsRevolution() bool {
	return p.Count == 2 && p.Cards[0].Rank == p.Cards[1].Rank
}

// Table 出牌判定所需的桌面快照
type Table struct {
	LastPlayed []card.Card
	Revolution bool
	// Cleared is set when every other active player has passed since the
	// last play, which frees the next play from matching LastPlayed.
	Cleared bool
}

// analysis 对一组牌进行预分析
type analysis struct {
	counts map[card.Rank]int // 非小丑牌各点数数量
	jokers int
}

func analyzeCards(cards []card.Card) analysis {
	a := analysis{counts: make(map[card.Rank]int)}
	for _, c := range cards {
		if c.IsJoker() {
			a.jokers++
			continue
		}
		a.counts[c.Rank]++
	}
	return a
}

// ParsePlay 解析牌型：同一点数，可加任意张小丑牌
func ParsePlay(cards []card.Card) (Play, error) {
	if len(cards) == 0 {
		return Play{}, fmt.Errorf("empty play")
	}

	a := analyzeCards(cards)
	if len(a.counts) > 1 {
		return Play{}, fmt.Errorf("mixed ranks: %v", cards)
	}
	for _, c := range cards {
		if !c.Rank.Valid() {
			return Play{}, fmt.Errorf("unknown rank %d", c.Rank)
		}
	}

	rank := card.Joker
	for r := range a.counts {
		rank = r
	}

	sorted := make([]card.Card, len(cards))
	copy(sorted, cards)
	card.SortCards(sorted)

	return Play{
		Rank:   rank,
		Count:  len(cards),
		Jokers: a.jokers,
		Cards:  sorted,
	}, nil
}

// CanBeat 判断 newPlay 是否能大过 lastPlay：张数相同，点数更小（革命时更大），同点数不能压
func CanBeat(newPlay, lastPlay Play, revolution bool) bool {
	if newPlay.Count != lastPlay.Count {
		return false
	}
	if revolution {
		return newPlay.Rank > lastPlay.Rank
	}
	return newPlay.Rank < lastPlay.Rank
}

// IsLegalPlay decides whether cards may be played onto table. It never
// mutates its arguments.
func IsLegalPlay(table Table, cards []card.Card) bool {
	play, err := ParsePlay(cards)
	if err != nil {
		return false
	}
	if table.Cleared || len(table.LastPlayed) == 0 {
		return true
	}

	last, err := ParsePlay(table.LastPlayed)
	if err != nil {
		// an unparseable table never constrains the next play
		return true
	}
	return CanBeat(play, last, table.Revolution)
}
