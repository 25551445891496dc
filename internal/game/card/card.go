package card

import (
	"math/rand/v2"
	"slices"
	"strconv"
)

// Rank 定义点数，数字越小越大（革命时反转）
type Rank int

const (
	RankDalmuti     Rank = iota + 1 // 1
	RankArchbishop                  // 2
	RankEarlMarshal                 // 3
	RankBaroness                    // 4
	RankAbbess                      // 5
	RankKnight                      // 6
	RankSeamstress                  // 7
	RankMason                       // 8
	RankCook                        // 9
	RankShepherdess                 // 10
	RankStonecutter                 // 11
	RankPeasant                     // 12
	RankJester                      // 13, wild
)

// Joker is the wild rank.
const Joker = RankJester

// DeckSize 整副牌张数
const DeckSize = 80

// rankNames 牌面名称映射表
var rankNames = map[Rank]string{
	RankDalmuti:     "Dalmuti",
	RankArchbishop:  "Archbishop",
	RankEarlMarshal: "Earl Marshal",
	RankBaroness:    "Baroness",
	RankAbbess:      "Abbess",
	RankKnight:      "Knight",
	RankSeamstress:  "Seamstress",
	RankMason:       "Mason",
	RankCook:        "Cook",
	RankShepherdess: "Shepherdess",
	RankStonecutter: "Stonecutter",
	RankPeasant:     "Peasant",
	RankJester:      "Jester",
}

func (r Rank) String() string {
	if r == RankJester {
		return "J"
	}
	return strconv.Itoa(int(r))
}

// Name returns the character title printed on cards of this rank.
func (r Rank) Name() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Quantity 每种点数在整副牌中的张数
func (r Rank) Quantity() int {
	switch {
	case r == RankJester:
		return 2
	case r >= RankDalmuti && r <= RankPeasant:
		return int(r)
	default:
		return 0
	}
}

func (r Rank) Valid() bool {
	return r >= RankDalmuti && r <= RankJester
}

// Card 定义一张牌，同点数的牌可互换
type Card struct {
	Rank Rank
}

func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

func (c Card) String() string {
	return c.Rank.String()
}

// DisplayName 牌面显示名
func (c Card) DisplayName() string {
	return c.Rank.Name()
}

// Deck 定义一副牌
type Deck []Card

// NewDeck builds the 80-card deck in rank order.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for r := RankDalmuti; r <= RankJester; r++ {
		for range r.Quantity() {
			deck = append(deck, Card{Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck uniformly using rng, or the global source when rng is nil.
func (d Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { d[i], d[j] = d[j], d[i] }
	if rng == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	rng.Shuffle(len(d), swap)
}

// BuildShuffledDeck 生成洗好的一副牌
func BuildShuffledDeck(rng *rand.Rand) Deck {
	deck := NewDeck()
	deck.Shuffle(rng)
	return deck
}

// SortCards orders cards ascending by rank in place.
func SortCards(cards []Card) {
	slices.SortStableFunc(cards, func(a, b Card) int {
		return int(a.Rank) - int(b.Rank)
	})
}

// CountRanks 统计各点数的数量
func CountRanks(cards []Card) map[Rank]int {
	counts := make(map[Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// Repeat returns n cards of rank r.
func Repeat(r Rank, n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{Rank: r}
	}
	return cards
}
