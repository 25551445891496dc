package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/boneekim/Dalmuni-game/internal/game/card"
)

// taxSize 交换的牌数
const taxSize = 2

// Deal 发牌：从 0 号玩家开始轮流发，直到发完；靠后的玩家可能少一张
func Deal(deck card.Deck, playerCount int) []*Player {
	players := make([]*Player, playerCount)
	for i := range players {
		players[i] = &Player{
			ID:   uuid.NewString(),
			Name: fmt.Sprintf("Player %d", i+1),
			Hand: make([]card.Card, 0, len(deck)/playerCount+1),
		}
	}
	for i, c := range deck {
		p := players[i%playerCount]
		p.Hand = append(p.Hand, c)
	}
	for _, p := range players {
		card.SortCards(p.Hand)
	}
	return players
}

// holderOf returns the first seat whose hand contains rank, skipping except.
func holderOf(players []*Player, rank card.Rank, except int) int {
	for i, p := range players {
		if i == except {
			continue
		}
		for _, c := range p.Hand {
			if c.Rank == rank {
				return i
			}
		}
	}
	return -1
}

// ApplyTaxExchange 开局交换：农民交出最小点数的两张牌给达尔穆蒂，达尔穆蒂还回点数最大的两张
func ApplyTaxExchange(players []*Player) TaxExchange {
	tax := TaxExchange{Dalmuti: -1, Peasant: -1}

	tax.Dalmuti = holderOf(players, card.RankDalmuti, -1)
	if tax.Dalmuti < 0 {
		return tax
	}
	tax.Peasant = holderOf(players, card.RankPeasant, tax.Dalmuti)
	if tax.Peasant < 0 {
		return tax
	}

	dalmuti, peasant := players[tax.Dalmuti], players[tax.Peasant]

	// 手牌已升序，前两张点数最小
	n := min(taxSize, len(peasant.Hand))
	tax.Paid = append([]card.Card(nil), peasant.Hand[:n]...)
	peasant.Hand = append([]card.Card(nil), peasant.Hand[n:]...)
	dalmuti.Hand = append(dalmuti.Hand, tax.Paid...)
	card.SortCards(dalmuti.Hand)

	m := min(taxSize, len(dalmuti.Hand))
	cut := len(dalmuti.Hand) - m
	tax.Returned = append([]card.Card(nil), dalmuti.Hand[cut:]...)
	dalmuti.Hand = append([]card.Card(nil), dalmuti.Hand[:cut]...)
	peasant.Hand = append(peasant.Hand, tax.Returned...)
	card.SortCards(peasant.Hand)

	tax.Applied = true
	return tax
}

// FindStartingPlayer returns the seat holding the rank-1 card, or 0.
func FindStartingPlayer(players []*Player) int {
	if i := holderOf(players, card.RankDalmuti, -1); i >= 0 {
		return i
	}
	return 0
}
