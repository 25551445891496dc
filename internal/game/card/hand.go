package card

import "fmt"

// SelectIndices resolves positions in hand to cards. Indices must be in
// range and distinct; the returned cards are sorted ascending by rank.
func SelectIndices(hand []Card, indices []int) ([]Card, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("no cards selected")
	}
	seen := make(map[int]bool, len(indices))
	selected := make([]Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(hand) {
			return nil, fmt.Errorf("index %d out of range [0,%d)", idx, len(hand))
		}
		if seen[idx] {
			return nil, fmt.Errorf("index %d selected twice", idx)
		}
		seen[idx] = true
		selected = append(selected, hand[idx])
	}
	SortCards(selected)
	return selected, nil
}

// RemoveIndices 从手牌中移除指定位置的牌，返回新的手牌
func RemoveIndices(hand []Card, indices []int) []Card {
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		drop[idx] = true
	}
	result := make([]Card, 0, len(hand))
	for i, c := range hand {
		if !drop[i] {
			result = append(result, c)
		}
	}
	return result
}

// RemoveCards 从手牌中按点数移除牌（每张只移除一次）
func RemoveCards(hand, toRemove []Card) []Card {
	removeCounts := CountRanks(toRemove)
	result := make([]Card, 0, len(hand))
	for _, c := range hand {
		if removeCounts[c.Rank] > 0 {
			removeCounts[c.Rank]--
			continue
		}
		result = append(result, c)
	}
	return result
}

// IndicesOf maps a set of cards back to hand positions, taking the first
// unused position for each card. It reports false if the hand lacks a card.
func IndicesOf(hand, cards []Card) ([]int, bool) {
	used := make([]bool, len(hand))
	indices := make([]int, 0, len(cards))
	for _, c := range cards {
		found := -1
		for i, h := range hand {
			if !used[i] && h == c {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		used[found] = true
		indices = append(indices, found)
	}
	return indices, true
}
