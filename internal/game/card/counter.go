package card

// Counter tracks cards a viewer has not seen yet: the full deck minus
// the viewer's own hand and everything played to the table.
type Counter struct {
	remaining map[Rank]int
}

// NewCounter creates and initializes a new card counter
func NewCounter() *Counter {
	cc := &Counter{
		remaining: make(map[Rank]int),
	}
	cc.Reset()
	return cc
}

// Reset initializes counter with a full deck (80 cards)
func (cc *Counter) Reset() {
	for r := RankDalmuti; r <= RankJester; r++ {
		cc.remaining[r] = r.Quantity()
	}
}

// DeductCards removes cards from the counter
func (cc *Counter) DeductCards(cards []Card) {
	for _, c := range cards {
		if cc.remaining[c.Rank] > 0 {
			cc.remaining[c.Rank]--
		}
	}
}

// Remaining returns a copy of the remaining card counts
func (cc *Counter) Remaining() map[Rank]int {
	out := make(map[Rank]int, len(cc.remaining))
	for r, n := range cc.remaining {
		out[r] = n
	}
	return out
}

// Total 剩余未见牌总数
func (cc *Counter) Total() int {
	total := 0
	for _, n := range cc.remaining {
		total += n
	}
	return total
}
