package domain

import "github.com/dorive/FiggieMachine/pkg/cards"

// NumPlayers is the fixed table size: the agent plus three opponents.
const NumPlayers = 4

// SelfSlot is the agent's own player slot. It never changes within a game.
const SelfSlot = 0

// CountMatrix is the players-by-suits card count table the valuation layer
// reads. Row 0 is always the agent.
type CountMatrix [NumPlayers][cards.NumSuits]int

// Row returns one player's per-suit counts.
func (m CountMatrix) Row(slot int) [cards.NumSuits]int {
	return m[slot]
}

// SuitTotals returns the total visible count per suit across all players.
func (m CountMatrix) SuitTotals() [cards.NumSuits]int {
	var totals [cards.NumSuits]int
	for p := 0; p < NumPlayers; p++ {
		for s := 0; s < cards.NumSuits; s++ {
			totals[s] += m[p][s]
		}
	}
	return totals
}

// SeenCards returns the total number of cards visible across all players.
func (m CountMatrix) SeenCards() int {
	n := 0
	for _, t := range m.SuitTotals() {
		n += t
	}
	return n
}

// Column returns each player's count of one suit.
func (m CountMatrix) Column(suit cards.Suit) [NumPlayers]int {
	var col [NumPlayers]int
	for p := 0; p < NumPlayers; p++ {
		col[p] = m[p][suit]
	}
	return col
}

// GiveCard returns a copy with one suit card moved from the agent to the
// given opponent.
func (m CountMatrix) GiveCard(opp int, suit cards.Suit) CountMatrix {
	out := m
	out[SelfSlot][suit]--
	out[opp][suit]++
	return out
}

// TakeCard returns a copy with one suit card moved from the given opponent
// to the agent. The opponent's count only decreases when it is positive:
// receiving a card from a player whose holding was never observed must not
// push their count negative.
func (m CountMatrix) TakeCard(opp int, suit cards.Suit) CountMatrix {
	out := m
	out[SelfSlot][suit]++
	if out[opp][suit] > 0 {
		out[opp][suit]--
	}
	return out
}
