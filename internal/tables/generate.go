package tables

import (
	"math"

	"github.com/dorive/FiggieMachine/pkg/cards"
)

// deckArrangement is one of the 12 equally likely ways the 12/10/10/8 suit
// sizes can be assigned to the four suit positions. goal is the index of the
// goal suit under that arrangement (the same-color partner of the 12 suit).
type deckArrangement struct {
	counts [4]int
	goal   int
}

// Positions 0/1 and 2/3 are color partners: the goal suit is the partner of
// whichever position holds 12 cards.
var deckArrangements = [12]deckArrangement{
	{[4]int{12, 10, 10, 8}, 1},
	{[4]int{12, 10, 8, 10}, 1},
	{[4]int{12, 8, 10, 10}, 1},
	{[4]int{8, 12, 10, 10}, 0},
	{[4]int{10, 12, 10, 8}, 0},
	{[4]int{10, 12, 8, 10}, 0},
	{[4]int{10, 8, 12, 10}, 3},
	{[4]int{8, 10, 12, 10}, 3},
	{[4]int{10, 10, 12, 8}, 3},
	{[4]int{10, 10, 8, 12}, 2},
	{[4]int{10, 8, 10, 12}, 2},
	{[4]int{8, 10, 10, 12}, 2},
}

// drawProbability returns the probability of observing the seen counts when
// drawing without replacement from a deck with the given per-suit sizes.
// A seen count exceeding the suit's size yields 0.
func drawProbability(deck [4]int, seen [4]int) float64 {
	p := 1.0
	drawn := 0
	for i := 0; i < 4; i++ {
		for k := 0; k < seen[i]; k++ {
			num := float64(deck[i] - k)
			if num <= 0 {
				return 0
			}
			p *= num / float64(cards.DeckSize-drawn-k)
		}
		drawn += seen[i]
	}
	return p
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// GenerateDist enumerates every canonical seen-count combination that some
// deck arrangement can produce and computes its goal-suit probabilities.
// Canonical means the first count is the largest; combinations no deck can
// produce (two counts over 10, two twelves, four counts over 8) are skipped.
func GenerateDist() *DistTable {
	var rows []DistRow

	for a := 0; a <= 12; a++ {
		for b := 0; b <= 12; b++ {
			for c := 0; c <= 12; c++ {
				for d := 0; d <= 12; d++ {
					seen := [4]int{a, b, c, d}
					if !canonicalFeasible(seen) {
						continue
					}

					var perGoal, perGoal10 [4]float64
					total := 0.0
					for _, deck := range deckArrangements {
						p := drawProbability(deck.counts, seen)
						total += p
						perGoal[deck.goal] += p
						if deck.counts[deck.goal] == 10 {
							perGoal10[deck.goal] += p
						}
					}
					if total == 0 {
						continue
					}

					row := DistRow{Counts: seen}
					for i := 0; i < 4; i++ {
						row.Prob[i] = round3(perGoal[i] / total)
						if perGoal[i] > 0 {
							row.Prob10[i] = round3(perGoal10[i] / perGoal[i])
						}
					}
					rows = append(rows, row)
				}
			}
		}
	}

	return NewDistTable(rows)
}

func canonicalFeasible(seen [4]int) bool {
	sum, twelves, over10, over8 := 0, 0, 0, 0
	maxRest := 0
	for i, n := range seen {
		sum += n
		if n == 12 {
			twelves++
		}
		if n > 10 {
			over10++
		}
		if n > 8 {
			over8++
		}
		if i > 0 && n > maxRest {
			maxRest = n
		}
	}
	return sum <= cards.DeckSize &&
		twelves < 2 &&
		over10 < 2 &&
		over8 < 4 &&
		seen[0] >= maxRest
}

// GeneratePremium enumerates every final placement of the goal suit's cards
// (agent holding 2..10, opponents 0..10, totalling either 10 or 8) with the
// pot it pays and the agent's share of it.
func GeneratePremium() *PremiumTable {
	var rows []PremiumRow

	for me := 2; me <= 10; me++ {
		for p2 := 0; p2 <= 10; p2++ {
			for p3 := 0; p3 <= 10; p3++ {
				for p4 := 0; p4 <= 10; p4++ {
					sum := me + p2 + p3 + p4
					if sum != 10 && sum != 8 {
						continue
					}

					pot := 100.0
					if sum == 8 {
						pot = 120.0
					}

					rows = append(rows, PremiumRow{
						Me: me, P2: p2, P3: p3, P4: p4,
						Weight: majorityWeight([4]int{me, p2, p3, p4}),
						Pot:    pot,
					})
				}
			}
		}
	}

	return NewPremiumTable(rows)
}

// majorityWeight is the share of the pot the first player takes: the full
// pot with a strict majority of the goal suit, an equal split on a tie for
// the majority, nothing otherwise.
func majorityWeight(dist [4]int) float64 {
	maxRest := dist[1]
	for _, n := range dist[2:] {
		if n > maxRest {
			maxRest = n
		}
	}

	switch {
	case dist[0] > maxRest:
		return 1.0
	case dist[0] == maxRest:
		ties := 0
		for _, n := range dist {
			if n == maxRest {
				ties++
			}
		}
		return 1.0 / float64(ties)
	default:
		return 0.0
	}
}
