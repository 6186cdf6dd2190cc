// Package pricing turns observed card counts into goal-suit probabilities,
// dollar valuations, and bid/ask quotes.
package pricing

import (
	"errors"
	"fmt"

	"github.com/dorive/FiggieMachine/internal/tables"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// ErrNoTableRow is returned when the seen counts fall outside the
// distribution table's precomputed support. Callers must not substitute a
// default: a silent fallback would misprice every downstream quote.
var ErrNoTableRow = errors.New("no precomputed row for seen counts")

// Estimator looks up goal-suit probabilities for the currently visible
// per-suit counts.
type Estimator struct {
	dist *tables.DistTable
}

// NewEstimator wraps a distribution table.
func NewEstimator(dist *tables.DistTable) *Estimator {
	return &Estimator{dist: dist}
}

// The table stores only canonical rows (largest count first). Each input is
// canonicalized by one of four fixed permutations depending on which suit
// holds the maximum, and the output vectors are mapped back through the
// inverse. forward[i] is the physical suit index placed at canonical
// position i.
var forwardPerms = [4][4]int{
	{0, 1, 2, 3},
	{1, 0, 2, 3},
	{2, 3, 0, 1},
	{3, 2, 0, 1},
}

// Estimate returns, per physical suit, the probability of being the goal
// suit and the conditional probability of the goal suit holding 10 cards.
// counts[i] is the total number of suit-i cards visible across all players.
func (e *Estimator) Estimate(counts [cards.NumSuits]int) (probs, probs10 [cards.NumSuits]float64, err error) {
	maxIdx := 0
	for i := 1; i < cards.NumSuits; i++ {
		if counts[i] > counts[maxIdx] {
			maxIdx = i
		}
	}

	fwd := forwardPerms[maxIdx]
	var canonical [cards.NumSuits]int
	for i := 0; i < cards.NumSuits; i++ {
		canonical[i] = counts[fwd[i]]
	}

	row, ok := e.dist.Lookup(canonical)
	if !ok {
		return probs, probs10, fmt.Errorf("counts %v (canonical %v): %w", counts, canonical, ErrNoTableRow)
	}

	// Invert: canonical position i holds physical suit fwd[i].
	for i := 0; i < cards.NumSuits; i++ {
		probs[fwd[i]] = row.Prob[i]
		probs10[fwd[i]] = row.Prob10[i]
	}
	return probs, probs10, nil
}
