// Package tables holds the two static lookup tables the pricing layer keys on:
// the goal-suit distribution table (per-suit goal probabilities for every
// reachable seen-count combination) and the goal-suit premium table (payoff
// distributions over final card placements). Both are immutable after load.
package tables

// DistRow is one row of the goal-suit distribution table. Counts is the
// canonical seen-count 4-tuple (largest count first); Prob[i] is the
// probability that canonical suit i is the goal suit, Prob10[i] the
// conditional probability that the goal suit holds 10 cards given suit i
// is the goal.
type DistRow struct {
	Counts [4]int
	Prob   [4]float64
	Prob10 [4]float64
}

// DistTable indexes DistRows by their exact canonical count 4-tuple.
type DistTable struct {
	rows  []DistRow
	index map[[4]int]int
}

// NewDistTable builds the lookup index over rows.
func NewDistTable(rows []DistRow) *DistTable {
	t := &DistTable{
		rows:  rows,
		index: make(map[[4]int]int, len(rows)),
	}
	for i, r := range rows {
		t.index[r.Counts] = i
	}
	return t
}

// Lookup returns the row matching all four canonical counts exactly.
// The second return is false when the counts fall outside the precomputed
// combinatorial support.
func (t *DistTable) Lookup(canonical [4]int) (DistRow, bool) {
	i, ok := t.index[canonical]
	if !ok {
		return DistRow{}, false
	}
	return t.rows[i], true
}

// Rows returns the backing rows. Callers must not mutate them.
func (t *DistTable) Rows() []DistRow { return t.rows }

// Len returns the number of rows.
func (t *DistTable) Len() int { return len(t.rows) }

// PremiumRow is one row of the goal-suit premium table: a possible final
// placement of the goal suit's cards across the four players, the pot it
// pays, and the share of the pot the agent takes under that placement.
// PrGoal is a placeholder column overridden at query time with the
// deck-size-conditional probability.
type PremiumRow struct {
	Me     int
	P2     int
	P3     int
	P4     int
	PrGoal float64
	Weight float64
	Pot    float64
}

// Sum returns the total goal-suit cards in the row's placement (8 or 10).
func (r PremiumRow) Sum() int { return r.Me + r.P2 + r.P3 + r.P4 }

// PremiumTable holds premium rows for lower-bound filtered scans.
type PremiumTable struct {
	rows []PremiumRow
}

// NewPremiumTable wraps rows in a table.
func NewPremiumTable(rows []PremiumRow) *PremiumTable {
	return &PremiumTable{rows: rows}
}

// Rows returns the backing rows. Callers must not mutate them.
func (t *PremiumTable) Rows() []PremiumRow { return t.rows }

// Len returns the number of rows.
func (t *PremiumTable) Len() int { return len(t.rows) }
