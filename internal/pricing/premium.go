package pricing

import (
	"errors"
	"math"

	"github.com/dorive/FiggieMachine/internal/tables"
)

// ErrNoPremiumRows is returned when the lower-bound filter over the premium
// table matches nothing: the observed counts imply an impossible final
// placement. The accompanying value is NaN so that counterfactual scans
// treat it as "no result" rather than a price.
var ErrNoPremiumRows = errors.New("no premium rows match holdings")

// maxHoldingPremium is the expected premium with more than 6 goal-suit
// cards: a guaranteed majority of either deck, so the full pot averaged
// over the two 100-pots and one 120-pot arrangements.
const maxHoldingPremium = (2*100.0 + 120.0) / 3.0

// PremiumCalc computes the expected dollar premium of holding cards of a
// candidate goal suit.
type PremiumCalc struct {
	table *tables.PremiumTable
}

// NewPremiumCalc wraps a premium table.
func NewPremiumCalc(table *tables.PremiumTable) *PremiumCalc {
	return &PremiumCalc{table: table}
}

// Premium returns the expected payoff of holding own cards of the suit
// given each opponent is known to hold at least the corresponding oppCounts
// entry, weighting placements by prob10 (the chance the goal suit has 10
// cards rather than 8).
func (c *PremiumCalc) Premium(own int, oppCounts [3]int, prob10 float64) (float64, error) {
	if own < 2 {
		return 0, nil
	}
	if own > 6 {
		return maxHoldingPremium, nil
	}

	profit := 0.0
	denom := 0.0
	matched := 0
	for _, row := range c.table.Rows() {
		if row.Me != own ||
			row.P2 < oppCounts[0] ||
			row.P3 < oppCounts[1] ||
			row.P4 < oppCounts[2] {
			continue
		}
		matched++

		pr := row.PrGoal
		switch row.Sum() {
		case 10:
			pr = prob10
		case 8:
			pr = 1 - prob10
		}
		profit += pr * row.Weight * row.Pot
		denom += pr
	}

	if matched == 0 {
		return math.NaN(), ErrNoPremiumRows
	}
	return profit / denom, nil
}
