package domain

import (
	"fmt"
	"strings"

	"github.com/dorive/FiggieMachine/pkg/cards"
)

// Quote is a neutral (breakeven) bid/ask pair for one suit, in dollars.
// A side with no feasible counterfactual valuation is absent rather than
// carrying a magic value.
type Quote struct {
	Bid    float64
	Ask    float64
	HasBid bool
	HasAsk bool
}

// QuoteSet is the per-suit neutral quote vector.
type QuoteSet [cards.NumSuits]Quote

func (q QuoteSet) String() string {
	var sb strings.Builder
	for i := range q {
		if i > 0 {
			sb.WriteString(" ")
		}
		bid, ask := "-", "-"
		if q[i].HasBid {
			bid = fmt.Sprintf("%.2f", q[i].Bid)
		}
		if q[i].HasAsk {
			ask = fmt.Sprintf("%.2f", q[i].Ask)
		}
		fmt.Fprintf(&sb, "[%s, %s]", bid, ask)
	}
	return sb.String()
}

// AdjLevel is an integer bid/ask pair after information-state adjustment.
// Absent sides collapse back to the book sentinels so adjusted quotes and
// book levels compare directly.
type AdjLevel struct {
	Bid int
	Ask int
}

// AdjQuoteSet is the per-suit adjusted quote vector.
type AdjQuoteSet [cards.NumSuits]AdjLevel

func (q AdjQuoteSet) String() string {
	var sb strings.Builder
	for i := range q {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "[%d, %d]", q[i].Bid, q[i].Ask)
	}
	return sb.String()
}
