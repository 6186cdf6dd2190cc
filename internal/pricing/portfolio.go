package pricing

import (
	"errors"
	"log/slog"
	"math"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// premiumer lets tests pin premiums while exercising the valuation math.
type premiumer interface {
	Premium(own int, oppCounts [3]int, prob10 float64) (float64, error)
}

// Valuator prices the agent's holding and derives per-suit quotes via
// counterfactual re-valuation.
type Valuator struct {
	prem premiumer
	est  *Estimator
}

// NewValuator wires the premium calculator and estimator.
func NewValuator(prem *PremiumCalc, est *Estimator) *Valuator {
	return &Valuator{prem: prem, est: est}
}

func newValuatorWith(prem premiumer, est *Estimator) *Valuator {
	return &Valuator{prem: prem, est: est}
}

// Evaluate returns the dollar value of the holding: 10 per card weighted by
// its suit's goal probability, plus each suit's expected goal premium.
// An unanswerable premium lookup propagates as NaN, which the quote scans
// treat as an infeasible counterfactual.
func (v *Valuator) Evaluate(own [cards.NumSuits]int, all domain.CountMatrix, probs, probs10 [cards.NumSuits]float64) float64 {
	value := 0.0
	for s := 0; s < cards.NumSuits; s++ {
		value += 10 * float64(own[s]) * probs[s]
	}
	for s := 0; s < cards.NumSuits; s++ {
		prem, err := v.prem.Premium(own[s], opponentCounts(all, cards.Suit(s)), probs10[s])
		if err != nil {
			slog.Debug("Premium lookup empty", "suit", cards.Suit(s), "own", own[s])
		}
		value += probs[s] * prem
	}
	return value
}

// NeutralQuotes derives the breakeven bid and ask per suit: the price at
// which giving away (ask) or receiving (bid) one card leaves the portfolio
// value unchanged under the worst-case (ask) or best-case (bid) opponent.
func (v *Valuator) NeutralQuotes(value float64, all domain.CountMatrix, probs, probs10 [cards.NumSuits]float64) domain.QuoteSet {
	var quotes domain.QuoteSet

	for s := 0; s < cards.NumSuits; s++ {
		suit := cards.Suit(s)

		// Ask: value lost by handing one card to the opponent it hurts
		// most to arm. Needs a card to sell.
		if all[domain.SelfSlot][s] > 0 {
			least := math.NaN()
			for opp := 1; opp < domain.NumPlayers; opp++ {
				after := all.GiveCard(opp, suit)
				nv := v.Evaluate(after.Row(domain.SelfSlot), after, probs, probs10)
				if nv > value {
					slog.Error("Giving a card away must not increase portfolio value",
						"suit", suit, "value", value, "counterfactual", nv)
				}
				least = nanMin(least, nv)
			}
			if !math.IsNaN(least) {
				quotes[s].Ask = value - least
				quotes[s].HasAsk = true
			}
		}

		// Bid: value gained by buying one card from the opponent it
		// pays most to take from. Buying from a player showing zero of
		// the suit reveals a card nobody had seen, so the probabilities
		// are recomputed; an infeasible increment skips that opponent.
		best := math.NaN()
		for opp := 1; opp < domain.NumPlayers; opp++ {
			useProbs, useProbs10 := probs, probs10
			if all[opp][s] == 0 {
				totals := all.SuitTotals()
				totals[s]++
				np, np10, err := v.est.Estimate(totals)
				if errors.Is(err, ErrNoTableRow) {
					// No feasible counterfactual for this opponent.
					continue
				}
				if err != nil {
					slog.Error("Counterfactual estimation failed",
						"suit", suit, "counts", totals, "error", err)
					continue
				}
				useProbs, useProbs10 = np, np10
			}

			after := all.TakeCard(opp, suit)
			nv := v.Evaluate(after.Row(domain.SelfSlot), after, useProbs, useProbs10)
			if nv < value && all[opp][s] != 0 {
				slog.Error("Receiving a card must not decrease portfolio value",
					"suit", suit, "value", value, "counterfactual", nv)
			}
			best = nanMax(best, nv)
		}
		if !math.IsNaN(best) {
			quotes[s].Bid = math.Max(best-value, 0)
			quotes[s].HasBid = true
		}
	}

	return quotes
}

func opponentCounts(all domain.CountMatrix, suit cards.Suit) [3]int {
	return [3]int{all[1][suit], all[2][suit], all[3][suit]}
}

// nanMin returns the smaller of two values, ignoring NaN operands.
func nanMin(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	default:
		return math.Min(a, b)
	}
}

// nanMax returns the larger of two values, ignoring NaN operands.
func nanMax(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	default:
		return math.Max(a, b)
	}
}
