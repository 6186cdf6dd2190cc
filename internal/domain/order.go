package domain

import (
	"fmt"

	"github.com/dorive/FiggieMachine/pkg/cards"
)

// OrderIntent is a priced order decision produced by the quote engine:
// either a taking order matching resting market interest or a limiting
// order to rest at the agent's own quote. Edge ranks competing intents.
type OrderIntent struct {
	Direction cards.Direction
	Suit      cards.Suit
	Price     int
	Edge      float64
}

func (o OrderIntent) String() string {
	return fmt.Sprintf("%s %s @ %d (edge %.2f)", o.Direction, o.Suit, o.Price, o.Edge)
}

// OrderKey identifies a working order by direction and suit. The venue
// holds at most one resting order per direction+suit pair, so the pair is
// the dedup and cancellation key.
type OrderKey struct {
	Direction cards.Direction
	Suit      cards.Suit
}

func (k OrderKey) String() string {
	return fmt.Sprintf("%s,%s", k.Direction, k.Suit)
}

// TradeRecord is a parsed trade notice from an update event.
type TradeRecord struct {
	Suit   cards.Suit
	Price  int
	Buyer  string
	Seller string
}
