package execution

import (
	"context"

	"github.com/dorive/FiggieMachine/pkg/cards"
)

// Venue is the trading boundary. Implementations report plain success or
// failure: a failed call means the market state did not change and the
// caller must not update its own bookkeeping.
type Venue interface {
	// PlaceOrder posts a resting order for one card of a suit.
	PlaceOrder(ctx context.Context, suit cards.Suit, price int, direction cards.Direction) bool

	// CancelOrder cancels the resting order on one side of a suit.
	CancelOrder(ctx context.Context, suit cards.Suit, direction cards.Direction) bool

	// Inventory queries the venue for the agent's own per-suit counts,
	// which are ground truth over anything inferred from the stream.
	Inventory(ctx context.Context) ([cards.NumSuits]int, bool)
}
