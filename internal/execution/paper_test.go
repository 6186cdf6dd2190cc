package execution

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

func TestPaperVenueImplementsVenue(t *testing.T) {
	var _ Venue = (*PaperVenue)(nil)
	var _ Venue = (*RESTClient)(nil)
	var _ Venue = (*MockVenue)(nil)
}

func TestPaperVenueRejectsBeforeDeal(t *testing.T) {
	p := NewPaperVenue(decimal.NewFromInt(350))
	ctx := context.Background()

	assert.False(t, p.PlaceOrder(ctx, cards.Spades, 10, cards.Buy))
	assert.False(t, p.CancelOrder(ctx, cards.Spades, cards.Buy))
	_, ok := p.Inventory(ctx)
	assert.False(t, ok)
}

func TestPaperVenueOrderLifecycle(t *testing.T) {
	p := NewPaperVenue(decimal.NewFromInt(350))
	p.Deal([cards.NumSuits]int{3, 3, 3, 4})
	ctx := context.Background()

	require.True(t, p.PlaceOrder(ctx, cards.Hearts, 12, cards.Buy))
	require.True(t, p.PlaceOrder(ctx, cards.Hearts, 20, cards.Sell))

	// Re-posting a side replaces the old price.
	require.True(t, p.PlaceOrder(ctx, cards.Hearts, 14, cards.Buy))
	resting := p.RestingOrders()
	assert.Equal(t, 14, resting[domain.OrderKey{Direction: cards.Buy, Suit: cards.Hearts}])
	assert.Equal(t, 20, resting[domain.OrderKey{Direction: cards.Sell, Suit: cards.Hearts}])

	require.True(t, p.CancelOrder(ctx, cards.Hearts, cards.Sell))
	_, still := p.RestingOrders()[domain.OrderKey{Direction: cards.Sell, Suit: cards.Hearts}]
	assert.False(t, still)
}

func TestPaperVenueRejectionRules(t *testing.T) {
	p := NewPaperVenue(decimal.NewFromInt(15))
	p.Deal([cards.NumSuits]int{0, 3, 3, 4})
	ctx := context.Background()

	assert.False(t, p.PlaceOrder(ctx, cards.Spades, 10, cards.Sell), "no inventory")
	assert.False(t, p.PlaceOrder(ctx, cards.Clubs, 16, cards.Buy), "over balance")
	assert.False(t, p.PlaceOrder(ctx, cards.Clubs, 0, cards.Buy), "under price band")
	assert.True(t, p.PlaceOrder(ctx, cards.Clubs, 15, cards.Buy))
}

func TestPaperVenueFillSettles(t *testing.T) {
	p := NewPaperVenue(decimal.NewFromInt(100))
	p.Deal([cards.NumSuits]int{2, 0, 0, 0})
	ctx := context.Background()

	require.True(t, p.PlaceOrder(ctx, cards.Spades, 30, cards.Sell))
	require.True(t, p.Fill(cards.Spades, cards.Sell))

	inv, ok := p.Inventory(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, inv[cards.Spades])
	assert.True(t, p.Balance().Equal(decimal.NewFromInt(130)))

	// Nothing resting on that side anymore.
	assert.False(t, p.Fill(cards.Spades, cards.Sell))
}

func TestPaperVenueEndRoundCreditsPot(t *testing.T) {
	p := NewPaperVenue(decimal.NewFromInt(100))
	p.Deal([cards.NumSuits]int{1, 1, 1, 1})
	ctx := context.Background()

	require.True(t, p.PlaceOrder(ctx, cards.Clubs, 5, cards.Sell))
	p.EndRound(decimal.NewFromInt(60))

	assert.True(t, p.Balance().Equal(decimal.NewFromInt(160)))
	assert.Empty(t, p.RestingOrders())
	assert.False(t, p.PlaceOrder(ctx, cards.Clubs, 5, cards.Sell), "round is over")
}
