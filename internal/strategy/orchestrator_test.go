package strategy

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/internal/execution"
	"github.com/dorive/FiggieMachine/internal/pricing"
	"github.com/dorive/FiggieMachine/internal/tables"
	"github.com/dorive/FiggieMachine/internal/tracker"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

var (
	testDist    = tables.GenerateDist()
	testPremium = tables.GeneratePremium()
)

func newTestOrchestrator(venue execution.Venue) (*Orchestrator, *tracker.Tracker) {
	tr := tracker.New()
	est := pricing.NewEstimator(testDist)
	val := pricing.NewValuator(pricing.NewPremiumCalc(testPremium), est)
	return New(tr, est, val, venue), tr
}

func key(d cards.Direction, s cards.Suit) domain.OrderKey {
	return domain.OrderKey{Direction: d, Suit: s}
}

func TestQuoteRestingPostsAndTracks(t *testing.T) {
	mock := execution.NewMockVenue()
	o, _ := newTestOrchestrator(mock)

	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 20},
		{Direction: cards.Buy, Suit: cards.Hearts, Price: 5},
	})

	require.Len(t, mock.Placed, 2)
	assert.Equal(t, 20, o.working[key(cards.Sell, cards.Spades)])
	assert.Equal(t, 5, o.working[key(cards.Buy, cards.Hearts)])
}

func TestQuoteRestingGuards(t *testing.T) {
	mock := execution.NewMockVenue()
	o, _ := newTestOrchestrator(mock)

	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 3},   // cheap sell
		{Direction: cards.Buy, Suit: cards.Clubs, Price: 0},     // non-positive
		{Direction: cards.Sell, Suit: cards.Hearts, Price: 100}, // over band
		{Direction: cards.Buy, Suit: cards.Diamonds, Price: 1},
	})

	require.Len(t, mock.Placed, 1)
	assert.Equal(t, cards.Diamonds, mock.Placed[0].Suit)
	assert.Len(t, o.working, 1)
}

func TestQuoteRestingGuardedCandidateIsNotCancelled(t *testing.T) {
	mock := execution.NewMockVenue()
	o, _ := newTestOrchestrator(mock)
	o.working[key(cards.Sell, cards.Spades)] = 10

	// The spades sell is still a candidate even though its new price
	// fails the guard, so the old resting order stays put.
	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 2},
	})

	assert.Empty(t, mock.Cancelled)
	assert.Equal(t, 10, o.working[key(cards.Sell, cards.Spades)])
}

func TestQuoteRestingCancelsStaleOrders(t *testing.T) {
	mock := execution.NewMockVenue()
	o, _ := newTestOrchestrator(mock)
	o.working[key(cards.Sell, cards.Clubs)] = 10
	o.working[key(cards.Buy, cards.Hearts)] = 5

	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 20},
	})

	assert.ElementsMatch(t, []domain.OrderKey{
		key(cards.Sell, cards.Clubs),
		key(cards.Buy, cards.Hearts),
	}, mock.Cancelled)
	assert.Equal(t, map[domain.OrderKey]int{
		key(cards.Sell, cards.Spades): 20,
	}, o.working)
}

func TestQuoteRestingSkipsRepostAtSamePrice(t *testing.T) {
	mock := execution.NewMockVenue()
	o, _ := newTestOrchestrator(mock)
	o.working[key(cards.Sell, cards.Spades)] = 20

	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 20},
	})
	assert.Empty(t, mock.Placed)

	// A moved price reposts and replaces.
	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 25},
	})
	require.Len(t, mock.Placed, 1)
	assert.Equal(t, 25, o.working[key(cards.Sell, cards.Spades)])
}

func TestQuoteRestingFailuresLeaveWorkingSetUnchanged(t *testing.T) {
	mock := execution.NewMockVenue()
	mock.FailPlace = true
	mock.FailCancel = true
	o, _ := newTestOrchestrator(mock)
	o.working[key(cards.Buy, cards.Hearts)] = 5

	o.quoteResting(context.Background(), slog.Default(), []domain.OrderIntent{
		{Direction: cards.Sell, Suit: cards.Spades, Price: 20},
	})

	// Neither the failed post nor the failed cancel moved the set; the
	// next pass retries both.
	assert.Equal(t, map[domain.OrderKey]int{
		key(cards.Buy, cards.Hearts): 5,
	}, o.working)
}

func TestResetForgetsWorkingSet(t *testing.T) {
	o, _ := newTestOrchestrator(execution.NewMockVenue())
	o.working[key(cards.Buy, cards.Hearts)] = 5

	o.Reset()
	assert.Empty(t, o.working)
}

func TestRunPostsRestingQuotesOnFreshDeal(t *testing.T) {
	mock := execution.NewMockVenue()
	o, tr := newTestOrchestrator(mock)
	tr.SetSelf("Me")
	tr.SetStartingHand([4]int{3, 3, 3, 4})

	o.Run(context.Background())

	require.NotEmpty(t, mock.Placed)
	assert.LessOrEqual(t, len(mock.Placed), 4)
	assert.Empty(t, mock.Cancelled)
	for _, p := range mock.Placed {
		assert.Greater(t, p.Price, 0)
		assert.Less(t, p.Price, 100)
	}
}

func TestRunTakesRichBid(t *testing.T) {
	mock := execution.NewMockVenue()
	o, tr := newTestOrchestrator(mock)
	tr.SetSelf("Me")
	tr.SetStartingHand([4]int{3, 3, 3, 4})

	ev := &event.UpdateEvent{}
	ev.Books[cards.Spades].Bids = []event.Level{{Price: 99, Player: "P2"}}
	tr.ApplyUpdate(ev)

	o.Run(context.Background())

	// A 99 bid is far through any sensible ask, so the pass sells into
	// it and posts nothing else.
	require.Len(t, mock.Placed, 1)
	assert.Equal(t, cards.Spades, mock.Placed[0].Suit)
	assert.Equal(t, cards.Sell, mock.Placed[0].Direction)
	assert.Equal(t, 99, mock.Placed[0].Price)
}

func TestRunAbortsWhenEstimationFails(t *testing.T) {
	mock := execution.NewMockVenue()
	o, tr := newTestOrchestrator(mock)
	tr.SetSelf("Me")
	tr.SetStartingHand([4]int{12, 11, 0, 0}) // outside table support

	o.Run(context.Background())

	assert.Empty(t, mock.Placed)
	assert.Empty(t, mock.Cancelled)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	mock := execution.NewMockVenue()
	o, tr := newTestOrchestrator(mock)
	tr.SetSelf("Me")
	tr.SetStartingHand([4]int{3, 3, 3, 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o.Run(ctx)

	assert.Empty(t, mock.Placed, "a superseded pass must not reach the venue")
}
