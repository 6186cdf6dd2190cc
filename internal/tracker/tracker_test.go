package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/internal/tracker"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

func newDealtTracker() *tracker.Tracker {
	tr := tracker.New()
	tr.SetSelf("Me")
	tr.SetStartingHand([4]int{3, 3, 3, 4})
	return tr
}

func TestStartingHandAndTotals(t *testing.T) {
	tr := newDealtTracker()

	assert.Equal(t, [4]int{3, 3, 3, 4}, tr.MyInventory())
	assert.Equal(t, [4]int{3, 3, 3, 4}, tr.NCardsPerSuit())
	assert.Equal(t, 1, tr.KnownPlayers())
}

func TestStartingHandWithoutSelfResets(t *testing.T) {
	tr := tracker.New()
	tr.AddCard(1, cards.Spades, 5) // stale state from a previous game

	tr.SetStartingHand([4]int{2, 2, 3, 3})

	assert.Equal(t, [4]int{2, 2, 3, 3}, tr.MyInventory())
	assert.Equal(t, [4]int{2, 2, 3, 3}, tr.NCardsPerSuit(), "stale counts must be wiped")
}

func TestRegisterPlayerIdempotent(t *testing.T) {
	tr := tracker.New()
	tr.SetSelf("Me")

	tr.RegisterPlayer("Alice")
	tr.AddCard(1, cards.Hearts, 2)
	tr.RegisterPlayer("Alice")

	assert.Equal(t, 2, tr.KnownPlayers())
	assert.Equal(t, 2, tr.Matrix()[1][cards.Hearts], "re-registration must not touch counts")

	tr.RegisterPlayer("Bob")
	tr.RegisterPlayer("Carol")
	tr.RegisterPlayer("Dave") // all slots filled, no-op
	assert.Equal(t, 4, tr.KnownPlayers())
}

func TestAddCardClampsAtZero(t *testing.T) {
	tr := tracker.New()
	tr.SetSelf("Me")
	tr.RegisterPlayer("Alice")

	tr.AddCard(1, cards.Clubs, -3)
	assert.Equal(t, 0, tr.Matrix()[1][cards.Clubs])
}

func TestAddCardToSellingPlayer(t *testing.T) {
	tr := tracker.New()
	tr.SetSelf("Me")
	tr.RegisterPlayer("Alice")

	tr.AddCardToSellingPlayer(1, cards.Spades)
	assert.Equal(t, 1, tr.Matrix()[1][cards.Spades])

	// Only infers from zero: a known holding stays untouched.
	tr.AddCardToSellingPlayer(1, cards.Spades)
	assert.Equal(t, 1, tr.Matrix()[1][cards.Spades])

	// Never applies to the agent itself.
	tr.AddCardToSellingPlayer(domain.SelfSlot, cards.Hearts)
	assert.Equal(t, 0, tr.MyInventory()[cards.Hearts])
}

func TestApplyUpdateRegistersSellerAndTightensBook(t *testing.T) {
	tr := newDealtTracker()

	ev := &event.UpdateEvent{}
	ev.Books[cards.Spades].Asks = []event.Level{{Price: 40, Player: "P2"}}

	isTrade := tr.ApplyUpdate(ev)
	assert.False(t, isTrade)

	assert.Equal(t, 2, tr.KnownPlayers(), "seller must be registered")
	assert.Equal(t, 1, tr.Matrix()[1][cards.Spades], "unseen seller holding inferred")
	assert.Equal(t, 40, tr.Book()[cards.Spades].Ask)
	assert.Equal(t, cards.NoBid, tr.Book()[cards.Spades].Bid)
}

func TestApplyUpdateTightensToBestPrices(t *testing.T) {
	tr := newDealtTracker()

	ev := &event.UpdateEvent{}
	ev.Books[cards.Hearts].Asks = []event.Level{
		{Price: 22, Player: "P2"},
		{Price: 17, Player: "P3"},
	}
	ev.Books[cards.Hearts].Bids = []event.Level{
		{Price: 5, Player: "P2"},
		{Price: 9, Player: "P4"},
	}

	tr.ApplyUpdate(ev)
	assert.Equal(t, 17, tr.Book()[cards.Hearts].Ask)
	assert.Equal(t, 9, tr.Book()[cards.Hearts].Bid)
	assert.Equal(t, 4, tr.KnownPlayers())
}

func TestApplyUpdateTrade(t *testing.T) {
	tr := newDealtTracker()
	tr.RegisterPlayer("Alice")
	tr.RegisterPlayer("Bob")
	tr.AddCard(2, cards.Clubs, 2) // Bob holds two clubs

	ev := &event.UpdateEvent{Trade: "club,55,Alice,Bob"}
	isTrade := tr.ApplyUpdate(ev)

	require.True(t, isTrade)
	assert.Equal(t, 1, tr.Matrix()[1][cards.Clubs], "buyer gains a club")
	assert.Equal(t, 1, tr.Matrix()[2][cards.Clubs], "seller loses a club")
}

func TestApplyUpdateTradeFloorsSellerAtZero(t *testing.T) {
	tr := newDealtTracker()

	ev := &event.UpdateEvent{Trade: "club,55,Alice,Bob"}
	require.True(t, tr.ApplyUpdate(ev))

	assert.Equal(t, 1, tr.Matrix()[1][cards.Clubs])
	assert.Equal(t, 0, tr.Matrix()[2][cards.Clubs], "unseen seller floors at zero")
}

func TestApplyUpdateSelfTradeLeavesOwnCountsAlone(t *testing.T) {
	tr := newDealtTracker()

	ev := &event.UpdateEvent{Trade: "spade,12,Me,Alice"}
	require.True(t, tr.ApplyUpdate(ev))

	// Own counts come from the venue inventory query, not trade records.
	assert.Equal(t, 3, tr.MyInventory()[cards.Spades])
}

func TestApplyUpdateMalformedTradeDropped(t *testing.T) {
	tr := newDealtTracker()

	ev := &event.UpdateEvent{Trade: "club,notaprice,Alice,Bob"}
	assert.False(t, tr.ApplyUpdate(ev))
	assert.Equal(t, 1, tr.KnownPlayers())
}

func TestResetRoundKeepsIdentities(t *testing.T) {
	tr := newDealtTracker()
	tr.RegisterPlayer("Alice")
	tr.AddCard(1, cards.Diamonds, 2)

	tr.ResetRound()

	assert.Equal(t, [4]int{0, 0, 0, 0}, tr.NCardsPerSuit())
	assert.Equal(t, domain.EmptyBook(), tr.Book())
	assert.Equal(t, 2, tr.KnownPlayers(), "round reset keeps identities")
	assert.Equal(t, "Me", tr.SelfName())
}

func TestResetGameMatchesFreshTracker(t *testing.T) {
	tr := newDealtTracker()
	tr.RegisterPlayer("Alice")
	tr.RegisterPlayer("Bob")
	tr.ApplyUpdate(&event.UpdateEvent{Trade: "heart,10,Alice,Bob"})

	tr.ResetRound()
	tr.ResetGame()

	fresh := tracker.New()
	assert.Equal(t, fresh.Matrix(), tr.Matrix())
	assert.Equal(t, fresh.Book(), tr.Book())
	assert.Equal(t, fresh.KnownPlayers(), tr.KnownPlayers())
	assert.Equal(t, "", tr.SelfName())
}
