package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

func TestEmptyBookSentinels(t *testing.T) {
	book := domain.EmptyBook()
	for _, s := range cards.Suits {
		assert.Equal(t, cards.NoBid, book[s].Bid)
		assert.Equal(t, cards.NoAsk, book[s].Ask)
	}
}

func TestBookTightening(t *testing.T) {
	book := domain.EmptyBook()

	book.TightenAsk(cards.Spades, 20)
	book.TightenAsk(cards.Spades, 25) // worse, ignored
	book.TightenAsk(cards.Spades, 15)
	assert.Equal(t, 15, book[cards.Spades].Ask)

	book.TightenBid(cards.Spades, 5)
	book.TightenBid(cards.Spades, 3) // worse, ignored
	book.TightenBid(cards.Spades, 9)
	assert.Equal(t, 9, book[cards.Spades].Bid)

	// Other suits stay empty.
	assert.Equal(t, cards.NoBid, book[cards.Hearts].Bid)
	assert.Equal(t, cards.NoAsk, book[cards.Hearts].Ask)
}

func TestCountMatrixTotals(t *testing.T) {
	var m domain.CountMatrix
	m[domain.SelfSlot] = [cards.NumSuits]int{3, 3, 3, 4}
	m[1] = [cards.NumSuits]int{1, 0, 2, 0}

	assert.Equal(t, [cards.NumSuits]int{4, 3, 5, 4}, m.SuitTotals())
	assert.Equal(t, 16, m.SeenCards())
	assert.Equal(t, [domain.NumPlayers]int{3, 1, 0, 0}, m.Column(cards.Spades))
}

func TestCountMatrixGiveTake(t *testing.T) {
	var m domain.CountMatrix
	m[domain.SelfSlot] = [cards.NumSuits]int{3, 3, 3, 4}
	m[2] = [cards.NumSuits]int{0, 1, 0, 0}

	given := m.GiveCard(2, cards.Clubs)
	assert.Equal(t, 2, given[domain.SelfSlot][cards.Clubs])
	assert.Equal(t, 2, given[2][cards.Clubs])
	assert.Equal(t, 3, m[domain.SelfSlot][cards.Clubs], "receiver of a copy, original untouched")

	taken := m.TakeCard(2, cards.Clubs)
	assert.Equal(t, 4, taken[domain.SelfSlot][cards.Clubs])
	assert.Equal(t, 0, taken[2][cards.Clubs])

	// Taking from a player with no observed holding never goes negative.
	taken = m.TakeCard(3, cards.Hearts)
	assert.Equal(t, 4, taken[domain.SelfSlot][cards.Hearts])
	assert.Equal(t, 0, taken[3][cards.Hearts])
}

func TestOrderKeyString(t *testing.T) {
	k := domain.OrderKey{Direction: cards.Sell, Suit: cards.Diamonds}
	assert.Equal(t, "sell,diamonds", k.String())
}
