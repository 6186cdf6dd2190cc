package execution

import (
	"context"
	"sync"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// PlacedOrder records one PlaceOrder call made against a MockVenue.
type PlacedOrder struct {
	Suit      cards.Suit
	Price     int
	Direction cards.Direction
}

// MockVenue records calls and returns scripted outcomes. Used in tests.
type MockVenue struct {
	mu sync.Mutex

	FailPlace  bool
	FailCancel bool

	InventoryCounts [cards.NumSuits]int
	InventoryOK     bool

	Placed    []PlacedOrder
	Cancelled []domain.OrderKey
}

// NewMockVenue returns a mock whose calls all succeed and whose
// inventory query reports zero cards.
func NewMockVenue() *MockVenue {
	return &MockVenue{InventoryOK: true}
}

func (m *MockVenue) PlaceOrder(ctx context.Context, suit cards.Suit, price int, direction cards.Direction) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPlace {
		return false
	}
	m.Placed = append(m.Placed, PlacedOrder{Suit: suit, Price: price, Direction: direction})
	return true
}

func (m *MockVenue) CancelOrder(ctx context.Context, suit cards.Suit, direction cards.Direction) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCancel {
		return false
	}
	m.Cancelled = append(m.Cancelled, domain.OrderKey{Direction: direction, Suit: suit})
	return true
}

func (m *MockVenue) Inventory(ctx context.Context) ([cards.NumSuits]int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.InventoryCounts, m.InventoryOK
}
