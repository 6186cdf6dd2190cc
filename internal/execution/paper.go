package execution

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dorive/FiggieMachine/internal/accounting"
	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// PaperVenue simulates the venue in-process. It honors the same rejection
// rules as the real venue (no active game, price band, overdraw, selling
// unheld cards) so a strategy exercised against it sees realistic
// failures. Fills are driven externally through Fill.
type PaperVenue struct {
	mu        sync.Mutex
	ledger    *accounting.Ledger
	inventory [cards.NumSuits]int
	resting   map[domain.OrderKey]int
	active    bool
}

// NewPaperVenue creates a paper venue with a starting cash balance.
func NewPaperVenue(initialFunds decimal.Decimal) *PaperVenue {
	return &PaperVenue{
		ledger:  accounting.NewLedger(initialFunds),
		resting: make(map[domain.OrderKey]int),
	}
}

// Deal starts a round with the given hand. Resting orders are wiped.
func (p *PaperVenue) Deal(hand [cards.NumSuits]int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory = hand
	p.resting = make(map[domain.OrderKey]int)
	p.active = true
	slog.Info("Paper venue dealt", "hand", hand)
}

// EndRound closes the round and credits the pot share won, if any.
func (p *PaperVenue) EndRound(potShare decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
	p.resting = make(map[domain.OrderKey]int)
	if potShare.IsPositive() {
		p.ledger.Credit(potShare, "pot share")
	}
	slog.Info("Paper venue round ended", "balance", p.ledger.Balance())
}

// PlaceOrder posts a resting order, replacing any previous order on the
// same side of the same suit.
func (p *PaperVenue) PlaceOrder(ctx context.Context, suit cards.Suit, price int, direction cards.Direction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		slog.Warn("Paper venue has no active game")
		return false
	}
	if price < minOrderPrice || price > maxOrderPrice {
		slog.Error("Paper venue rejected price", "price", price)
		return false
	}
	if direction == cards.Sell && p.inventory[suit] < 1 {
		slog.Error("Paper venue rejected sell without inventory", "suit", suit)
		return false
	}
	if direction == cards.Buy && p.ledger.Balance().LessThan(decimal.NewFromInt(int64(price))) {
		slog.Error("Paper venue rejected buy over balance",
			"price", price, "balance", p.ledger.Balance())
		return false
	}

	p.resting[domain.OrderKey{Direction: direction, Suit: suit}] = price
	slog.Info("Paper order placed", "suit", suit, "price", price, "direction", direction)
	return true
}

// CancelOrder removes the resting order on one side of a suit. Cancelling
// a side with nothing resting still succeeds, matching the venue.
func (p *PaperVenue) CancelOrder(ctx context.Context, suit cards.Suit, direction cards.Direction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		slog.Warn("Paper venue has no active game")
		return false
	}
	delete(p.resting, domain.OrderKey{Direction: direction, Suit: suit})
	slog.Info("Paper order cancelled", "suit", suit, "direction", direction)
	return true
}

// Inventory returns the simulated per-suit holdings.
func (p *PaperVenue) Inventory(ctx context.Context) ([cards.NumSuits]int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		slog.Warn("Paper venue has no active game")
		return [cards.NumSuits]int{}, false
	}
	return p.inventory, true
}

// Fill executes the resting order on one side of a suit at its quoted
// price, settling cash and cards. It reports whether an order was there
// to fill.
func (p *PaperVenue) Fill(suit cards.Suit, direction cards.Direction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := domain.OrderKey{Direction: direction, Suit: suit}
	price, ok := p.resting[key]
	if !ok {
		return false
	}
	delete(p.resting, key)

	amount := decimal.NewFromInt(int64(price))
	if direction == cards.Buy {
		if err := p.ledger.Debit(amount, "buy "+suit.Wire()); err != nil {
			slog.Error("Paper fill overdraw", "suit", suit, "price", price)
			return false
		}
		p.inventory[suit]++
	} else {
		if p.inventory[suit] < 1 {
			slog.Error("Paper fill without inventory", "suit", suit)
			return false
		}
		p.inventory[suit]--
		p.ledger.Credit(amount, "sell "+suit.Wire())
	}

	slog.Info("Paper order filled", "suit", suit, "price", price, "direction", direction)
	return true
}

// Balance returns the simulated cash balance.
func (p *PaperVenue) Balance() decimal.Decimal {
	return p.ledger.Balance()
}

// RestingOrders returns a copy of the current resting orders.
func (p *PaperVenue) RestingOrders() map[domain.OrderKey]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[domain.OrderKey]int, len(p.resting))
	for k, v := range p.resting {
		out[k] = v
	}
	return out
}
