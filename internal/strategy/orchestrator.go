// Package strategy runs the quoting pipeline: estimate the goal suit,
// value the portfolio, derive quotes, and reconcile the venue's resting
// orders with what the quotes say they should be.
package strategy

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/internal/execution"
	"github.com/dorive/FiggieMachine/internal/pricing"
	"github.com/dorive/FiggieMachine/internal/tracker"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// minRestingSell is the lowest price worth quoting on the sell side.
// Dumping cards for pocket change just leaks inventory.
const minRestingSell = 3

// Orchestrator owns the working set of resting orders and drives one
// pipeline pass per market update. Runs are serialized by the engine; the
// working set never sees two passes at once.
type Orchestrator struct {
	tracker *tracker.Tracker
	est     *pricing.Estimator
	val     *pricing.Valuator
	venue   execution.Venue

	// working maps each resting order side to the price it was posted
	// at. Entries change only after the venue confirmed the call. The
	// mutex covers Reset arriving from the session loop mid-pass.
	mu      sync.Mutex
	working map[domain.OrderKey]int
}

// New creates an orchestrator with an empty working set.
func New(tr *tracker.Tracker, est *pricing.Estimator, val *pricing.Valuator, venue execution.Venue) *Orchestrator {
	return &Orchestrator{
		tracker: tr,
		est:     est,
		val:     val,
		venue:   venue,
		working: make(map[domain.OrderKey]int),
	}
}

// Reset forgets the working set. Called whenever a trade prints or a
// round ends: the venue cancels resting orders itself on those, so our
// record of them is stale.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.working = make(map[domain.OrderKey]int)
	o.mu.Unlock()
	slog.Info("Working orders reset")
}

// Run executes one full pipeline pass against the current tracker state.
// The context covers all venue calls; a superseding update cancels it and
// the pass stops between calls.
func (o *Orchestrator) Run(ctx context.Context) {
	runID := uuid.NewString()[:8]
	log := slog.With("run", runID)

	all := o.tracker.Matrix()
	book := o.tracker.Book()
	own := all.Row(domain.SelfSlot)
	nSeen := all.SeenCards()

	probs, probs10, err := o.est.Estimate(all.SuitTotals())
	if err != nil {
		log.Error("Goal suit estimation failed, skipping pass",
			"counts", all.SuitTotals(), "error", err)
		return
	}
	log.Info("Goal suit probabilities", "probs", probs, "inventory", own)

	value := o.val.Evaluate(own, all, probs, probs10)
	log.Info("Portfolio value", "value", value, "book", book.String())

	neutral := o.val.NeutralQuotes(value, all, probs, probs10)
	adj := pricing.AdjustedQuotes(neutral, nSeen)
	log.Info("Quotes computed",
		"neutral", neutral.String(), "adjusted", adj.String())

	if ctx.Err() != nil {
		return
	}

	take, found := pricing.TakingOrder(book, neutral, adj)
	if found && (take.Direction == cards.Buy || own[take.Suit] > 0) {
		log.Info("Taking resting interest", "order", take.String())
		o.venue.PlaceOrder(ctx, take.Suit, take.Price, take.Direction)
		return
	}

	o.quoteResting(ctx, log, pricing.LimitingOrders(neutral, adj))
}

// quoteResting posts the candidate resting orders and cancels working
// orders no longer wanted. The working set only moves on confirmed venue
// calls, so a failed post retries naturally on the next pass.
func (o *Orchestrator) quoteResting(ctx context.Context, log *slog.Logger, intents []domain.OrderIntent) {
	wanted := make(map[domain.OrderKey]bool, len(intents))

	for _, in := range intents {
		key := domain.OrderKey{Direction: in.Direction, Suit: in.Suit}
		wanted[key] = true

		if in.Price <= 0 || in.Price >= 100 {
			continue
		}
		if in.Direction == cards.Sell && in.Price <= minRestingSell {
			continue
		}
		if prev, ok := o.workingPrice(key); ok && prev == in.Price {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		log.Info("Posting resting order", "order", in.String())
		if o.venue.PlaceOrder(ctx, in.Suit, in.Price, in.Direction) {
			o.setWorking(key, in.Price)
		}
	}

	for _, key := range o.workingKeys() {
		if wanted[key] {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		log.Info("Cancelling resting order", "order", key.String())
		if o.venue.CancelOrder(ctx, key.Suit, key.Direction) {
			o.dropWorking(key)
		}
	}
}

func (o *Orchestrator) workingPrice(key domain.OrderKey) (int, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	price, ok := o.working[key]
	return price, ok
}

func (o *Orchestrator) setWorking(key domain.OrderKey, price int) {
	o.mu.Lock()
	o.working[key] = price
	o.mu.Unlock()
}

func (o *Orchestrator) dropWorking(key domain.OrderKey) {
	o.mu.Lock()
	delete(o.working, key)
	o.mu.Unlock()
}

func (o *Orchestrator) workingKeys() []domain.OrderKey {
	o.mu.Lock()
	defer o.mu.Unlock()
	keys := make([]domain.OrderKey, 0, len(o.working))
	for k := range o.working {
		keys = append(keys, k)
	}
	return keys
}
