package engine

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/internal/execution"
	"github.com/dorive/FiggieMachine/internal/storage"
	"github.com/dorive/FiggieMachine/internal/strategy"
	"github.com/dorive/FiggieMachine/internal/tracker"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// Controller is the single-threaded session core. Stream workers push
// events into the inbox; the controller mutates the tracker, journals
// each event, and triggers strategy passes. Between a round's dealing
// event and its end it is "dealt"; updates outside that window carry no
// playable state and are dropped.
type Controller struct {
	inbox   chan event.Event
	tracker *tracker.Tracker
	strat   *strategy.Orchestrator
	venue   execution.Venue
	journal *storage.EventJournal
	runner  *Runner

	dealt   bool
	lastSeq uint64
}

// NewController wires the session core. journal may be nil to run
// without persistence.
func NewController(inboxSize int, tr *tracker.Tracker, strat *strategy.Orchestrator,
	venue execution.Venue, journal *storage.EventJournal) *Controller {
	c := &Controller{
		inbox:   make(chan event.Event, inboxSize),
		tracker: tr,
		strat:   strat,
		venue:   venue,
		journal: journal,
	}
	c.runner = NewRunner(strat.Run)
	return c
}

// Inbox returns the event channel. Stream workers send events here.
func (c *Controller) Inbox() chan<- event.Event {
	return c.inbox
}

// Run starts the strategy runner and the event loop. This MUST be run in
// a single goroutine.
func (c *Controller) Run(ctx context.Context) {
	slog.Info("Session controller started")

	go c.runner.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session controller stopping")
			return
		case ev := <-c.inbox:
			c.processEvent(ctx, ev)
		}
	}
}

func (c *Controller) processEvent(ctx context.Context, ev event.Event) {
	c.checkSeq(ev.GetSeq())

	// The journal is an audit trail, not the source of truth. Losing an
	// entry must never stall the session.
	if c.journal != nil {
		if err := c.journal.Append(ctx, ev); err != nil {
			slog.Error("Journal append failed", "seq", ev.GetSeq(), "error", err)
		}
	}

	c.dispatch(ctx, ev)
}

// ReplayEvent dispatches a journaled event through the same paths as the
// live loop, without re-journaling. Used exclusively by the replayer.
func (c *Controller) ReplayEvent(ctx context.Context, ev event.Event) {
	c.checkSeq(ev.GetSeq())
	c.dispatch(ctx, ev)
}

func (c *Controller) checkSeq(seq uint64) {
	if seq <= c.lastSeq {
		slog.Warn("Out-of-order event", "seq", seq, "last", c.lastSeq)
	}
	c.lastSeq = seq
}

func (c *Controller) dispatch(ctx context.Context, ev event.Event) {
	switch e := ev.(type) {
	case *event.DealtEvent:
		c.handleDealt(e)
	case *event.UpdateEvent:
		c.handleUpdate(ctx, e)
	case *event.EndRoundEvent:
		c.handleEndRound(e)
	case *event.EndGameEvent:
		c.handleEndGame(e)
	default:
		slog.Warn("Unknown event kind", "kind", ev.GetKind())
	}
}

// roundVenue is implemented by the paper venue so a replayed stream
// keeps its simulated round state in step with the events.
type roundVenue interface {
	Deal(hand [cards.NumSuits]int)
	EndRound(potShare decimal.Decimal)
}

func (c *Controller) handleDealt(e *event.DealtEvent) {
	slog.Info("Cards were dealt", "hand", e.Counts)
	if rv, ok := c.venue.(roundVenue); ok {
		rv.Deal(e.Counts)
	}
	c.tracker.SetStartingHand(e.Counts)
	c.dealt = true
	c.runner.Trigger()
}

func (c *Controller) handleUpdate(ctx context.Context, e *event.UpdateEvent) {
	if !c.dealt {
		slog.Debug("Update outside a round, dropping", "seq", e.Seq)
		return
	}

	// The venue's inventory answer beats anything inferred from trades.
	if inv, ok := c.venue.Inventory(ctx); ok {
		for _, s := range cards.Suits {
			c.tracker.SetSuitCount(s, inv[s])
		}
	}

	if c.tracker.ApplyUpdate(e) {
		// A print means the venue already cancelled resting orders.
		c.strat.Reset()
	}
	c.runner.Trigger()
}

func (c *Controller) handleEndRound(e *event.EndRoundEvent) {
	slog.Info("Round ended", "deck", e.CardCount, "goal_suit", e.GoalSuit)
	for _, inv := range e.PlayerInventories {
		slog.Info("Final inventory", "inventory", inv)
	}
	for _, p := range e.PlayerPoints {
		slog.Info("Round points", "player", p.Name, "points", p.Points)
	}
	if rv, ok := c.venue.(roundVenue); ok {
		rv.EndRound(c.selfPoints(e.PlayerPoints))
	}

	c.tracker.ResetRound()
	c.strat.Reset()
	c.dealt = false
}

func (c *Controller) handleEndGame(e *event.EndGameEvent) {
	slog.Info("Game ended")
	for _, p := range e.PlayerPoints {
		slog.Info("Game points", "player", p.Name, "points", p.Points)
	}
	for _, p := range topTwo(e.PlayerPoints) {
		slog.Info("Winner", "player", p.Name, "points", p.Points)
	}
	if rv, ok := c.venue.(roundVenue); ok {
		rv.EndRound(decimal.Zero)
	}

	c.tracker.ResetGame()
	c.strat.Reset()
	c.dealt = false
}

func (c *Controller) selfPoints(points []event.PlayerPoints) decimal.Decimal {
	for _, p := range points {
		if p.Name == c.tracker.SelfName() {
			return decimal.NewFromInt(int64(p.Points))
		}
	}
	return decimal.Zero
}

func topTwo(points []event.PlayerPoints) []event.PlayerPoints {
	sorted := make([]event.PlayerPoints, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	if len(sorted) > 2 {
		sorted = sorted[:2]
	}
	return sorted
}
