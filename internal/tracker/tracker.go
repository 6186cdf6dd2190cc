// Package tracker maintains the per-player card counts and the order-book
// snapshot derived from the event stream. It is the single mutable state
// the pricing layer reads.
package tracker

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// Tracker holds player identities, card counts, and the latest book
// snapshot. Mutations happen only on the session controller goroutine;
// the lock exists for the strategy runner's concurrent reads.
type Tracker struct {
	mu     sync.RWMutex
	names  [domain.NumPlayers]string // slot -> identity, "" = unassigned
	known  int                       // assigned slots, self included
	counts domain.CountMatrix
	book   domain.BookSnapshot
}

// New returns an empty tracker. The agent's own slot counts as known even
// before its identity is set.
func New() *Tracker {
	return &Tracker{
		known: 1,
		book:  domain.EmptyBook(),
	}
}

// SetSelf assigns the agent's own identity to slot 0.
func (t *Tracker) SetSelf(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.names[domain.SelfSlot] = name
}

// SelfName returns the agent's identity, empty if not yet assigned.
func (t *Tracker) SelfName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.names[domain.SelfSlot]
}

// RegisterPlayer assigns an identity to the first unassigned opponent
// slot. Already-known identities and full slot tables are no-ops.
func (t *Tracker) RegisterPlayer(identity string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.registerLocked(identity)
}

func (t *Tracker) registerLocked(identity string) {
	if identity == "" {
		return
	}
	for _, n := range t.names {
		if n == identity {
			return
		}
	}
	for slot := 1; slot < domain.NumPlayers; slot++ {
		if t.names[slot] == "" {
			t.names[slot] = identity
			t.known++
			slog.Info("Player registered", "player", identity, "slot", slot)
			return
		}
	}
}

func (t *Tracker) slotOfLocked(identity string) (int, bool) {
	for slot, n := range t.names {
		if n != "" && n == identity {
			return slot, true
		}
	}
	return 0, false
}

// KnownPlayers returns how many identities are assigned, self included.
func (t *Tracker) KnownPlayers() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.known
}

// SetStartingHand adds the dealt counts to the agent's slot. If the agent
// identity was never assigned the whole inventory is reset first: dealt
// cards arriving in that state mean the previous game's state is stale.
func (t *Tracker) SetStartingHand(counts [cards.NumSuits]int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.names[domain.SelfSlot] == "" {
		slog.Error("Starting hand with no self identity, resetting inventory")
		t.counts = domain.CountMatrix{}
	}
	for s := 0; s < cards.NumSuits; s++ {
		t.counts[domain.SelfSlot][s] += counts[s]
	}
	slog.Info("Starting hand applied", "hand", t.counts[domain.SelfSlot])
}

// SetSuitCount overwrites the agent's own count for one suit. Used to
// reconcile with the venue's inventory query, which is ground truth.
func (t *Tracker) SetSuitCount(suit cards.Suit, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[domain.SelfSlot][suit] = n
}

// SuitCount returns the agent's own count for one suit.
func (t *Tracker) SuitCount(suit cards.Suit) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[domain.SelfSlot][suit]
}

// AddCard adds qty (possibly negative) to a slot's suit count, clamped at
// zero.
func (t *Tracker) AddCard(slot int, suit cards.Suit, qty int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addCardLocked(slot, suit, qty)
}

func (t *Tracker) addCardLocked(slot int, suit cards.Suit, qty int) {
	t.counts[slot][suit] += qty
	if t.counts[slot][suit] < 0 {
		t.counts[slot][suit] = 0
	}
	slog.Info("Inventory changed", "player", t.names[slot], "counts", t.counts[slot])
}

// AddCardToSellingPlayer infers a previously unseen holding from a resting
// sell order: a non-self player quoting an ask of a suit we believed they
// had none of must hold at least one card of it.
func (t *Tracker) AddCardToSellingPlayer(slot int, suit cards.Suit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addSellingLocked(slot, suit)
}

func (t *Tracker) addSellingLocked(slot int, suit cards.Suit) {
	if slot == domain.SelfSlot || t.counts[slot][suit] != 0 {
		return
	}
	t.counts[slot][suit] = 1
	slog.Info("Inferred holding from resting ask",
		"player", t.names[slot], "suit", suit, "counts", t.counts[slot])
}

// NCardsPerSuit returns the total visible count per suit across players.
func (t *Tracker) NCardsPerSuit() [cards.NumSuits]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts.SuitTotals()
}

// MyInventory returns the agent's per-suit counts.
func (t *Tracker) MyInventory() [cards.NumSuits]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[domain.SelfSlot]
}

// Matrix returns a copy of the full players-by-suits count table.
func (t *Tracker) Matrix() domain.CountMatrix {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts
}

// Book returns a copy of the current order-book snapshot.
func (t *Tracker) Book() domain.BookSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.book
}

// ApplyUpdate rebuilds the book snapshot from an update event, applies its
// trade record if present, and registers any newly seen identities.
// It reports whether a trade occurred.
func (t *Tracker) ApplyUpdate(ev *event.UpdateEvent) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.book = domain.EmptyBook()
	isTrade := false

	if ev.Trade != "" {
		if rec, ok := parseTrade(ev.Trade); ok {
			t.applyTradeLocked(rec)
			isTrade = true
		} else {
			slog.Warn("Dropping malformed trade record", "trade", ev.Trade)
		}
	}

	for _, s := range cards.Suits {
		for _, ask := range ev.Books[s].Asks {
			t.registerLocked(ask.Player)
			if slot, ok := t.slotOfLocked(ask.Player); ok {
				t.addSellingLocked(slot, s)
			}
			t.book.TightenAsk(s, ask.Price)
		}
		for _, bid := range ev.Books[s].Bids {
			t.registerLocked(bid.Player)
			t.book.TightenBid(s, bid.Price)
		}
	}

	slog.Info("Orderbook rebuilt", "book", t.book.String())
	return isTrade
}

func (t *Tracker) applyTradeLocked(rec domain.TradeRecord) {
	t.registerLocked(rec.Buyer)
	t.registerLocked(rec.Seller)

	self := t.names[domain.SelfSlot]
	if rec.Buyer != self {
		if slot, ok := t.slotOfLocked(rec.Buyer); ok {
			t.addCardLocked(slot, rec.Suit, 1)
		}
	}
	if rec.Seller != self {
		if slot, ok := t.slotOfLocked(rec.Seller); ok {
			t.addCardLocked(slot, rec.Suit, -1)
		}
	}
	slog.Info("Trade observed",
		"buyer", rec.Buyer, "seller", rec.Seller,
		"suit", rec.Suit, "price", rec.Price)
}

// parseTrade parses the venue's "suit,price,buyer,seller" record. The suit
// arrives in singular wire form.
func parseTrade(s string) (domain.TradeRecord, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.TradeRecord{}, false
	}
	suit, err := cards.ParseSuit(parts[0])
	if err != nil {
		return domain.TradeRecord{}, false
	}
	price, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.TradeRecord{}, false
	}
	return domain.TradeRecord{
		Suit:   suit,
		Price:  price,
		Buyer:  parts[2],
		Seller: parts[3],
	}, true
}

// ResetRound clears counts and book for a new round. Identities persist.
func (t *Tracker) ResetRound() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = domain.CountMatrix{}
	t.book = domain.EmptyBook()
	slog.Info("Inventory reset for a new round")
}

// ResetGame clears everything including identity slots.
func (t *Tracker) ResetGame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = domain.CountMatrix{}
	t.book = domain.EmptyBook()
	t.names = [domain.NumPlayers]string{}
	t.known = 1
	slog.Info("Inventory reset for a new game")
}
