// Package accounting tracks the agent's virtual funds with exact decimal
// arithmetic. The paper venue and end-of-round settlement write to it.
package accounting

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned by Debit when the balance would go
// negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Entry is one posted movement, with the balance after it was applied.
type Entry struct {
	Ts      time.Time
	Delta   decimal.Decimal
	Reason  string
	Balance decimal.Decimal
}

// Ledger is an append-only balance book. Thread-safe.
type Ledger struct {
	mu      sync.Mutex
	balance decimal.Decimal
	entries []Entry
}

// NewLedger creates a ledger with a starting balance.
func NewLedger(initial decimal.Decimal) *Ledger {
	return &Ledger{balance: initial}
}

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Credit adds amount to the balance.
func (l *Ledger) Credit(amount decimal.Decimal, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.postLocked(amount, reason)
}

// Debit subtracts amount from the balance. The balance never goes
// negative: a debit that would overdraw is rejected whole.
func (l *Ledger) Debit(amount decimal.Decimal, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	l.postLocked(amount.Neg(), reason)
	return nil
}

func (l *Ledger) postLocked(delta decimal.Decimal, reason string) {
	l.balance = l.balance.Add(delta)
	l.entries = append(l.entries, Entry{
		Ts:      time.Now(),
		Delta:   delta,
		Reason:  reason,
		Balance: l.balance,
	})
}

// History returns a copy of all posted entries in order.
func (l *Ledger) History() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
