package domain

import (
	"fmt"
	"strings"

	"github.com/dorive/FiggieMachine/pkg/cards"
)

// BookLevel is the best resting interest on both sides of one suit's market.
// Sides with no interest carry the cards.NoBid / cards.NoAsk sentinels; the
// taking-order comparisons rely on those exact values.
type BookLevel struct {
	Bid int
	Ask int
}

// BookSnapshot is the per-suit best bid/ask view rebuilt from scratch on
// every update event.
type BookSnapshot [cards.NumSuits]BookLevel

// EmptyBook returns a snapshot with both sides of every suit empty.
func EmptyBook() BookSnapshot {
	var b BookSnapshot
	for s := range b {
		b[s] = BookLevel{Bid: cards.NoBid, Ask: cards.NoAsk}
	}
	return b
}

// TightenAsk lowers the suit's best ask if the given price improves it.
func (b *BookSnapshot) TightenAsk(suit cards.Suit, price int) {
	if price < b[suit].Ask {
		b[suit].Ask = price
	}
}

// TightenBid raises the suit's best bid if the given price improves it.
func (b *BookSnapshot) TightenBid(suit cards.Suit, price int) {
	if price > b[suit].Bid {
		b[suit].Bid = price
	}
}

func (b BookSnapshot) String() string {
	var sb strings.Builder
	for i, s := range cards.Suits {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s[%d|%d]", s, b[s].Bid, b[s].Ask)
	}
	return sb.String()
}
