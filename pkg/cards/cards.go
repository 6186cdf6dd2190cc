package cards

import "fmt"

// Suit identifies one of the four card suits. The numeric order
// (spades, clubs, hearts, diamonds) is fixed: every probability-table
// lookup and every per-suit vector in the engine is indexed by it.
type Suit int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds

	NumSuits = 4
)

// Suits lists all suits in the canonical index order.
var Suits = [NumSuits]Suit{Spades, Clubs, Hearts, Diamonds}

// DeckSize is the total number of cards in play (8+10+10+12).
const DeckSize = 40

func (s Suit) String() string {
	switch s {
	case Spades:
		return "spades"
	case Clubs:
		return "clubs"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	default:
		return fmt.Sprintf("suit(%d)", int(s))
	}
}

// Wire returns the singular form the venue REST API and trade records use.
func (s Suit) Wire() string {
	switch s {
	case Spades:
		return "spade"
	case Clubs:
		return "club"
	case Hearts:
		return "heart"
	case Diamonds:
		return "diamond"
	default:
		return fmt.Sprintf("suit(%d)", int(s))
	}
}

// ParseSuit accepts both the plural stream form and the singular wire form.
func ParseSuit(name string) (Suit, error) {
	switch name {
	case "spades", "spade":
		return Spades, nil
	case "clubs", "club":
		return Clubs, nil
	case "hearts", "heart":
		return Hearts, nil
	case "diamonds", "diamond":
		return Diamonds, nil
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// Direction is the side of an order.
type Direction int

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	if d == Sell {
		return "sell"
	}
	return "buy"
}

// ParseDirection parses the wire form ("buy" | "sell").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Order-book sentinels: an empty side of the book is represented by a bid
// no real bid can undercut and an ask no real ask can exceed. The exact
// values are part of the quote comparison contract and must not change.
const (
	NoBid = -999
	NoAsk = 999
)
