package event

import (
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// Kind defines the kind of stream event.
type Kind uint16

const (
	KindDealt Kind = iota + 1
	KindUpdate
	KindEndRound
	KindEndGame
)

func (k Kind) String() string {
	switch k {
	case KindDealt:
		return "dealing_cards"
	case KindUpdate:
		return "update"
	case KindEndRound:
		return "end_round"
	case KindEndGame:
		return "end_game"
	default:
		return "unknown"
	}
}

// Event is the interface for all session controller events.
type Event interface {
	GetSeq() uint64
	GetTs() int64
	GetKind() Kind
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	Seq uint64 `json:"seq"`
	Ts  int64  `json:"ts"` // Unix microseconds
}

func (e BaseEvent) GetSeq() uint64 { return e.Seq }
func (e BaseEvent) GetTs() int64   { return e.Ts }

// DealtEvent carries the agent's dealt hand, one count per suit in the
// fixed suit order.
type DealtEvent struct {
	BaseEvent
	Counts [cards.NumSuits]int `json:"counts"`
}

func (e DealtEvent) GetKind() Kind { return KindDealt }

// Level is one resting order: a price and the player quoting it.
type Level struct {
	Price  int    `json:"price"`
	Player string `json:"player"`
}

// SuitBook is the resting interest for one suit in an update event.
type SuitBook struct {
	Asks []Level `json:"asks"`
	Bids []Level `json:"bids"`
}

// UpdateEvent is a full order-book refresh plus an optional trade notice.
// Trade is the venue's comma-joined record "suit,price,buyer,seller";
// empty means no trade happened since the previous update.
type UpdateEvent struct {
	BaseEvent
	Books [cards.NumSuits]SuitBook `json:"books"`
	Trade string                   `json:"trade"`
}

func (e UpdateEvent) GetKind() Kind { return KindUpdate }

// PlayerPoints is one player's score line in a round or game summary.
type PlayerPoints struct {
	Name   string `json:"player_name"`
	Points int    `json:"points"`
}

// EndRoundEvent summarizes a finished round.
type EndRoundEvent struct {
	BaseEvent
	CardCount         map[string]int   `json:"card_count"`
	GoalSuit          string           `json:"goal_suit"`
	PlayerInventories []map[string]int `json:"player_inventories"`
	PlayerPoints      []PlayerPoints   `json:"player_points"`
}

func (e EndRoundEvent) GetKind() Kind { return KindEndRound }

// EndGameEvent summarizes a finished game.
type EndGameEvent struct {
	BaseEvent
	PlayerPoints []PlayerPoints `json:"player_points"`
}

func (e EndGameEvent) GetKind() Kind { return KindEndGame }
