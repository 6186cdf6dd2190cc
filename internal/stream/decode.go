// Package stream consumes the venue's websocket feed and turns its frames
// into session events.
package stream

import (
	"encoding/json"
	"fmt"

	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// Subscription statuses sent by the venue before any game frames.
const (
	statusSuccess      = "SUCCESS"
	statusUnknown      = "UNKNOWN_PLAYER"
	statusUnauthorized = "UNAUTHORIZED_ACTION"
	statusParseError   = "PARSE_ERROR"
)

// wireLevel is one resting order on the wire: a two-element array of
// price and player name.
type wireLevel struct {
	Price  int
	Player string
}

func (l *wireLevel) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("level has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &l.Price); err != nil {
		return fmt.Errorf("level price: %w", err)
	}
	if err := json.Unmarshal(raw[1], &l.Player); err != nil {
		return fmt.Errorf("level player: %w", err)
	}
	return nil
}

// wireSuitBook is the resting interest for one suit on the wire.
type wireSuitBook struct {
	Asks []wireLevel `json:"asks"`
	Bids []wireLevel `json:"bids"`
}

// frame is the envelope of every websocket message. Subscription acks
// carry a status; game messages carry a kind and a payload.
type frame struct {
	Status string          `json:"status"`
	Kind   string          `json:"kind"`
	Data   json.RawMessage `json:"data"`
}

// updatePayload is the update frame's payload: one book per plural suit
// key plus the comma-joined trade record.
type updatePayload struct {
	Spades   wireSuitBook `json:"spades"`
	Clubs    wireSuitBook `json:"clubs"`
	Hearts   wireSuitBook `json:"hearts"`
	Diamonds wireSuitBook `json:"diamonds"`
	Trade    string       `json:"trade"`
}

type endRoundPayload struct {
	CardCount         map[string]int       `json:"card_count"`
	GoalSuit          string               `json:"goal_suit"`
	PlayerInventories []map[string]int     `json:"player_inventories"`
	PlayerPoints      []event.PlayerPoints `json:"player_points"`
}

type endGamePayload struct {
	PlayerPoints []event.PlayerPoints `json:"player_points"`
}

// decodeFrame turns one websocket message into a session event. It
// returns (nil, "") for subscription acks handled in place, and an error
// for frames that cannot be understood.
func decodeFrame(msg []byte) (event.Event, string, error) {
	var f frame
	if err := json.Unmarshal(msg, &f); err != nil {
		return nil, "", fmt.Errorf("frame envelope: %w", err)
	}

	if f.Status != "" {
		return nil, f.Status, nil
	}

	switch f.Kind {
	case event.KindDealt.String():
		var hand map[string]int
		if err := json.Unmarshal(f.Data, &hand); err != nil {
			return nil, "", fmt.Errorf("dealt payload: %w", err)
		}
		ev := &event.DealtEvent{}
		for name, n := range hand {
			suit, err := cards.ParseSuit(name)
			if err != nil {
				return nil, "", fmt.Errorf("dealt payload: %w", err)
			}
			ev.Counts[suit] = n
		}
		return ev, "", nil

	case event.KindUpdate.String():
		var p updatePayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return nil, "", fmt.Errorf("update payload: %w", err)
		}
		ev := &event.UpdateEvent{Trade: p.Trade}
		ev.Books[cards.Spades] = toSuitBook(p.Spades)
		ev.Books[cards.Clubs] = toSuitBook(p.Clubs)
		ev.Books[cards.Hearts] = toSuitBook(p.Hearts)
		ev.Books[cards.Diamonds] = toSuitBook(p.Diamonds)
		return ev, "", nil

	case event.KindEndRound.String():
		var p endRoundPayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return nil, "", fmt.Errorf("end round payload: %w", err)
		}
		return &event.EndRoundEvent{
			CardCount:         p.CardCount,
			GoalSuit:          p.GoalSuit,
			PlayerInventories: p.PlayerInventories,
			PlayerPoints:      p.PlayerPoints,
		}, "", nil

	case event.KindEndGame.String():
		var p endGamePayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return nil, "", fmt.Errorf("end game payload: %w", err)
		}
		return &event.EndGameEvent{PlayerPoints: p.PlayerPoints}, "", nil

	default:
		return nil, "", fmt.Errorf("unknown frame kind %q", f.Kind)
	}
}

func toSuitBook(w wireSuitBook) event.SuitBook {
	book := event.SuitBook{}
	for _, a := range w.Asks {
		book.Asks = append(book.Asks, event.Level{Price: a.Price, Player: a.Player})
	}
	for _, b := range w.Bids {
		book.Bids = append(book.Bids, event.Level{Price: b.Price, Player: b.Player})
	}
	return book
}
