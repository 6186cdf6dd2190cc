package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/internal/storage"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

func newTestJournal(t *testing.T) *storage.EventJournal {
	t.Helper()
	j, err := storage.NewEventJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewEventJournal failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalAppendAndLoadAll(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	dealt := &event.DealtEvent{
		BaseEvent: event.BaseEvent{Seq: 1, Ts: 100},
		Counts:    [4]int{3, 3, 3, 4},
	}
	update := &event.UpdateEvent{
		BaseEvent: event.BaseEvent{Seq: 2, Ts: 200},
		Trade:     "club,55,Alice,Bob",
	}
	update.Books[cards.Spades].Asks = []event.Level{{Price: 40, Player: "P2"}}
	endRound := &event.EndRoundEvent{
		BaseEvent: event.BaseEvent{Seq: 3, Ts: 300},
		GoalSuit:  "clubs",
	}
	endGame := &event.EndGameEvent{
		BaseEvent:    event.BaseEvent{Seq: 4, Ts: 400},
		PlayerPoints: []event.PlayerPoints{{Name: "Alice", Points: 120}},
	}

	for _, ev := range []event.Event{dealt, update, endRound, endGame} {
		if err := j.Append(ctx, ev); err != nil {
			t.Fatalf("Append(%v) failed: %v", ev.GetKind(), err)
		}
	}

	events, err := j.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("loaded %d events, want 4", len(events))
	}

	got, ok := events[0].(*event.DealtEvent)
	if !ok {
		t.Fatalf("event 0 is %T, want *DealtEvent", events[0])
	}
	if got.Counts != dealt.Counts || got.Seq != 1 || got.Ts != 100 {
		t.Errorf("dealt event round trip mismatch: %+v", got)
	}

	up, ok := events[1].(*event.UpdateEvent)
	if !ok {
		t.Fatalf("event 1 is %T, want *UpdateEvent", events[1])
	}
	if up.Trade != update.Trade {
		t.Errorf("trade = %q, want %q", up.Trade, update.Trade)
	}
	if len(up.Books[cards.Spades].Asks) != 1 || up.Books[cards.Spades].Asks[0].Price != 40 {
		t.Errorf("spades asks round trip mismatch: %+v", up.Books[cards.Spades].Asks)
	}

	if _, ok := events[2].(*event.EndRoundEvent); !ok {
		t.Fatalf("event 2 is %T, want *EndRoundEvent", events[2])
	}
	eg, ok := events[3].(*event.EndGameEvent)
	if !ok {
		t.Fatalf("event 3 is %T, want *EndGameEvent", events[3])
	}
	if len(eg.PlayerPoints) != 1 || eg.PlayerPoints[0].Points != 120 {
		t.Errorf("end game points round trip mismatch: %+v", eg.PlayerPoints)
	}
}

func TestJournalCount(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	n, err := j.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Count = %d, %v; want 0, nil", n, err)
	}

	for seq := uint64(1); seq <= 3; seq++ {
		ev := &event.UpdateEvent{BaseEvent: event.BaseEvent{Seq: seq}}
		if err := j.Append(ctx, ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	n, err = j.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3, nil", n, err)
	}
}

func TestJournalMetadata(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	if err := j.UpsertMetadata(ctx, "player_name", "Falcon_7", 100); err != nil {
		t.Fatalf("UpsertMetadata failed: %v", err)
	}
	if err := j.UpsertMetadata(ctx, "player_name", "Falcon_8", 200); err != nil {
		t.Fatalf("UpsertMetadata overwrite failed: %v", err)
	}

	v, err := j.GetMetadata(ctx, "player_name")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if v != "Falcon_8" {
		t.Errorf("GetMetadata = %q, want Falcon_8", v)
	}

	v, err = j.GetMetadata(ctx, "missing")
	if err != nil || v != "" {
		t.Errorf("missing key = %q, %v; want empty, nil", v, err)
	}
}
