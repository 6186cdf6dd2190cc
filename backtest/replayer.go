// Package backtest replays journaled sessions through the live session
// controller. Replay and live share one code path; only the venue behind
// the controller differs.
package backtest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dorive/FiggieMachine/internal/engine"
	"github.com/dorive/FiggieMachine/internal/storage"
)

// Replayer reads a session journal and feeds it into a controller.
type Replayer struct {
	journal *storage.EventJournal
}

// NewReplayer opens the journal at dbPath.
func NewReplayer(dbPath string) (*Replayer, error) {
	journal, err := storage.NewEventJournal(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return &Replayer{journal: journal}, nil
}

// RunReplay dispatches every journaled event synchronously through the
// controller, in the order it was recorded.
func (r *Replayer) RunReplay(ctx context.Context, c *engine.Controller) error {
	events, err := r.journal.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading journal: %w", err)
	}

	slog.Info("Replaying session", "events", len(events))
	for _, ev := range events {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.ReplayEvent(ctx, ev)
	}
	slog.Info("Replay finished")
	return nil
}

// Close releases the journal.
func (r *Replayer) Close() error {
	return r.journal.Close()
}
