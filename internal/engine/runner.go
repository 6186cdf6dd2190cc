package engine

import (
	"context"
	"log/slog"
	"sync"
)

// Runner serializes strategy passes and keeps only the latest intent. A
// trigger arriving while a pass is in flight cancels that pass's context
// and queues exactly one fresh pass; intermediate triggers collapse. At
// most one pass runs at any time.
type Runner struct {
	run     func(ctx context.Context)
	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRunner creates a runner around one pass function.
func NewRunner(run func(ctx context.Context)) *Runner {
	return &Runner{
		run:     run,
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a pass against the current state. The in-flight pass,
// if any, is cancelled: it was computed from a state that just changed.
func (r *Runner) Trigger() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run consumes triggers until the context is done. It MUST be run in a
// single goroutine.
func (r *Runner) Run(ctx context.Context) {
	slog.Info("Strategy runner started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Strategy runner stopping")
			return
		case <-r.trigger:
			runCtx, cancel := context.WithCancel(ctx)
			r.mu.Lock()
			r.cancel = cancel
			r.mu.Unlock()

			r.run(runCtx)

			r.mu.Lock()
			r.cancel = nil
			r.mu.Unlock()
			cancel()
		}
	}
}
