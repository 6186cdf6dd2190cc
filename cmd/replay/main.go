// Command replay feeds a recorded session journal through the live
// session controller against the paper venue. Useful for inspecting how
// the strategy would have quoted a past session.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dorive/FiggieMachine/backtest"
	"github.com/dorive/FiggieMachine/internal/engine"
	"github.com/dorive/FiggieMachine/internal/execution"
	"github.com/dorive/FiggieMachine/internal/pricing"
	"github.com/dorive/FiggieMachine/internal/strategy"
	"github.com/dorive/FiggieMachine/internal/tables"
	"github.com/dorive/FiggieMachine/internal/tracker"
)

func main() {
	dbPath := flag.String("db", "", "path to the session journal")
	selfName := flag.String("self", "", "player name the session was recorded under")
	funds := flag.Int64("funds", 350, "paper venue starting balance")
	flag.Parse()

	if *dbPath == "" {
		slog.Error("A journal path is required (-db)")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	venue := execution.NewPaperVenue(decimal.NewFromInt(*funds))

	tr := tracker.New()
	tr.SetSelf(*selfName)
	est := pricing.NewEstimator(tables.GenerateDist())
	val := pricing.NewValuator(pricing.NewPremiumCalc(tables.GeneratePremium()), est)
	strat := strategy.New(tr, est, val, venue)

	// No journal on the controller: a replay must not journal itself.
	controller := engine.NewController(64, tr, strat, venue, nil)

	// The controller loop idles on an empty inbox here; starting it is
	// what brings up the strategy runner the replayed events trigger.
	go controller.Run(ctx)

	replayer, err := backtest.NewReplayer(*dbPath)
	if err != nil {
		slog.Error("Opening journal failed", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer replayer.Close()

	if err := replayer.RunReplay(ctx, controller); err != nil {
		slog.Error("Replay failed", "error", err)
		os.Exit(1)
	}

	// Give an in-flight strategy pass a moment to settle before reading
	// the final balance.
	time.Sleep(200 * time.Millisecond)
	slog.Info("Replay complete", "balance", venue.Balance())
}
