package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dorive/FiggieMachine/internal/app"
	"github.com/dorive/FiggieMachine/internal/engine"
	"github.com/dorive/FiggieMachine/internal/execution"
	"github.com/dorive/FiggieMachine/internal/infra"
	"github.com/dorive/FiggieMachine/internal/pricing"
	"github.com/dorive/FiggieMachine/internal/strategy"
	"github.com/dorive/FiggieMachine/internal/stream"
	"github.com/dorive/FiggieMachine/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("Bootstrapping failed", "error", err)
		os.Exit(1)
	}
	defer bootstrap.Shutdown()

	cfg := bootstrap.Config
	infra.PrintBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	venue, err := execution.NewVenue(cfg)
	if err != nil {
		slog.Error("Venue initialization failed", "error", err)
		os.Exit(1)
	}

	tr := tracker.New()
	selfName := resolveIdentity(ctx, cfg, venue, bootstrap)
	tr.SetSelf(selfName)

	est := pricing.NewEstimator(bootstrap.Dist)
	val := pricing.NewValuator(pricing.NewPremiumCalc(bootstrap.Premium), est)
	strat := strategy.New(tr, est, val, venue)

	controller := engine.NewController(cfg.Session.InboxSize, tr, strat, venue, bootstrap.Journal)
	go controller.Run(ctx)
	slog.Info("Session controller running")

	if execution.Mode(cfg.Venue.Mode) == execution.ModePaper {
		slog.Info("Paper mode has no live stream; drive it with the replay tool")
	} else {
		worker := stream.NewWorker(cfg.Venue.WSURL, cfg.Venue.PlayerID, controller.Inbox())
		worker.Connect(ctx)
		defer worker.Disconnect()
		slog.Info("Stream worker connected", "url", cfg.Venue.WSURL)
	}

	slog.Info("Figgie Machine operational, press Ctrl+C to exit")
	<-ctx.Done()
	slog.Info("Shutting down")
}

// resolveIdentity determines the name the venue knows us by. On the
// testnet that requires registering first; the competition exchange
// assigns the configured player id directly.
func resolveIdentity(ctx context.Context, cfg *infra.Config, venue execution.Venue, bootstrap *app.Bootstrap) string {
	client, ok := venue.(*execution.RESTClient)
	if !ok || execution.Mode(cfg.Venue.Mode) != execution.ModeTestnet {
		return cfg.Venue.PlayerID
	}

	name, ok := client.RegisterTestnet(ctx)
	if !ok {
		slog.Error("Testnet registration failed")
		os.Exit(1)
	}

	if bootstrap.Journal != nil {
		err := bootstrap.Journal.UpsertMetadata(ctx, "player_name", name, time.Now().UnixMicro())
		if err != nil {
			slog.Warn("Could not record player name", "error", err)
		}
	}
	return name
}
