package execution

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/dorive/FiggieMachine/internal/infra"
)

// Mode selects the venue implementation.
type Mode string

const (
	ModePaper   Mode = "PAPER"
	ModeTestnet Mode = "TESTNET"
	ModeLive    Mode = "LIVE"
)

// NewVenue builds the venue for the configured mode.
//
// LIVE is gated behind an explicit environment latch so a config typo
// cannot trade in competition by accident.
func NewVenue(cfg *infra.Config) (Venue, error) {
	mode := Mode(cfg.Venue.Mode)

	slog.Info("Initializing venue", "mode", mode)

	switch mode {
	case ModePaper:
		return NewPaperVenue(decimal.NewFromInt(cfg.Venue.InitialFunds)), nil

	case ModeTestnet:
		return NewRESTClient(cfg.Venue.RestURL, cfg.Venue.PlayerID,
			cfg.Venue.MaxBurst, cfg.Venue.RequestsPerSecond), nil

	case ModeLive:
		if os.Getenv("CONFIRM_LIVE_TRADING") != "true" {
			err := fmt.Errorf("live trading requires CONFIRM_LIVE_TRADING=true")
			slog.Error(err.Error())
			return nil, err
		}
		client := NewRESTClient(cfg.Venue.RestURL, cfg.Venue.PlayerID,
			cfg.Venue.MaxBurst, cfg.Venue.RequestsPerSecond)
		return client, nil

	default:
		return nil, fmt.Errorf("unknown venue mode: %s", cfg.Venue.Mode)
	}
}
