// Package app wires configuration, logging, persistence and the
// precomputed tables into a ready-to-run session.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dorive/FiggieMachine/internal/infra"
	"github.com/dorive/FiggieMachine/internal/storage"
	"github.com/dorive/FiggieMachine/internal/tables"
)

// Table file names inside the configured tables directory.
const (
	DistFileName    = "GoalDist.csv"
	PremiumFileName = "GoalPremium.csv"
)

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config  *infra.Config
	Journal *storage.EventJournal
	Dist    *tables.DistTable
	Premium *tables.PremiumTable

	unlock func()
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization: config, logger,
// precomputed tables, workspace directories and the event journal.
func (b *Bootstrap) Initialize() error {
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return err
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("Bootstrapping Figgie Machine", "mode", cfg.Venue.Mode)

	if err := b.loadTables(); err != nil {
		return err
	}

	// Per-mode data isolation: _workspace/data/{mode}/journal.db
	mode := strings.ToLower(cfg.Venue.Mode)
	workDir := infra.GetWorkspaceDir()
	dataDir := filepath.Join(workDir, "data", mode)
	logDir := filepath.Join(workDir, "logs", mode)

	if err := infra.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := infra.EnsureDir(logDir); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}

	// One process per workspace: two writers would corrupt the journal.
	unlock, err := infra.CreateLockFile(workDir)
	if err != nil {
		return err
	}
	b.unlock = unlock

	dbPath := filepath.Join(dataDir, "journal.db")
	journal, err := storage.NewEventJournal(dbPath)
	if err != nil {
		return err
	}
	b.Journal = journal
	slog.Info("Event journal initialized", "path", dbPath, "mode", mode)

	return nil
}

// loadTables reads the precomputed tables from the configured directory,
// falling back to in-process generation when they are absent. Generation
// takes well under a second, so a missing directory is not fatal.
func (b *Bootstrap) loadTables() error {
	dir := b.Config.Tables.Dir
	if dir == "" {
		slog.Info("No tables directory configured, generating in process")
		b.Dist = tables.GenerateDist()
		b.Premium = tables.GeneratePremium()
		return nil
	}

	distPath := filepath.Join(dir, DistFileName)
	premiumPath := filepath.Join(dir, PremiumFileName)

	dist, err := tables.LoadDistFile(distPath)
	if os.IsNotExist(err) {
		slog.Warn("Distribution table missing, generating in process", "path", distPath)
		dist = tables.GenerateDist()
	} else if err != nil {
		return fmt.Errorf("loading %s: %w", distPath, err)
	}

	premium, err := tables.LoadPremiumFile(premiumPath)
	if os.IsNotExist(err) {
		slog.Warn("Premium table missing, generating in process", "path", premiumPath)
		premium = tables.GeneratePremium()
	} else if err != nil {
		return fmt.Errorf("loading %s: %w", premiumPath, err)
	}

	b.Dist = dist
	b.Premium = premium
	slog.Info("Precomputed tables ready",
		"dist_rows", dist.Len(), "premium_rows", premium.Len())
	return nil
}

// Shutdown releases the journal and the instance lock.
func (b *Bootstrap) Shutdown() {
	if b.Journal != nil {
		if err := b.Journal.Close(); err != nil {
			slog.Error("Journal close failed", "error", err)
		}
	}
	if b.unlock != nil {
		b.unlock()
	}
}
