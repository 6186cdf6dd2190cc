// Command gentables writes the precomputed goal-suit distribution and
// premium tables as CSV files. The bot generates them in process when
// they are absent; the files exist so the numbers can be inspected and
// diffed.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dorive/FiggieMachine/internal/app"
	"github.com/dorive/FiggieMachine/internal/tables"
)

func main() {
	outDir := flag.String("out", "tables", "output directory for the CSV files")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		slog.Error("Could not create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	dist := tables.GenerateDist()
	premium := tables.GeneratePremium()

	distPath := filepath.Join(*outDir, app.DistFileName)
	if err := writeDist(distPath, dist); err != nil {
		slog.Error("Writing distribution table failed", "path", distPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Distribution table written", "path", distPath, "rows", dist.Len())

	premiumPath := filepath.Join(*outDir, app.PremiumFileName)
	if err := writePremium(premiumPath, premium); err != nil {
		slog.Error("Writing premium table failed", "path", premiumPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Premium table written", "path", premiumPath, "rows", premium.Len())
}

func writeDist(path string, t *tables.DistTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tables.WriteDistCSV(f, t)
}

func writePremium(path string, t *tables.PremiumTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tables.WritePremiumCSV(f, t)
}
