package infra

import (
	"fmt"
	"strings"
)

// ANSI Color Codes
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
)

// PrintBanner displays the startup banner with mode-specific warnings.
func PrintBanner(cfg *Config) {
	mode := strings.ToUpper(cfg.Venue.Mode)
	version := cfg.App.Version

	color := ColorGreen
	modeDesc := "SIMULATION"

	switch mode {
	case "LIVE":
		color = ColorRed
		modeDesc = "COMPETITION EXCHANGE"
	case "TESTNET":
		color = ColorYellow
		modeDesc = "TESTNET (PLAY MONEY)"
	case "PAPER":
		color = ColorCyan
		modeDesc = "INTERNAL SIMULATION"
	}

	fmt.Println()
	fmt.Printf("%s###########################################################%s\n", color, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s#               🃏 Figgie Machine                         #%s\n", color, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s#   MODE:    %-36s #%s\n", color, mode, ColorReset)
	fmt.Printf("%s#   TYPE:    %-36s #%s\n", color, modeDesc, ColorReset)
	fmt.Printf("%s#   VERSION: %-36s #%s\n", color, version, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)

	if mode == "LIVE" {
		fmt.Printf("%s#   ⚠️  WARNING: YOU ARE TRADING ON THE COMPETITION       #%s\n", ColorRed, ColorReset)
		fmt.Printf("%s#   EXCHANGE. VERIFY THE STRATEGY ON TESTNET FIRST.       #%s\n", ColorRed, ColorReset)
	}

	fmt.Printf("%s###########################################################%s\n", color, ColorReset)
	fmt.Println()
}
