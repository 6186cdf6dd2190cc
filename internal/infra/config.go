package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings. Loaded from YAML first, then
// overridden by FIGGIE_* environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Venue struct {
		Mode              string  `yaml:"mode"` // PAPER | TESTNET | LIVE
		RestURL           string  `yaml:"rest_url"`
		WSURL             string  `yaml:"ws_url"`
		PlayerID          string  `yaml:"player_id"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		MaxBurst          int     `yaml:"max_burst"`
		InitialFunds      int64   `yaml:"initial_funds"` // paper mode only
	} `yaml:"venue"`

	Session struct {
		InboxSize int `yaml:"inbox_size"`
	} `yaml:"session"`

	Tables struct {
		Dir string `yaml:"dir"` // empty: generate in process
	} `yaml:"tables"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	mode := strings.ToUpper(c.Venue.Mode)
	switch mode {
	case "PAPER", "TESTNET", "LIVE":
	case "":
		return fmt.Errorf("venue mode is required (PAPER, TESTNET or LIVE)")
	default:
		return fmt.Errorf("unknown venue mode: %s", c.Venue.Mode)
	}
	c.Venue.Mode = mode

	if mode != "PAPER" {
		if !strings.HasPrefix(c.Venue.RestURL, "http://") && !strings.HasPrefix(c.Venue.RestURL, "https://") {
			return fmt.Errorf("invalid venue REST URL: %s", c.Venue.RestURL)
		}
		if !strings.HasPrefix(c.Venue.WSURL, "ws://") && !strings.HasPrefix(c.Venue.WSURL, "wss://") {
			return fmt.Errorf("invalid venue WS URL: %s", c.Venue.WSURL)
		}
		if c.Venue.PlayerID == "" {
			return fmt.Errorf("player id is required outside paper mode")
		}
	}

	if c.Venue.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive")
	}
	if c.Venue.MaxBurst <= 0 {
		return fmt.Errorf("max burst must be positive")
	}
	if c.Session.InboxSize <= 0 {
		return fmt.Errorf("inbox size must be positive")
	}

	return nil
}

// overrideWithEnv applies environment overrides. Environment variables
// beat the config file so deployments can swap venues without editing it.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("FIGGIE_MODE"); v != "" {
		cfg.Venue.Mode = v
	}
	if v := os.Getenv("FIGGIE_REST_URL"); v != "" {
		cfg.Venue.RestURL = v
	}
	if v := os.Getenv("FIGGIE_WS_URL"); v != "" {
		cfg.Venue.WSURL = v
	}
	if v := os.Getenv("FIGGIE_PLAYER_ID"); v != "" {
		cfg.Venue.PlayerID = v
	}
	if v := os.Getenv("FIGGIE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
