package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mwhitten/castle-siege-backend/internal/game"
)

// Config is the full server configuration, read from the environment with an
// optional .env overlay.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	PortScanMax int    `env:"PORT_SCAN_MAX" envDefault:"10"`
	Mode        string `env:"GAME_MODE" envDefault:"teams"`
	TeamSize    int    `env:"TEAM_SIZE" envDefault:"25"`
	MinPlayers  int    `env:"MIN_PLAYERS" envDefault:"2"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.GameMode(); err != nil {
		return Config{}, err
	}
	if cfg.TeamSize < 1 {
		return Config{}, fmt.Errorf("TEAM_SIZE must be at least 1, got %d", cfg.TeamSize)
	}
	if cfg.PortScanMax < 1 {
		cfg.PortScanMax = 1
	}
	return cfg, nil
}

func (c Config) GameMode() (game.Mode, error) {
	switch game.Mode(c.Mode) {
	case game.ModeTeams:
		return game.ModeTeams, nil
	case game.ModeSolo:
		return game.ModeSolo, nil
	default:
		return "", fmt.Errorf("unknown GAME_MODE %q", c.Mode)
	}
}
