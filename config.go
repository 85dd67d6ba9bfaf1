package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	GameModeClassic  = "classic"
	GameModeExtended = "extended"
)

type Config struct {
	BotToken              string  `env:"BOT_TOKEN"`
	Port                  string  `env:"PORT" envDefault:"8080"`
	DataPath              string  `env:"DATA_PATH" envDefault:"charabot.db"`
	CatalogFile           string  `env:"CATALOG_FILE" envDefault:"characters.json"`
	AdminIDs              []int64 `env:"ADMIN_IDS" envSeparator:","`
	GameMode              string  `env:"GAME_MODE" envDefault:"classic"`
	PollTimeoutSeconds    int     `env:"POLL_TIMEOUT_SECONDS" envDefault:"30"`
	MaxConcurrentCommands int     `env:"MAX_CONCURRENT_COMMANDS" envDefault:"8"`
	DevMode               bool    `env:"DEV_MODE" envDefault:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.GameMode != GameModeClassic && cfg.GameMode != GameModeExtended {
		return cfg, fmt.Errorf("unknown GAME_MODE %q", cfg.GameMode)
	}
	if cfg.MaxConcurrentCommands < 1 {
		cfg.MaxConcurrentCommands = 1
	}
	return cfg, nil
}

// StartingCoins returns the balance a profile is created with.
func (c Config) StartingCoins() int64 {
	if c.GameMode == GameModeExtended {
		return 1000
	}
	return 100
}

func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
