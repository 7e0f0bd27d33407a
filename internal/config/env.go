package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
)

// Environment variables that override file values.
const (
	EnvCard   = "SCARLETTCFG_CARD"
	EnvAmixer = "SCARLETTCFG_AMIXER"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first readable .env file. Existing process variables
// are not overwritten.
func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
		return
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvCard); v != "" {
		cfg.Device.Card = v
	}
	if v := os.Getenv(EnvAmixer); v != "" {
		cfg.Device.Amixer = v
	}
}
