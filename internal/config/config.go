package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by all binaries.
type Config struct {
	NASAAPIKey   string        `env:"NASA_API_KEY"`
	NASABaseURL  string        `env:"NASA_BASE_URL" envDefault:"https://api.nasa.gov"`
	FetchTimeout time.Duration `env:"NASA_FETCH_TIMEOUT" envDefault:"10s"`

	// APODDir is where the picture of the day is stored. Empty disables the download.
	APODDir string `env:"APOD_DIR" envDefault:"."`

	MissionLog     string `env:"MISSION_LOG" envDefault:"missions.log"`
	MissionBackend string `env:"MISSION_BACKEND" envDefault:"text"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"neodefender.log"`

	Lives       int `env:"LIVES" envDefault:"1"`
	TargetScore int `env:"TARGET_SCORE" envDefault:"5000"`

	// Idle SSH players are warned, then disconnected. Zero disables either step.
	InactivityWarn    time.Duration `env:"INACTIVITY_WARN" envDefault:"2m"`
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT" envDefault:"3m"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse parses the current environment into a Config.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Lives < 1 {
		cfg.Lives = 1
	}
	if cfg.TargetScore < 0 {
		cfg.TargetScore = 0
	}
	return cfg, nil
}
