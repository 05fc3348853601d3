// Package config carries the persistent CLI flags shared by every
// subcommand and resolves them into an effective configuration.
package config

import (
	"os"

	"github.com/rs/zerolog"

	appcfg "github.com/traderndumia/propfire/config"
)

// RootConfig holds global flag values.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
	NoColor    bool
}

// Load resolves the effective configuration and logger for a command.
// A missing config file falls back to defaults; an invalid one is a
// user-correctable error.
func (rc *RootConfig) Load() (*appcfg.Config, zerolog.Logger, error) {
	cfg, used, err := appcfg.LoadOrDefault(rc.ConfigPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if rc.LogLevel != "" {
		cfg.LogLevel = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: rc.NoColor}).
		Level(level).
		With().Timestamp().Logger()

	if !used {
		log.Debug().Str("path", rc.ConfigPath).Msg("config file not found; using defaults")
	}
	return cfg, log, nil
}
