// Package config loads, validates, and persists the application
// configuration. Files may be YAML or JSON; a missing file yields the
// hard-coded defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrConfig marks an invalid, user-correctable settings value. It is
// the only error class surfaced as a blocking message.
var ErrConfig = errors.New("invalid configuration")

// Settings is the user's trading selection. Each field must be one of
// its fixed enumerated set; the oneof tags mirror the schedule
// package's registries.
type Settings struct {
	Currency string `json:"currency" yaml:"currency" default:"USD" validate:"required,oneof=USD EUR GBP JPY AUD CAD"`
	PropFirm string `json:"prop_firm" yaml:"prop_firm" default:"FTMO" validate:"required,oneof=FTMO MyForexFunds The5ers FundedNext"`
	Day      string `json:"day" yaml:"day" default:"Tuesday" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Session  string `json:"session" yaml:"session" default:"London" validate:"required,oneof=Asia London 'New York'"`
}

// CalendarConfig selects and tunes the calendar feed.
type CalendarConfig struct {
	Provider  string        `json:"provider" yaml:"provider" default:"faireconomy-json" validate:"oneof=faireconomy-json faireconomy-xml"`
	BaseURL   string        `json:"base_url,omitempty" yaml:"base_url,omitempty"` // empty selects the provider default
	Refresh   time.Duration `json:"refresh" yaml:"refresh" default:"5m"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl" default:"5m"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl" default:"6h"`
	CacheDir  string        `json:"cache_dir" yaml:"cache_dir" default:".propfire/cache"`
}

// Config is the complete application configuration.
type Config struct {
	Settings        Settings       `json:"settings" yaml:"settings"`
	StartingBalance float64        `json:"starting_balance" yaml:"starting_balance" default:"10000" validate:"gt=0"`
	Calendar        CalendarConfig `json:"calendar" yaml:"calendar"`
	DBPath          string         `json:"db_path" yaml:"db_path" default:"propfire.db"`
	AttachmentsDir  string         `json:"attachments_dir" yaml:"attachments_dir" default:"journal_images"`
	LogLevel        string         `json:"log_level" yaml:"log_level" default:"info" validate:"oneof=trace debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the hard-coded default configuration.
func Default() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		// Static tags; cannot fail at runtime.
		panic(err)
	}
	return c
}

// Load reads a configuration file, trying YAML first and falling back
// to JSON. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("%w: parse config (tried YAML and JSON): %v", ErrConfig, yamlErr)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is the startup path: a missing or unreadable file
// yields the defaults rather than an error. A file that exists but
// fails to parse or validate is a blocking ErrConfig; defaulting over
// it would silently replace the user's selections. The bool reports
// whether the file was actually used.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	switch {
	case err == nil:
		return cfg, true, nil
	case errors.Is(err, ErrConfig):
		return nil, false, err
	default:
		return Default(), false, nil
	}
}

// Save writes the configuration to path, as YAML for .yaml/.yml
// extensions and JSON otherwise.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every enumerated and bounded field, wrapping
// violations as ErrConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}
