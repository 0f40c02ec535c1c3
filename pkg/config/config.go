// Package config defines lobctl's configuration. Config is loaded from a
// YAML file (default: config.yaml in the working directory) with overrides
// from LOBCTL_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
)

// Config is the top-level configuration for a lobctl session.
type Config struct {
	Instrument InstrumentConfig `mapstructure:"instrument"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// InstrumentConfig names the book a session opens on startup.
type InstrumentConfig struct {
	Symbol       string   `mapstructure:"symbol"`
	Exchange     string   `mapstructure:"exchange"`
	AllowedFlags []string `mapstructure:"allowed_flags"`

	// Multiplier records the fixed-point scale for this session. Default()
	// sets it to fixedpoint.Multiplier and Validate requires it to be
	// positive. Nothing in this module reads it: parsing and display always
	// use fixedpoint.Multiplier.
	Multiplier int64 `mapstructure:"multiplier"`
}

// LoggingConfig holds log verbosity and format settings. lobctl does not
// read them; its logger is built with cosmossdk.io/log's default options.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds settings for a Prometheus scrape endpoint. lobctl
// does not read them and serves no endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Default returns the configuration lobctl runs with when no file is
// supplied.
func Default() Config {
	return Config{
		Instrument: InstrumentConfig{Symbol: "DEFAULT", Exchange: "LOCAL", Multiplier: fixedpoint.Multiplier},
		Logging:    LoggingConfig{Level: "info", Format: "plain"},
		Metrics:    MetricsConfig{Enabled: false, Addr: ":9090"},
	}
}

// Load reads config from a YAML file with LOBCTL_* environment overrides.
// A missing file at path falls back to Default() rather than failing, so
// lobctl runs with no setup at all.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("LOBCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.Instrument.Symbol == "" {
		return fmt.Errorf("instrument.symbol is required")
	}
	if c.Instrument.Exchange == "" {
		return fmt.Errorf("instrument.exchange is required")
	}
	if c.Instrument.Multiplier <= 0 {
		return fmt.Errorf("instrument.multiplier must be positive, got %d", c.Instrument.Multiplier)
	}
	return nil
}
