// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/params"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Exchange describes connectivity to the competition venue. TeamSecret
// from the environment (TEAM_SECRET, via .env) takes precedence over
// the file so the credential stays out of version control.
type Exchange struct {
	Provider        string `yaml:"provider"`
	URL             string `yaml:"url"`
	TeamSecret      string `yaml:"team_secret"`
	ReconnectWaitMs int    `yaml:"reconnect_wait_ms"`
}

// Trading carries the evaluator's initial knobs; both can be adjusted
// live through the override console.
type Trading struct {
	Alpha            float64 `yaml:"alpha"`
	MaxExpiryHorizon int64   `yaml:"max_expiry_horizon"`
}

// Risk encodes a guard-rail on how much premium a single order may pay.
// Zero disables the cap.
type Risk struct {
	MaxPremiumPerOrder float64 `yaml:"max_premium_per_order"`
}

// Paper captures paper-trading account settings.
type Paper struct {
	StartingCash              float64 `yaml:"starting_cash"`
	MaxContractsPerInstrument int64   `yaml:"max_contracts_per_instrument"`
	FillsPath                 string  `yaml:"fills_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Exchange Exchange `yaml:"exchange"`
	Trading  Trading  `yaml:"trading"`
	Risk     Risk     `yaml:"risk"`
	Paper    Paper    `yaml:"paper"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Parameters converts the trading section into evaluator parameters.
func (c *Config) Parameters() params.Parameters {
	return params.Parameters{Alpha: c.Trading.Alpha, MaxExpiryHorizon: c.Trading.MaxExpiryHorizon}
}

// Validate runs startup checks. A bad alpha or horizon must abort the
// process rather than run with a rule that never (or always) fires.
func (c *Config) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	if c.Risk.MaxPremiumPerOrder < 0 {
		return fmt.Errorf("%w: max_premium_per_order %.2f negative", params.ErrInvalidParameter, c.Risk.MaxPremiumPerOrder)
	}
	if c.Exchange.ReconnectWaitMs < 0 {
		return fmt.Errorf("%w: reconnect_wait_ms %d negative", params.ErrInvalidParameter, c.Exchange.ReconnectWaitMs)
	}
	return nil
}
