// Package config loads and saves costplan settings and the rate-card table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// PortfolioDirEnv overrides the configured portfolio directory.
const PortfolioDirEnv = "COSTPLAN_PORTFOLIO_DIR"

// Config holds all costplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Forecast   ForecastConfig   `toml:"forecast"`
	Currency   CurrencyConfig   `toml:"currency"`
	Appearance AppearanceConfig `toml:"appearance"`
	RateCards  RateCardConfig   `toml:"rate_cards"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	PortfolioDir string `toml:"portfolio_dir,omitempty"`
	DefaultSort  string `toml:"default_sort"`
}

// ForecastConfig holds the engine tunables.
type ForecastConfig struct {
	WorkingDaysPerMonth float64 `toml:"working_days_per_month"`
	ExternalDayRate     float64 `toml:"external_day_rate"`
	ContingencyPercent  float64 `toml:"contingency_percent"`
}

// CurrencyConfig sets how amounts are displayed.
type CurrencyConfig struct {
	Primary string `toml:"primary"`
	Symbol  string `toml:"symbol"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// RateCardConfig allows user-defined rates for specific roles.
type RateCardConfig struct {
	Overrides map[string]RateCardOverride `toml:"overrides,omitempty"`
}

// RateCardOverride replaces or adds a role's daily rate.
type RateCardOverride struct {
	Rate     *float64 `toml:"rate,omitempty"`
	Category string   `toml:"category,omitempty"`
}

// CurrencySymbols maps common currency codes to display symbols.
var CurrencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"CHF": "CHF ",
}

// Symbol returns the display symbol for a currency code, falling back to
// the code itself.
func Symbol(code string) string {
	code = strings.ToUpper(code)
	if s, ok := CurrencySymbols[code]; ok {
		return s
	}
	return code + " "
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultSort: "cost-desc",
		},
		Forecast: ForecastConfig{
			WorkingDaysPerMonth: 22,
			ExternalDayRate:     1000,
			ContingencyPercent:  10,
		},
		Currency: CurrencyConfig{
			Primary: "USD",
			Symbol:  "$",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "costplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "costplan")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path with owner-only permissions.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// LoadEnv reads an optional .env file from the working directory. Variables
// already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetPortfolioDir returns the portfolio directory from env var or config,
// in that order, falling back to the working directory.
func GetPortfolioDir(cfg Config) string {
	if dir := os.Getenv(PortfolioDirEnv); dir != "" {
		return dir
	}
	if cfg.General.PortfolioDir != "" {
		return cfg.General.PortfolioDir
	}
	return "."
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
