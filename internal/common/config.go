// Package common provides shared utilities for the Lucra wallet engine.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the wallet engine.
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Rewards     RewardsConfig   `toml:"rewards"`
	Assistant   AssistantConfig `toml:"assistant"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects and configures the persistence engine.
// Engine is "badger" (embedded, default) or "surreal".
type StorageConfig struct {
	Engine    string `toml:"engine"`
	Path      string `toml:"path"`      // badger data directory
	Address   string `toml:"address"`   // surreal connection address
	Namespace string `toml:"namespace"` // surreal namespace
	Database  string `toml:"database"`  // surreal database
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// RewardsConfig holds the cashback policy parameters. Rates are decimal
// strings so the policy stays exact.
type RewardsConfig struct {
	CashbackRate     string `toml:"cashback_rate"`      // fraction of each payment, e.g. "0.05"
	RewardToken      string `toml:"reward_token"`       // symbol credited by token redemptions
	TokenBonus       string `toml:"token_bonus"`        // bonus fraction on token redemptions
	RewardTokenPrice string `toml:"reward_token_price"` // unit price used when the holding must be created
}

// AssistantConfig holds the Lina assistant client configuration.
type AssistantConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Engine:    "badger",
			Path:      "data/wallet",
			Namespace: "lucra",
			Database:  "wallet",
		},
		Rewards: RewardsConfig{
			CashbackRate:     "0.05",
			RewardToken:      "LCRA",
			TokenBonus:       "0.05",
			RewardTokenPrice: "0.03",
		},
		Assistant: AssistantConfig{
			Model: "gemini-2.0-flash",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies LUCRA_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LUCRA_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("LUCRA_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("LUCRA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("LUCRA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if engine := os.Getenv("LUCRA_STORAGE_ENGINE"); engine != "" {
		config.Storage.Engine = engine
	}

	if path := os.Getenv("LUCRA_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if addr := os.Getenv("LUCRA_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}

	for _, name := range []string{"LUCRA_GEMINI_API_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Assistant.APIKey = key
			break
		}
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
