package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the food API server and its clients
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Client   ClientConfig   `yaml:"client"`
	Display  DisplayConfig  `yaml:"display"`
}

// ServerConfig holds HTTP listener configuration for cmd/foodapi
type ServerConfig struct {
	Port    int           `yaml:"port"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DatabaseConfig selects the gorm dialect and connection string
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Seed   bool   `yaml:"seed"`
}

// ClientConfig configures the food API client used by the order composer
type ClientConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DisplayConfig controls how totals are rendered
type DisplayConfig struct {
	Locale         string `yaml:"locale"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port: 3333,
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "gorestaurant.db",
			Seed:   true,
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:3333",
			Timeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			Locale:         "pt-BR",
			CurrencySymbol: "R$",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults, then applies
// environment overrides (a .env file in the working directory is honoured).
// An empty filename skips the file.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("FOOD_API_URL"); v != "" {
		c.Client.BaseURL = v
	}
	if v := os.Getenv("FOOD_API_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FOOD_API_TIMEOUT value: %w", err)
		}
		c.Client.Timeout = timeout
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOCALE"); v != "" {
		c.Display.Locale = v
	}
	return nil
}

// Validate checks the values the rest of the program relies on
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("client base_url is required")
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client timeout must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
