package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sim       SimConfig       `yaml:"sim"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// SimConfig holds the configuration for the Sim API data source. APIKey is
// never read from the file; it comes from the SIM_API_KEY environment
// variable (optionally via .env).
type SimConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"-"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimit            float64 `yaml:"rateLimit"`
	BurstLimit           int     `yaml:"burstLimit"`
	CacheTTLSeconds      int     `yaml:"cacheTTLSeconds"`
}

// PortfolioConfig holds configuration for the portfolio aggregator.
type PortfolioConfig struct {
	MaxConcurrentWallets int `yaml:"maxConcurrentWallets"`
	ActivityLimit        int `yaml:"activityLimit"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g. "debug", "info", "warn", "error"
}

// Load reads the YAML configuration file, applies defaults, and overlays the
// API key from the environment (.env is loaded first when present). A missing
// SIM_API_KEY is a hard error: without it every upstream call would fail.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	// Best effort; a missing .env just means the key is set in the real env.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	cfg.Sim.APIKey = os.Getenv("SIM_API_KEY")
	if cfg.Sim.APIKey == "" {
		return nil, fmt.Errorf("SIM_API_KEY is not set in environment (.env)")
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 30
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Sim.BaseURL == "" {
		cfg.Sim.BaseURL = "https://api.sim.dune.com"
		logrus.Infof("Sim.BaseURL not set, defaulting to %s", cfg.Sim.BaseURL)
	}
	if cfg.Sim.RequestTimeoutMillis <= 0 {
		cfg.Sim.RequestTimeoutMillis = 20000 // the per-call ceiling the UI was built around
	}
	if cfg.Sim.RateLimit <= 0 {
		cfg.Sim.RateLimit = 10
	}
	if cfg.Sim.BurstLimit <= 0 {
		cfg.Sim.BurstLimit = 20
	}
	if cfg.Sim.CacheTTLSeconds <= 0 {
		cfg.Sim.CacheTTLSeconds = 30
	}

	if cfg.Portfolio.MaxConcurrentWallets <= 0 {
		cfg.Portfolio.MaxConcurrentWallets = 8
	}
	if cfg.Portfolio.ActivityLimit <= 0 {
		cfg.Portfolio.ActivityLimit = 25
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
