package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	DataSource struct {
		Symbol     string   `yaml:"symbol"`
		APIKeys    []string `yaml:"api_keys"`
		BaseURL    string   `yaml:"base_url"`
		SpotURL    string   `yaml:"spot_url"`
		RatePerMin int      `yaml:"rate_per_min"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshMinutes int `yaml:"refresh_minutes"`
	} `yaml:"schedule"`
	Forecast struct {
		Horizon      int     `yaml:"horizon"`
		Estimators   int     `yaml:"estimators"`
		MaxDepth     int     `yaml:"max_depth"`
		TestFraction float64 `yaml:"test_fraction"`
		Seed         int64   `yaml:"seed"`
		MinHistory   int     `yaml:"min_history"`
	} `yaml:"forecast"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.DataSource.APIKeys = []string{v}
	}
	if v := os.Getenv("FORECAST_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REFRESH_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.RefreshMinutes = mins
		}
	}
	if v := os.Getenv("FORECAST_HORIZON"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.Horizon = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "BTCUSD"
	}
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://www.alphavantage.co"
	}
	if cfg.DataSource.SpotURL == "" {
		cfg.DataSource.SpotURL = "https://api.coindesk.com/v1/bpi/currentprice.json"
	}
	if cfg.DataSource.RatePerMin == 0 {
		cfg.DataSource.RatePerMin = 5
	}
	if cfg.Schedule.RefreshMinutes == 0 {
		cfg.Schedule.RefreshMinutes = 200
	}
	if cfg.Forecast.Horizon == 0 {
		cfg.Forecast.Horizon = 5
	}
	if cfg.Forecast.Estimators == 0 {
		cfg.Forecast.Estimators = 270
	}
	if cfg.Forecast.MaxDepth == 0 {
		cfg.Forecast.MaxDepth = 14
	}
	if cfg.Forecast.TestFraction == 0 {
		cfg.Forecast.TestFraction = 0.2
	}
	if cfg.Forecast.Seed == 0 {
		cfg.Forecast.Seed = 42
	}
	if cfg.Forecast.MinHistory == 0 {
		cfg.Forecast.MinHistory = 50
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/price_history.db"
	}

	return cfg, nil
}

// Validate checks that all fields are sane.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535")
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.Schedule.RefreshMinutes <= 0 {
		return fmt.Errorf("schedule.refresh_minutes must be positive")
	}
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("forecast.horizon must be at least 1")
	}
	if c.Forecast.Estimators <= 0 {
		return fmt.Errorf("forecast.estimators must be positive")
	}
	if c.Forecast.MaxDepth <= 0 {
		return fmt.Errorf("forecast.max_depth must be positive")
	}
	if c.Forecast.TestFraction <= 0 || c.Forecast.TestFraction >= 1 {
		return fmt.Errorf("forecast.test_fraction must be in (0, 1)")
	}
	return nil
}
