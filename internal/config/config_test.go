package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.DataSource.Symbol != "BTCUSD" {
		t.Errorf("default symbol = %q, want BTCUSD", cfg.DataSource.Symbol)
	}
	if cfg.Schedule.RefreshMinutes != 200 {
		t.Errorf("default refresh = %d, want 200", cfg.Schedule.RefreshMinutes)
	}
	if cfg.Forecast.Horizon != 5 || cfg.Forecast.Estimators != 270 || cfg.Forecast.MaxDepth != 14 {
		t.Errorf("unexpected forecast defaults: %+v", cfg.Forecast)
	}
	if cfg.Forecast.TestFraction != 0.2 || cfg.Forecast.Seed != 42 || cfg.Forecast.MinHistory != 50 {
		t.Errorf("unexpected forecast defaults: %+v", cfg.Forecast)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
data_source:
  symbol: ETHGBP
  api_keys: [k1, k2]
schedule:
  refresh_minutes: 30
forecast:
  horizon: 7
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.DataSource.Symbol != "ETHGBP" {
		t.Errorf("symbol = %q, want ETHGBP", cfg.DataSource.Symbol)
	}
	if len(cfg.DataSource.APIKeys) != 2 {
		t.Errorf("api keys = %v, want 2 entries", cfg.DataSource.APIKeys)
	}
	if cfg.Schedule.RefreshMinutes != 30 {
		t.Errorf("refresh = %d, want 30", cfg.Schedule.RefreshMinutes)
	}
	if cfg.Forecast.Horizon != 7 {
		t.Errorf("horizon = %d, want 7", cfg.Forecast.Horizon)
	}
	// Unset fields still get defaults.
	if cfg.Forecast.Estimators != 270 {
		t.Errorf("estimators = %d, want default 270", cfg.Forecast.Estimators)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("FORECAST_HORIZON", "3")
	t.Setenv("ALPHAVANTAGE_API_KEY", "envkey")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Forecast.Horizon != 3 {
		t.Errorf("horizon = %d, want env override 3", cfg.Forecast.Horizon)
	}
	if len(cfg.DataSource.APIKeys) != 1 || cfg.DataSource.APIKeys[0] != "envkey" {
		t.Errorf("api keys = %v, want [envkey]", cfg.DataSource.APIKeys)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero horizon", func(c *Config) { c.Forecast.Horizon = -1 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"empty symbol", func(c *Config) { c.DataSource.Symbol = "" }},
		{"bad test fraction", func(c *Config) { c.Forecast.TestFraction = 1.5 }},
		{"negative refresh", func(c *Config) { c.Schedule.RefreshMinutes = -5 }},
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
