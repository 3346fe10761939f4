package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mcdev12/liveauction/go/internal/ledger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		AdminPass string `yaml:"admin_pass"`
	} `yaml:"auth"`
	Auction struct {
		InitialTokens    int `yaml:"initial_tokens"`
		BidWindowSec     int `yaml:"bid_window_sec"`
		TickMs           int `yaml:"tick_ms"`
		UpdateIntervalMs int `yaml:"update_interval_ms"`
		BasePrice        struct {
			Enabled bool `yaml:"enabled"`
			Min     int  `yaml:"min"`
			Max     int  `yaml:"max"`
			Default int  `yaml:"default"`
		} `yaml:"base_price"`
	} `yaml:"auction"`
	Teams []ledger.TeamConfig `yaml:"teams"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = 3000
	cfg.Auth.AdminPass = "adminpass"
	cfg.Auction.InitialTokens = 1000
	cfg.Auction.BidWindowSec = 10
	cfg.Auction.TickMs = 250
	cfg.Auction.UpdateIntervalMs = 1000
	cfg.Teams = []ledger.TeamConfig{
		{ID: "TEAM1", Name: "Team 1", Pass: "leopard"},
		{ID: "TEAM2", Name: "Team 2", Pass: "tiger"},
		{ID: "TEAM3", Name: "Team 3", Pass: "panther"},
		{ID: "TEAM4", Name: "Team 4", Pass: "cheetah"},
		{ID: "TEAM5", Name: "Team 5", Pass: "lynx"},
		{ID: "TEAM6", Name: "Team 6", Pass: "jaguar"},
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads the YAML config file and applies environment overrides.
// A missing file falls back to defaults so the server runs out of the box.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.Server.Port = getEnvAsInt("PORT", cfg.Server.Port)
	cfg.Auth.AdminPass = getEnv("ADMIN_PASS", cfg.Auth.AdminPass)
	cfg.Auction.UpdateIntervalMs = getEnvAsInt("UPDATE_INTERVAL_MS", cfg.Auction.UpdateIntervalMs)

	if len(cfg.Teams) == 0 {
		return nil, fmt.Errorf("config has no teams")
	}
	return cfg, nil
}
