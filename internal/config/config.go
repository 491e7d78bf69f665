package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	NATS    NATSConfig    `yaml:"nats"`
	Scoring ScoringConfig `yaml:"scoring"`
	CORS    CORSConfig    `yaml:"cors"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port               int   `yaml:"port"`
	MetricsPort        int   `yaml:"metrics_port"`
	MaxBodyBytes       int64 `yaml:"max_body_bytes"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	Rules           ScoringRules `yaml:"rules"`
	SuggestionLimit int          `yaml:"suggestion_limit"`
	// Timezone names the location whose calendar decides "today".
	Timezone string `yaml:"timezone"`
}

type ScoringRules struct {
	OverdueBonus          int     `yaml:"overdue_bonus"`
	DueSoonBonus          int     `yaml:"due_soon_bonus"`
	DueSoonDays           int     `yaml:"due_soon_days"`
	ImportanceMultiplier  int     `yaml:"importance_multiplier"`
	QuickWinBonus         int     `yaml:"quick_win_bonus"`
	QuickWinHours         float64 `yaml:"quick_win_hours"`
	DefaultImportance     int     `yaml:"default_importance"`
	DefaultEstimatedHours float64 `yaml:"default_estimated_hours"`
}

type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Rules converts the configured point values into scoring rules.
func (c *Config) Rules() scoring.Rules {
	r := c.Scoring.Rules
	return scoring.Rules{
		OverdueBonus:          r.OverdueBonus,
		DueSoonBonus:          r.DueSoonBonus,
		DueSoonDays:           r.DueSoonDays,
		ImportanceMultiplier:  r.ImportanceMultiplier,
		QuickWinBonus:         r.QuickWinBonus,
		QuickWinHours:         r.QuickWinHours,
		DefaultImportance:     r.DefaultImportance,
		DefaultEstimatedHours: r.DefaultEstimatedHours,
	}
}

// Location resolves the scoring timezone. An empty name means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Scoring.Timezone == "" || c.Scoring.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Scoring.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Scoring.Timezone, err)
	}
	return loc, nil
}

func Load(path string) (*Config, error) {
	d := scoring.DefaultRules()
	cfg := &Config{
		Server: ServerConfig{
			Port:               8000,
			MetricsPort:        8001,
			MaxBodyBytes:       1 << 20,
			RateLimitPerMinute: 120,
		},
		Scoring: ScoringConfig{
			Rules: ScoringRules{
				OverdueBonus:          d.OverdueBonus,
				DueSoonBonus:          d.DueSoonBonus,
				DueSoonDays:           d.DueSoonDays,
				ImportanceMultiplier:  d.ImportanceMultiplier,
				QuickWinBonus:         d.QuickWinBonus,
				QuickWinHours:         d.QuickWinHours,
				DefaultImportance:     d.DefaultImportance,
				DefaultEstimatedHours: d.DefaultEstimatedHours,
			},
			SuggestionLimit: scoring.DefaultSuggestionLimit,
			Timezone:        "Local",
		},
		CORS: CORSConfig{
			AllowedOrigin: "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Rules().Validate(); err != nil {
		return nil, fmt.Errorf("scoring rules: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIAGE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TRIAGE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TRIAGE_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("TRIAGE_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("TRIAGE_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("TRIAGE_SUGGESTION_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.SuggestionLimit = n
		}
	}
	if v := os.Getenv("TRIAGE_TIMEZONE"); v != "" {
		cfg.Scoring.Timezone = v
	}
	if v := os.Getenv("TRIAGE_CORS_ORIGIN"); v != "" {
		cfg.CORS.AllowedOrigin = v
	}
	if v := os.Getenv("TRIAGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TRIAGE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
