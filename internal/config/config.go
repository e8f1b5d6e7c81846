package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Interview struct {
		AdvanceDelay string `yaml:"advance_delay"`
	} `yaml:"interview"`
	Poll struct {
		Interval   string `yaml:"interval"`
		SummaryTTL string `yaml:"summary_ttl"`
	} `yaml:"poll"`
	Mission struct {
		CasePoints     int `yaml:"case_points"`
		FollowUpPoints int `yaml:"followup_points"`
		SilverAt       int `yaml:"silver_at"`
		GoldAt         int `yaml:"gold_at"`
	} `yaml:"mission"`
}

// Load reads YAML config from path. A local .env is applied first so the
// PV_API_URL override works without touching the config file. A missing
// config file is not an error; defaults cover everything.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv("PV_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	return cfg
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
