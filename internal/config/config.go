package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// List order policies. Shuffled is an opt-in presentation choice;
// pagination stays deterministic under the stable default.
const (
	OrderStable   = "stable"
	OrderShuffled = "shuffled"
)

type Config struct {
	// Server
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`

	// Dataset
	DatasetPath string `yaml:"dataset_path"`
	PublicDir   string `yaml:"public_dir"`

	// Query behavior
	DefaultListLimit   int    `yaml:"default_list_limit"`
	DefaultSearchLimit int    `yaml:"default_search_limit"`
	ListOrder          string `yaml:"list_order"`
	FuzzyThreshold     int    `yaml:"fuzzy_threshold"`

	// Sync / enrichment tooling
	SyncBaseURL       string `yaml:"sync_base_url"`
	WikiBaseURL       string `yaml:"wiki_base_url"`
	SyncConcurrency   int    `yaml:"sync_concurrency"`
	EnrichConcurrency int    `yaml:"enrich_concurrency"`
}

// Load builds the configuration from defaults, an optional YAML file
// pointed at by CONFIG_FILE, and environment variable overrides, in
// that order of precedence.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               "8080",
		Environment:        "development",
		DatasetPath:        "data/digimons.json",
		PublicDir:          "public",
		DefaultListLimit:   20,
		DefaultSearchLimit: 8,
		ListOrder:          OrderStable,
		FuzzyThreshold:     3,
		SyncConcurrency:    10,
		EnrichConcurrency:  3,
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DatasetPath = getEnv("DATASET_PATH", cfg.DatasetPath)
	cfg.PublicDir = getEnv("PUBLIC_DIR", cfg.PublicDir)
	cfg.DefaultListLimit = getEnvInt("DEFAULT_LIST_LIMIT", cfg.DefaultListLimit)
	cfg.DefaultSearchLimit = getEnvInt("DEFAULT_SEARCH_LIMIT", cfg.DefaultSearchLimit)
	cfg.ListOrder = getEnv("LIST_ORDER", cfg.ListOrder)
	cfg.FuzzyThreshold = getEnvInt("FUZZY_THRESHOLD", cfg.FuzzyThreshold)
	cfg.SyncBaseURL = getEnv("SYNC_BASE_URL", cfg.SyncBaseURL)
	cfg.WikiBaseURL = getEnv("WIKI_BASE_URL", cfg.WikiBaseURL)
	cfg.SyncConcurrency = getEnvInt("SYNC_CONCURRENCY", cfg.SyncConcurrency)
	cfg.EnrichConcurrency = getEnvInt("ENRICH_CONCURRENCY", cfg.EnrichConcurrency)

	if cfg.ListOrder != OrderStable && cfg.ListOrder != OrderShuffled {
		return nil, fmt.Errorf("LIST_ORDER must be %q or %q, got %q", OrderStable, OrderShuffled, cfg.ListOrder)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
