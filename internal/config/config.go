// Package config loads the application configuration from the environment.
//
// Configuration is an explicit value constructed once at process start and
// passed by reference to every component that needs it; there is no ambient
// global state. A .env file, when present, seeds the environment before
// variables are read.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rcampelo/briza/pkg/briza"
)

// Config holds every environment-driven setting of the pipeline.
type Config struct {
	// DatabaseURL is the warehouse connection string (PostgreSQL URI).
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// StagingDataset receives raw loaded files and the load ledger.
	StagingDataset string `envconfig:"STAGING_DATASET" default:"staging"`

	// WarehouseDataset holds modeled tables downstream of staging.
	WarehouseDataset string `envconfig:"WAREHOUSE_DATASET" default:"warehouse"`

	// GCSBucket is the object-storage bucket for raw file archival.
	GCSBucket string `envconfig:"GCS_BUCKET"`

	// GoogleCredentials points at a service-account JSON file. Empty means
	// application default credentials.
	GoogleCredentials string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Kaggle API credentials for dataset downloads.
	KaggleUsername string `envconfig:"KAGGLE_USERNAME"`
	KaggleKey      string `envconfig:"KAGGLE_KEY"`

	// Environment tags log output and dataset descriptions (dev, staging, prod).
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`

	// DataDir is the local root for downloaded and processed files.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load builds a Config from the environment. envFile, when non-empty, names
// a .env file that must exist; when empty, a .env in the working directory
// is loaded if present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("%w: loading env file %s: %w", briza.ErrInvalidConfig, envFile, err)
		}
	} else {
		// Best-effort: a missing default .env is fine.
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", briza.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// RawDataDir is where downloaded datasets are extracted.
func (c *Config) RawDataDir() string {
	return filepath.Join(c.DataDir, "raw")
}

// EnsureDataDirs creates the local data directories if absent.
func (c *Config) EnsureDataDirs() error {
	for _, dir := range []string{c.DataDir, c.RawDataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}
	return nil
}

// RequireDatabase validates that a warehouse connection string is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required (set it in the environment or .env)", briza.ErrInvalidConfig)
	}
	return nil
}

// RequireKaggle validates that Kaggle API credentials are configured.
func (c *Config) RequireKaggle() error {
	if c.KaggleUsername == "" || c.KaggleKey == "" {
		return fmt.Errorf("%w: KAGGLE_USERNAME and KAGGLE_KEY are required (set them in the environment or .env)", briza.ErrInvalidConfig)
	}
	return nil
}

// RequireBucket validates that an object-storage bucket is configured.
func (c *Config) RequireBucket() error {
	if c.GCSBucket == "" {
		return fmt.Errorf("%w: GCS_BUCKET is required (set it in the environment or .env)", briza.ErrInvalidConfig)
	}
	return nil
}
