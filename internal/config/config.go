package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries everything outside the database layer: HTTP listen address,
// the runner trigger secret, batch tuning, and the two geocoding providers.
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS,default=:8080"`

	// Shared secret expected in the X-Runner-Secret header of the batch
	// trigger endpoint. Empty means the endpoint is unusable (500).
	RunnerSecret string `env:"RUNNER_SECRET"`

	BatchSize   int           `env:"RUNNER_BATCH_SIZE,default=25"`
	StaleAfter  time.Duration `env:"RUNNER_STALE_AFTER,default=30m"`
	RunInterval time.Duration `env:"RUNNER_INTERVAL,default=5m"`

	RegistryBaseURL      string `env:"REGISTRY_BASE_URL,default=https://geo.api.belgium.be"`
	RegistryTokenURL     string `env:"REGISTRY_TOKEN_URL"`
	RegistryClientID     string `env:"REGISTRY_CLIENT_ID"`
	RegistryClientSecret string `env:"REGISTRY_CLIENT_SECRET"`

	MapboxBaseURL string `env:"MAPBOX_BASE_URL,default=https://api.mapbox.com"`
	MapboxToken   string `env:"MAPBOX_ACCESS_TOKEN"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT,default=10s"`
}

// LoadFromEnv reads and validates the application config from the process
// environment.
func LoadFromEnv(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.BatchSize < 1 {
		errs = append(errs, "RUNNER_BATCH_SIZE must be positive")
	}

	if cfg.StaleAfter <= 0 {
		errs = append(errs, "RUNNER_STALE_AFTER must be positive")
	}

	if cfg.RunInterval <= 0 {
		errs = append(errs, "RUNNER_INTERVAL must be positive")
	}

	if cfg.ProviderTimeout <= 0 {
		errs = append(errs, "PROVIDER_TIMEOUT must be positive")
	}

	if strings.TrimSpace(cfg.RegistryBaseURL) == "" {
		errs = append(errs, "REGISTRY_BASE_URL is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}
