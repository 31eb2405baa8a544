// The worker binary runs geocode batches on a fixed interval, for
// deployments without an external scheduler hitting the trigger endpoint.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ergomap/geocoder/internal/config"
	"github.com/ergomap/geocoder/internal/geocoding"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/ergomap/geocoder/internal/runner"
	"github.com/ergomap/geocoder/internal/storage/postgres"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromEnv(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load database config")
	}

	db, err := postgres.ConnectDB(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := postgres.MigrateModels(db, &models.Location{}, &models.GeocodeJob{}); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	jobRepo := postgres.NewJobRepository(db)
	locationRepo := postgres.NewLocationRepository(db)

	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}

	registryOpts := []geocoding.RegistryOption{geocoding.WithRegistryHTTPClient(httpClient)}
	if cfg.RegistryTokenURL != "" {
		registryOpts = append(registryOpts, geocoding.WithRegistryAuth(
			cfg.RegistryTokenURL, cfg.RegistryClientID, cfg.RegistryClientSecret))
	}
	registry := geocoding.NewRegistryClient(cfg.RegistryBaseURL, registryOpts...)
	mapbox := geocoding.NewMapboxClient(cfg.MapboxBaseURL, cfg.MapboxToken,
		geocoding.WithMapboxHTTPClient(httpClient))

	resolver := geocoding.NewResolver(log.Logger, registry, mapbox)

	batchRunner := runner.New(jobRepo, locationRepo, resolver,
		cfg.BatchSize, cfg.StaleAfter, log.Logger)

	log.Info().Dur("interval", cfg.RunInterval).Msg("worker started")

	ticker := time.NewTicker(cfg.RunInterval)
	defer ticker.Stop()

	for {
		if _, err := batchRunner.Run(ctx); err != nil {
			log.Error().Err(err).Msg("batch run failed")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Info().Msg("shutdown complete")
			return
		}
	}
}
