package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/ergomap/geocoder/internal/config"
	"github.com/ergomap/geocoder/internal/geocoding"
	"github.com/ergomap/geocoder/internal/location"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/ergomap/geocoder/internal/runner"
	"github.com/ergomap/geocoder/internal/storage/postgres"
	"github.com/ergomap/geocoder/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx := context.Background()

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

	locationService := location.NewService(locationRepo, jobRepo)
	locationHandler := location.NewHandler(locationService)
	runnerHandler := runner.NewHandler(batchRunner)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/locations", locationHandler.Create)
	r.GET("/locations/:id", locationHandler.Get)
	r.PUT("/locations/:id/address", locationHandler.UpdateAddress)

	r.POST("/internal/geocoding/run",
		middleware.SharedSecret(cfg.RunnerSecret), runnerHandler.Trigger)

	log.Info().Str("address", cfg.ServerAddress).Msg("starting api server")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
