package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/database"
	"github.com/healthmap-nyc/clinic-directory/internal/adapters/events"
	"github.com/healthmap-nyc/clinic-directory/internal/adapters/search"
	appservices "github.com/healthmap-nyc/clinic-directory/internal/application/services"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/providers"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/postgres"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/redis"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/typesense"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
	"github.com/healthmap-nyc/clinic-directory/pkg/config"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

// The indexer does a full reindex on startup, then follows the clinic update
// channel and keeps the search collection in step with the database.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.Server.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}
	if err := typesenseClient.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Typesense schema")
	}

	clinicRepo := database.NewClinicAdapter(pgClient)
	searchRepo := search.NewTypesenseAdapter(typesenseClient)
	clinicService := appservices.NewClinicService(clinicRepo, searchRepo, nil)

	indexed, err := clinicService.ReindexAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("full reindex failed")
	}
	logger.Info().Int("clinics", indexed).Msg("full reindex complete")

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, exiting after full reindex")
		return
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	updates, err := eventBus.Subscribe(ctx, providers.EventChannelClinicUpdates)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to subscribe to clinic updates")
	}
	logger.Info().Str("channel", providers.EventChannelClinicUpdates).Msg("following clinic updates")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			logger.Info().Msg("indexer shutting down")
			return
		case event, ok := <-updates:
			if !ok {
				logger.Info().Msg("update channel closed")
				return
			}
			handleEvent(ctx, logger, clinicRepo, searchRepo, event)
		}
	}
}

func handleEvent(
	ctx context.Context,
	logger *zerolog.Logger,
	clinicRepo repositories.ClinicRepository,
	searchRepo repositories.ClinicSearchRepository,
	event *entities.ClinicEvent,
) {
	if event.ClinicID == "" {
		return
	}

	switch event.EventType {
	case entities.ClinicEventTypeRemoved:
		if err := searchRepo.Delete(ctx, event.ClinicID); err != nil {
			logger.Warn().Err(err).Str("clinic_id", event.ClinicID).Msg("failed to remove clinic from index")
			return
		}
		logger.Info().Str("clinic_id", event.ClinicID).Msg("removed clinic from index")
	case entities.ClinicEventTypeUpdated:
		clinic, err := clinicRepo.GetByID(ctx, event.ClinicID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				// Deactivated between publish and fetch; drop it from the index.
				if delErr := searchRepo.Delete(ctx, event.ClinicID); delErr != nil {
					logger.Warn().Err(delErr).Str("clinic_id", event.ClinicID).Msg("failed to remove stale clinic from index")
				}
				return
			}
			logger.Warn().Err(err).Str("clinic_id", event.ClinicID).Msg("failed to load clinic for indexing")
			return
		}
		if err := searchRepo.Index(ctx, clinic); err != nil {
			logger.Warn().Err(err).Str("clinic_id", event.ClinicID).Msg("failed to index clinic")
			return
		}
		logger.Info().Str("clinic_id", event.ClinicID).Msg("indexed clinic")
	}
}
