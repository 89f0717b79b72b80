package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/cache"
	"github.com/healthmap-nyc/clinic-directory/internal/adapters/database"
	"github.com/healthmap-nyc/clinic-directory/internal/adapters/events"
	"github.com/healthmap-nyc/clinic-directory/internal/adapters/search"
	"github.com/healthmap-nyc/clinic-directory/internal/api/handlers"
	"github.com/healthmap-nyc/clinic-directory/internal/api/middleware"
	"github.com/healthmap-nyc/clinic-directory/internal/api/routes"
	appservices "github.com/healthmap-nyc/clinic-directory/internal/application/services"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/providers"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/postgres"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/redis"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/typesense"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
	queryservices "github.com/healthmap-nyc/clinic-directory/internal/query/services"
	"github.com/healthmap-nyc/clinic-directory/pkg/config"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; the API degrades to uncached reads without it.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("continuing without Redis")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Typesense is optional; search falls back to substring matching.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("continuing without Typesense")
		typesenseClient = nil
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	baseClinicAdapter := database.NewClinicAdapter(pgClient)
	var clinicRepo repositories.ClinicRepository
	if cacheProvider != nil {
		clinicRepo = database.NewCachedClinicAdapter(baseClinicAdapter, cacheProvider)
	} else {
		clinicRepo = baseClinicAdapter
	}

	correctionRepo := database.NewCorrectionAdapter(pgClient)

	var searchRepo repositories.ClinicSearchRepository
	if typesenseClient != nil {
		if err := typesenseClient.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
	}

	clinicService := appservices.NewClinicService(clinicRepo, searchRepo, eventBus)
	correctionService := appservices.NewCorrectionService(correctionRepo, clinicRepo)
	queryService := queryservices.NewClinicQueryService(clinicRepo, searchRepo, metrics)

	clinicHandler := handlers.NewClinicHandler(queryService, clinicService)
	correctionHandler := handlers.NewCorrectionHandler(correctionService)
	snapshotHandler := handlers.NewSnapshotHandler(clinicRepo)
	filterOptionsHandler := handlers.NewFilterOptionsHandler()

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		clinicHandler,
		correctionHandler,
		snapshotHandler,
		filterOptionsHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing event bus")
		}
	}

	logger.Info().Msg("server stopped")
}
