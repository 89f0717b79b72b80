package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/database"
	appservices "github.com/healthmap-nyc/clinic-directory/internal/application/services"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/postgres"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
	"github.com/healthmap-nyc/clinic-directory/pkg/config"
)

// Writes the directory to a GeoJSON FeatureCollection on disk, or loads one
// back into the database with -import (the seed path for new environments).
func main() {
	importMode := flag.Bool("import", false, "load clinics from the snapshot file instead of writing it")
	path := flag.String("path", "", "snapshot file path (defaults to SNAPSHOT_PATH)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-export", cfg.Server.Env)
	logger := observability.GetLogger()

	target := cfg.Snapshot.Path
	if *path != "" {
		target = *path
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	clinicRepo := database.NewClinicAdapter(pgClient)
	snapshotService := appservices.NewSnapshotService(clinicRepo, nil)

	ctx := context.Background()
	if *importMode {
		count, err := snapshotService.Import(ctx, target)
		if err != nil {
			logger.Fatal().Err(err).Str("path", target).Msg("snapshot import failed")
		}
		logger.Info().Int("clinics", count).Str("path", target).Msg("snapshot imported")
		return
	}

	count, err := snapshotService.Export(ctx, target)
	if err != nil {
		logger.Fatal().Err(err).Str("path", target).Msg("snapshot export failed")
	}
	logger.Info().Int("clinics", count).Str("path", target).Msg("snapshot written")
}
