package services

import (
	"context"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/snapshot"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/providers"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

// SnapshotService publishes the directory as a GeoJSON FeatureCollection and
// loads such snapshots back, which is how seed data enters a fresh deploy.
type SnapshotService struct {
	repo     repositories.ClinicRepository
	eventBus providers.EventBus
}

// NewSnapshotService creates a new snapshot service. eventBus may be nil.
func NewSnapshotService(repo repositories.ClinicRepository, eventBus providers.EventBus) *SnapshotService {
	return &SnapshotService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// Export builds a FeatureCollection from every active clinic and writes it to
// path, then announces the refresh.
func (s *SnapshotService) Export(ctx context.Context, path string) (int, error) {
	ctx, span := observability.StartSpan(ctx, "SnapshotService.Export")
	defer span.End()

	clinics, err := s.repo.All(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	fc := snapshot.Build(clinics)
	if err := fc.WriteFile(path); err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	if s.eventBus != nil {
		event := entities.NewClinicEvent("", entities.ClinicEventTypeSnapshotRefreshed)
		if err := s.eventBus.Publish(ctx, providers.EventChannelSnapshot, event); err != nil {
			observability.GetLogger().Warn().Err(err).Msg("failed to publish snapshot event")
		}
	}

	observability.GetLogger().Info().Int("clinics", len(clinics)).Str("path", path).Msg("exported directory snapshot")
	return len(clinics), nil
}

// Import loads a FeatureCollection from path and upserts every record. New
// records are created; existing ones are overwritten.
func (s *SnapshotService) Import(ctx context.Context, path string) (int, error) {
	ctx, span := observability.StartSpan(ctx, "SnapshotService.Import")
	defer span.End()

	fc, err := snapshot.ReadFile(path)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	imported := 0
	for _, clinic := range fc.Clinics() {
		if clinic.ID == "" || clinic.Name == "" {
			observability.GetLogger().Warn().Str("clinic_id", clinic.ID).Msg("skipping snapshot record without id or name")
			continue
		}
		clinic.IsActive = true

		err := s.repo.Update(ctx, clinic)
		if apperrors.IsNotFound(err) {
			err = s.repo.Create(ctx, clinic)
		}
		if err != nil {
			observability.RecordError(span, err)
			return imported, err
		}
		imported++
	}

	observability.GetLogger().Info().Int("clinics", imported).Str("path", path).Msg("imported directory snapshot")
	return imported, nil
}
