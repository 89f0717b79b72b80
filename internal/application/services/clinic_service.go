package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/providers"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/hours"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

// ClinicService handles write-side business logic for clinic records.
type ClinicService struct {
	repo       repositories.ClinicRepository
	searchRepo repositories.ClinicSearchRepository
	eventBus   providers.EventBus
}

// NewClinicService creates a new clinic service. searchRepo and eventBus may
// be nil in trimmed deployments (the export CLI runs without either).
func NewClinicService(
	repo repositories.ClinicRepository,
	searchRepo repositories.ClinicSearchRepository,
	eventBus providers.EventBus,
) *ClinicService {
	return &ClinicService{
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
	}
}

// Create validates and creates a clinic record, indexes it and announces the
// change. Raw hour text, if present, is parsed into structured entries first.
func (s *ClinicService) Create(ctx context.Context, clinic *entities.ClinicRecord, hoursText string) error {
	if err := validateClinic(clinic); err != nil {
		return err
	}

	if clinic.ID == "" {
		clinic.ID = uuid.NewString()
	}
	now := time.Now()
	clinic.CreatedAt = now
	clinic.UpdatedAt = now
	clinic.IsActive = true

	if hoursText != "" {
		clinic.Hours = hours.Parse(hoursText)
	} else {
		clinic.Hours = hours.Normalize(clinic.Hours)
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return err
	}

	s.index(ctx, clinic)
	s.announce(ctx, clinic.ID, entities.ClinicEventTypeUpdated)
	return nil
}

// GetByID retrieves a clinic by ID
func (s *ClinicService) GetByID(ctx context.Context, id string) (*entities.ClinicRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates and updates a clinic record, reindexes it and announces
// the change.
func (s *ClinicService) Update(ctx context.Context, clinic *entities.ClinicRecord, hoursText string) error {
	if err := validateClinic(clinic); err != nil {
		return err
	}
	if clinic.ID == "" {
		return apperrors.NewValidationError("clinic id is required")
	}

	if hoursText != "" {
		clinic.Hours = hours.Parse(hoursText)
	} else {
		clinic.Hours = hours.Normalize(clinic.Hours)
	}

	if err := s.repo.Update(ctx, clinic); err != nil {
		return err
	}

	s.index(ctx, clinic)
	s.announce(ctx, clinic.ID, entities.ClinicEventTypeUpdated)
	return nil
}

// Delete removes a clinic record, drops it from the search index and
// announces the removal.
func (s *ClinicService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			observability.GetLogger().Warn().Err(err).Str("clinic_id", id).Msg("failed to remove clinic from search index")
		}
	}

	s.announce(ctx, id, entities.ClinicEventTypeRemoved)
	return nil
}

// List retrieves clinics matching a filter
func (s *ClinicService) List(ctx context.Context, f repositories.ClinicFilter) ([]*entities.ClinicRecord, error) {
	return s.repo.List(ctx, f)
}

// ReindexAll pushes every active clinic into the search index. The indexer
// runs this on startup before switching to event-driven updates.
func (s *ClinicService) ReindexAll(ctx context.Context) (int, error) {
	if s.searchRepo == nil {
		return 0, apperrors.NewInternalError("no search repository configured", nil)
	}

	clinics, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, clinic := range clinics {
		if err := s.searchRepo.Index(ctx, clinic); err != nil {
			observability.GetLogger().Warn().Err(err).Str("clinic_id", clinic.ID).Msg("failed to index clinic")
			continue
		}
		indexed++
	}
	return indexed, nil
}

func (s *ClinicService) index(ctx context.Context, clinic *entities.ClinicRecord) {
	if s.searchRepo == nil {
		return
	}
	// Index failures are logged, not returned: the database is the source of
	// truth and the indexer reconciles on its next full pass.
	if err := s.searchRepo.Index(ctx, clinic); err != nil {
		observability.GetLogger().Warn().Err(err).Str("clinic_id", clinic.ID).Msg("failed to index clinic")
	}
}

func (s *ClinicService) announce(ctx context.Context, clinicID string, eventType entities.ClinicEventType) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewClinicEvent(clinicID, eventType)
	if err := s.eventBus.Publish(ctx, providers.EventChannelClinicUpdates, event); err != nil {
		observability.GetLogger().Warn().Err(err).Str("clinic_id", clinicID).Msg("failed to publish clinic event")
	}
}

func validateClinic(clinic *entities.ClinicRecord) error {
	if clinic == nil {
		return apperrors.NewValidationError("clinic is required")
	}
	if strings.TrimSpace(clinic.Name) == "" {
		return apperrors.NewValidationError("clinic name is required")
	}
	if clinic.Borough != "" {
		known := false
		for _, b := range entities.Boroughs {
			if clinic.Borough == b {
				known = true
				break
			}
		}
		if !known {
			return apperrors.NewValidationError("unknown borough: " + string(clinic.Borough))
		}
	}
	if !clinic.IsVirtual && (clinic.Latitude == nil) != (clinic.Longitude == nil) {
		return apperrors.NewValidationError("latitude and longitude must be set together")
	}
	return nil
}
