package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/filter"
	"github.com/healthmap-nyc/clinic-directory/internal/hours"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
)

// holidayLookaheadDays bounds the "closed soon for a holiday" banner.
const holidayLookaheadDays = 7

// ClinicView is a clinic record decorated with computed display state.
type ClinicView struct {
	*entities.ClinicRecord

	// OpenStatus is nil when the clinic's hours cannot be evaluated.
	OpenStatus *entities.OpenStatus `json:"open_status,omitempty"`

	Schedule []hours.ScheduleGroup `json:"schedule,omitempty"`
}

// QueryResult is a filtered directory page plus its metadata.
type QueryResult struct {
	Clinics []*ClinicView `json:"clinics"`

	// Total is the directory size before filtering.
	Total   int `json:"total"`
	Matched int `json:"matched"`

	// UpcomingHoliday is set when a major holiday falls within the next week;
	// the UI shows a "call ahead" banner off it.
	UpcomingHoliday *hours.Holiday `json:"upcoming_holiday,omitempty"`
}

// ClinicQueryService handles read-only directory queries: full-text search,
// predicate filtering and open-status decoration.
type ClinicQueryService struct {
	repo       repositories.ClinicRepository
	searchRepo repositories.ClinicSearchRepository
	metrics    *observability.Metrics

	// now is swappable so tests can pin the evaluation time.
	now func() time.Time
}

// NewClinicQueryService creates a new clinic query service. searchRepo and
// metrics may be nil; search then falls back to substring matching inside the
// filter engine.
func NewClinicQueryService(
	repo repositories.ClinicRepository,
	searchRepo repositories.ClinicSearchRepository,
	metrics *observability.Metrics,
) *ClinicQueryService {
	return &ClinicQueryService{
		repo:       repo,
		searchRepo: searchRepo,
		metrics:    metrics,
		now:        time.Now,
	}
}

// WithClock overrides the service clock.
func (s *ClinicQueryService) WithClock(now func() time.Time) *ClinicQueryService {
	s.now = now
	return s
}

// Query evaluates the filter spec over the directory and returns decorated
// matches. Clinics are returned in repository order (name order), which keeps
// results stable across identical queries.
func (s *ClinicQueryService) Query(ctx context.Context, spec *entities.FilterSpec) (*QueryResult, error) {
	ctx, span := observability.StartSpan(ctx, "ClinicQueryService.Query")
	defer span.End()

	if spec == nil {
		spec = &entities.FilterSpec{}
	}

	clinics, engineSpec, err := s.candidates(ctx, spec)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	now := s.now()
	views := make([]*ClinicView, 0, len(clinics))
	for _, clinic := range clinics {
		if !filter.Matches(clinic, engineSpec, now) {
			continue
		}
		views = append(views, s.decorate(clinic, now))
	}

	observability.SetSpanAttributes(span,
		attribute.Int("directory.total", len(clinics)),
		attribute.Int("directory.matched", len(views)),
	)
	if s.metrics != nil {
		observability.RecordFilterEval(ctx, s.metrics, len(views), len(clinics))
	}

	return &QueryResult{
		Clinics:         views,
		Total:           len(clinics),
		Matched:         len(views),
		UpcomingHoliday: hours.UpcomingHoliday(now, holidayLookaheadDays),
	}, nil
}

// GetClinic returns one decorated clinic by ID.
func (s *ClinicQueryService) GetClinic(ctx context.Context, id string) (*ClinicView, error) {
	ctx, span := observability.StartSpan(ctx, "ClinicQueryService.GetClinic")
	defer span.End()

	clinic, err := s.repo.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	return s.decorate(clinic, s.now()), nil
}

// OpenStatus evaluates a clinic's open state at the service clock.
func (s *ClinicQueryService) OpenStatus(ctx context.Context, id string) (*entities.OpenStatus, error) {
	clinic, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return hours.Status(clinic.Hours, s.now()), nil
}

// candidates picks the record set the filter engine runs over. With a search
// backend, the query term resolves typo-tolerantly to an ID set and is
// cleared from the engine spec; without one, the engine's substring match on
// the full directory applies.
func (s *ClinicQueryService) candidates(ctx context.Context, spec *entities.FilterSpec) ([]*entities.ClinicRecord, *entities.FilterSpec, error) {
	query := spec.SearchQuery
	if query == "" || s.searchRepo == nil {
		clinics, err := s.repo.All(ctx)
		return clinics, spec, err
	}

	ids, err := s.searchRepo.Search(ctx, query, 0)
	if err != nil {
		// Search backend down: degrade to substring matching.
		observability.GetLogger().Warn().Err(err).Msg("search backend unavailable, falling back to substring match")
		clinics, err := s.repo.All(ctx)
		return clinics, spec, err
	}

	clinics, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	engineSpec := *spec
	engineSpec.SearchQuery = ""
	return clinics, &engineSpec, nil
}

func (s *ClinicQueryService) decorate(clinic *entities.ClinicRecord, now time.Time) *ClinicView {
	return &ClinicView{
		ClinicRecord: clinic,
		OpenStatus:   hours.Status(clinic.Hours, now),
		Schedule:     hours.FormatSchedule(clinic.Hours),
	}
}
