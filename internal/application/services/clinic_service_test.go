package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/providers"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

type memClinicRepo struct {
	records map[string]*entities.ClinicRecord
}

func newMemClinicRepo() *memClinicRepo {
	return &memClinicRepo{records: map[string]*entities.ClinicRecord{}}
}

func (r *memClinicRepo) Create(ctx context.Context, clinic *entities.ClinicRecord) error {
	r.records[clinic.ID] = clinic
	return nil
}

func (r *memClinicRepo) GetByID(ctx context.Context, id string) (*entities.ClinicRecord, error) {
	clinic, ok := r.records[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("clinic not found")
	}
	return clinic, nil
}

func (r *memClinicRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.ClinicRecord, error) {
	result := []*entities.ClinicRecord{}
	for _, id := range ids {
		if clinic, ok := r.records[id]; ok {
			result = append(result, clinic)
		}
	}
	return result, nil
}

func (r *memClinicRepo) Update(ctx context.Context, clinic *entities.ClinicRecord) error {
	if _, ok := r.records[clinic.ID]; !ok {
		return apperrors.NewNotFoundError("clinic not found")
	}
	r.records[clinic.ID] = clinic
	return nil
}

func (r *memClinicRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return apperrors.NewNotFoundError("clinic not found")
	}
	delete(r.records, id)
	return nil
}

func (r *memClinicRepo) List(ctx context.Context, f repositories.ClinicFilter) ([]*entities.ClinicRecord, error) {
	return r.all(), nil
}

func (r *memClinicRepo) All(ctx context.Context) ([]*entities.ClinicRecord, error) {
	return r.all(), nil
}

func (r *memClinicRepo) all() []*entities.ClinicRecord {
	result := []*entities.ClinicRecord{}
	for _, clinic := range r.records {
		result = append(result, clinic)
	}
	return result
}

type memSearchRepo struct {
	indexed map[string]*entities.ClinicRecord
	deleted []string
}

func newMemSearchRepo() *memSearchRepo {
	return &memSearchRepo{indexed: map[string]*entities.ClinicRecord{}}
}

func (r *memSearchRepo) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return nil, nil
}

func (r *memSearchRepo) Index(ctx context.Context, clinic *entities.ClinicRecord) error {
	r.indexed[clinic.ID] = clinic
	return nil
}

func (r *memSearchRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type memEventBus struct {
	published []*entities.ClinicEvent
}

func (b *memEventBus) Publish(ctx context.Context, channel string, event *entities.ClinicEvent) error {
	b.published = append(b.published, event)
	return nil
}

func (b *memEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ClinicEvent, error) {
	return nil, nil
}

func (b *memEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }
func (b *memEventBus) Close() error                                          { return nil }

var _ providers.EventBus = (*memEventBus)(nil)

func TestClinicServiceCreate(t *testing.T) {
	repo := newMemClinicRepo()
	search := newMemSearchRepo()
	bus := &memEventBus{}
	svc := NewClinicService(repo, search, bus)

	clinic := &entities.ClinicRecord{
		Name:    "Chelsea Sexual Health Clinic",
		Borough: entities.BoroughManhattan,
	}

	err := svc.Create(context.Background(), clinic, "Mon-Fri 9am-5pm")
	require.NoError(t, err)

	assert.NotEmpty(t, clinic.ID)
	assert.True(t, clinic.IsActive)

	// Raw hour text became structured entries.
	require.Len(t, clinic.Hours, 1)
	assert.Equal(t, "09:00", clinic.Hours[0].Open)
	assert.Equal(t, "17:00", clinic.Hours[0].Close)
	assert.Len(t, clinic.Hours[0].Days, 5)

	assert.Contains(t, search.indexed, clinic.ID)
	require.Len(t, bus.published, 1)
	assert.Equal(t, entities.ClinicEventTypeUpdated, bus.published[0].EventType)
}

func TestClinicServiceCreateRejectsMissingName(t *testing.T) {
	svc := NewClinicService(newMemClinicRepo(), nil, nil)

	err := svc.Create(context.Background(), &entities.ClinicRecord{}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClinicServiceCreateRejectsUnknownBorough(t *testing.T) {
	svc := NewClinicService(newMemClinicRepo(), nil, nil)

	err := svc.Create(context.Background(), &entities.ClinicRecord{
		Name:    "Test Clinic",
		Borough: "Yonkers",
	}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClinicServiceCreateRejectsHalfCoordinates(t *testing.T) {
	svc := NewClinicService(newMemClinicRepo(), nil, nil)
	lat := 40.7

	err := svc.Create(context.Background(), &entities.ClinicRecord{
		Name:     "Test Clinic",
		Latitude: &lat,
	}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClinicServiceDelete(t *testing.T) {
	repo := newMemClinicRepo()
	search := newMemSearchRepo()
	bus := &memEventBus{}
	svc := NewClinicService(repo, search, bus)

	clinic := &entities.ClinicRecord{Name: "Test Clinic"}
	require.NoError(t, svc.Create(context.Background(), clinic, ""))

	bus.published = nil
	require.NoError(t, svc.Delete(context.Background(), clinic.ID))

	assert.Contains(t, search.deleted, clinic.ID)
	require.Len(t, bus.published, 1)
	assert.Equal(t, entities.ClinicEventTypeRemoved, bus.published[0].EventType)
}

func TestClinicServiceReindexAll(t *testing.T) {
	repo := newMemClinicRepo()
	search := newMemSearchRepo()
	svc := NewClinicService(repo, search, nil)

	require.NoError(t, svc.Create(context.Background(), &entities.ClinicRecord{Name: "A"}, ""))
	require.NoError(t, svc.Create(context.Background(), &entities.ClinicRecord{Name: "B"}, ""))

	search.indexed = map[string]*entities.ClinicRecord{}
	indexed, err := svc.ReindexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, indexed)
	assert.Len(t, search.indexed, 2)
}
