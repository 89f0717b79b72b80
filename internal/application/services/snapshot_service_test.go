package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/snapshot"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clinics.geojson")

	lat, lon := 40.7465, -74.0014
	source := newMemClinicRepo()
	source.records["chelsea"] = &entities.ClinicRecord{
		ID:        "chelsea",
		Name:      "Chelsea Sexual Health Clinic",
		Borough:   entities.BoroughManhattan,
		Latitude:  &lat,
		Longitude: &lon,
		Hours: []entities.HourEntry{
			{Department: entities.DefaultDepartment, Days: []entities.Weekday{entities.Monday}, Open: "09:00", Close: "17:00"},
		},
		IsActive: true,
	}
	source.records["tele"] = &entities.ClinicRecord{
		ID:        "tele",
		Name:      "TelePrEP NY",
		IsVirtual: true,
		IsActive:  true,
	}

	bus := &memEventBus{}
	exported, err := NewSnapshotService(source, bus).Export(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, exported)

	require.Len(t, bus.published, 1)
	assert.Equal(t, entities.ClinicEventTypeSnapshotRefreshed, bus.published[0].EventType)

	target := newMemClinicRepo()
	imported, err := NewSnapshotService(target, nil).Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	chelsea, err := target.GetByID(ctx, "chelsea")
	require.NoError(t, err)
	require.NotNil(t, chelsea.Latitude)
	assert.Equal(t, 40.7465, *chelsea.Latitude)
	require.Len(t, chelsea.Hours, 1)
	assert.Equal(t, "09:00", chelsea.Hours[0].Open)

	tele, err := target.GetByID(ctx, "tele")
	require.NoError(t, err)
	assert.True(t, tele.IsVirtual)
	assert.Nil(t, tele.Latitude)
}

func TestSnapshotImportUpsertsExisting(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clinics.geojson")

	fc := snapshot.Build([]*entities.ClinicRecord{
		{ID: "chelsea", Name: "Chelsea Sexual Health Clinic (renamed)", IsVirtual: true, IsActive: true},
	})
	require.NoError(t, fc.WriteFile(path))

	repo := newMemClinicRepo()
	repo.records["chelsea"] = &entities.ClinicRecord{ID: "chelsea", Name: "Chelsea Sexual Health Clinic"}

	imported, err := NewSnapshotService(repo, nil).Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	clinic, err := repo.GetByID(ctx, "chelsea")
	require.NoError(t, err)
	assert.Equal(t, "Chelsea Sexual Health Clinic (renamed)", clinic.Name)
}

func TestSnapshotImportSkipsRecordsWithoutID(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clinics.geojson")

	fc := snapshot.Build([]*entities.ClinicRecord{
		{ID: "", Name: "Nameless", IsVirtual: true},
		{ID: "ok", Name: "Real Clinic", IsVirtual: true},
	})
	require.NoError(t, fc.WriteFile(path))

	repo := newMemClinicRepo()
	imported, err := NewSnapshotService(repo, nil).Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}
