package snapshot

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

func floatPtr(v float64) *float64 { return &v }

func sampleClinics() []*entities.ClinicRecord {
	return []*entities.ClinicRecord{
		{
			ID:        "chelsea-express",
			Name:      "Chelsea Sexual Health Clinic",
			Borough:   entities.BoroughManhattan,
			Latitude:  floatPtr(40.7465),
			Longitude: floatPtr(-74.0014),
			Services:  map[string]bool{entities.ServiceSTITesting: true},
			Hours: []entities.HourEntry{
				{
					Department: "General",
					Days:       []entities.Weekday{entities.Monday, entities.Tuesday},
					Open:       "09:00",
					Close:      "17:00",
				},
			},
			IsActive: true,
		},
		{
			ID:        "tele-prep",
			Name:      "TelePrEP NY",
			IsVirtual: true,
			Services:  map[string]bool{entities.ServicePrEP: true},
			IsActive:  true,
		},
	}
}

func TestBuildGeometry(t *testing.T) {
	fc := Build(sampleClinics())

	require.Len(t, fc.Features, 2)
	assert.Equal(t, "FeatureCollection", fc.Type)

	physical := fc.Features[0]
	require.NotNil(t, physical.Geometry)
	assert.Equal(t, "Point", physical.Geometry.Type)
	assert.Equal(t, -74.0014, physical.Geometry.Coordinates[0])
	assert.Equal(t, 40.7465, physical.Geometry.Coordinates[1])

	virtual := fc.Features[1]
	assert.Nil(t, virtual.Geometry)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fc := Build(sampleClinics())

	var buf bytes.Buffer
	require.NoError(t, fc.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)

	clinics := decoded.Clinics()
	require.Len(t, clinics, 2)

	assert.Equal(t, "chelsea-express", clinics[0].ID)
	require.NotNil(t, clinics[0].Latitude)
	assert.Equal(t, 40.7465, *clinics[0].Latitude)
	require.Len(t, clinics[0].Hours, 1)
	assert.Equal(t, "09:00", clinics[0].Hours[0].Open)

	assert.Equal(t, "tele-prep", clinics[1].ID)
	assert.True(t, clinics[1].IsVirtual)
	assert.Nil(t, clinics[1].Latitude)
}

func TestVirtualClinicHasNullGeometry(t *testing.T) {
	fc := Build(sampleClinics())

	var buf bytes.Buffer
	require.NoError(t, fc.Encode(&buf))

	assert.Contains(t, buf.String(), `"geometry": null`)
}

func TestDecodeRejectsWrongType(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"type":"Feature","features":[]}`))
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"type":`))
	assert.Error(t, err)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.geojson")

	fc := Build(sampleClinics())
	require.NoError(t, fc.WriteFile(path))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Clinics(), 2)
}
