package search

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

func TestBuildDocument(t *testing.T) {
	updated := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	clinic := &entities.ClinicRecord{
		ID:      "chelsea-express",
		Name:    "Chelsea Sexual Health Clinic",
		Address: "303 Ninth Ave",
		Borough: entities.BoroughManhattan,
		Services: map[string]bool{
			entities.ServiceSTITesting: true,
			entities.ServiceHIVTesting: true,
			entities.ServicePrEP:       false,
		},
		Insurance: map[string]bool{
			entities.InsuranceNoInsuranceOK: true,
		},
		Access: map[string]bool{
			entities.AccessWalkIn: true,
		},
		InsurancePlans: []string{"Medicaid"},
		IsActive:       true,
		UpdatedAt:      updated,
	}

	doc := BuildDocument(clinic)

	assert.Equal(t, "chelsea-express", doc["id"])
	assert.Equal(t, "Chelsea Sexual Health Clinic", doc["name"])
	assert.Equal(t, "Manhattan", doc["borough"])
	assert.Equal(t, updated.Unix(), doc["updated_at"])
	assert.Equal(t, false, doc["is_virtual"])

	services, ok := doc["services"].([]string)
	require.True(t, ok)
	sort.Strings(services)
	assert.Equal(t, []string{entities.ServiceHIVTesting, entities.ServiceSTITesting}, services)

	assert.Equal(t, []string{entities.AccessWalkIn}, doc["access"])
}

func TestBuildDocumentVirtualClinic(t *testing.T) {
	clinic := &entities.ClinicRecord{
		ID:        "tele-prep",
		Name:      "TelePrEP NY",
		IsVirtual: true,
		IsActive:  true,
	}

	doc := BuildDocument(clinic)

	assert.Equal(t, true, doc["is_virtual"])
	assert.Equal(t, "", doc["borough"])
	assert.Empty(t, doc["services"])
}
