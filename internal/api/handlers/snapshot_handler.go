package handlers

import (
	"net/http"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/snapshot"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
)

// SnapshotHandler serves the directory as a GeoJSON FeatureCollection,
// the format the map frontend and downstream mirrors consume.
type SnapshotHandler struct {
	repo repositories.ClinicRepository
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(repo repositories.ClinicRepository) *SnapshotHandler {
	return &SnapshotHandler{repo: repo}
}

// GetSnapshot handles GET /api/snapshot
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.repo.All(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	snapshot.Build(clinics).Encode(w)
}

// FilterOptionsHandler serves the token vocabulary the directory UI builds
// its filter controls from.
type FilterOptionsHandler struct{}

// NewFilterOptionsHandler creates a new filter options handler
func NewFilterOptionsHandler() *FilterOptionsHandler {
	return &FilterOptionsHandler{}
}

// GetFilterOptions handles GET /api/filters/options
func (h *FilterOptionsHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": []string{
			entities.ServiceSTITesting,
			entities.ServiceHIVTesting,
			entities.ServicePrEP,
			entities.ServicePEP,
			entities.ServiceContraception,
			entities.ServiceAbortion,
			entities.ServiceGenderAffirming,
			entities.ServiceVaccines,
		},
		"insurance": []string{
			entities.InsuranceMedicaid,
			entities.InsuranceMedicare,
			entities.InsuranceSlidingScale,
			entities.InsuranceNoInsuranceOK,
		},
		"access": []string{
			entities.AccessWalkIn,
			entities.AccessAppointmentOnly,
			entities.AccessExpressTesting,
		},
		"boroughs":        entities.Boroughs,
		"late_term_weeks": entities.LateTermWeeks,
	})
}
