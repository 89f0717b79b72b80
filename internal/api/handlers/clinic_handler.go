package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	appservices "github.com/healthmap-nyc/clinic-directory/internal/application/services"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	queryservices "github.com/healthmap-nyc/clinic-directory/internal/query/services"
)

// ClinicHandler handles clinic-related HTTP requests
type ClinicHandler struct {
	querySvc  *queryservices.ClinicQueryService
	clinicSvc *appservices.ClinicService
}

// NewClinicHandler creates a new clinic handler
func NewClinicHandler(querySvc *queryservices.ClinicQueryService, clinicSvc *appservices.ClinicService) *ClinicHandler {
	return &ClinicHandler{
		querySvc:  querySvc,
		clinicSvc: clinicSvc,
	}
}

// QueryClinics handles GET /api/clinics/query
func (h *ClinicHandler) QueryClinics(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.querySvc.Query(r.Context(), spec)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetClinic handles GET /api/clinics/{id}
func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("id")
	if clinicID == "" {
		respondWithError(w, http.StatusBadRequest, "clinic ID is required")
		return
	}

	view, err := h.querySvc.GetClinic(r.Context(), clinicID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// GetClinicStatus handles GET /api/clinics/{id}/status
func (h *ClinicHandler) GetClinicStatus(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("id")
	if clinicID == "" {
		respondWithError(w, http.StatusBadRequest, "clinic ID is required")
		return
	}

	status, err := h.querySvc.OpenStatus(r.Context(), clinicID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// A clinic without evaluable hours has no status either way.
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"clinic_id": clinicID,
		"known":     status != nil,
		"status":    status,
	})
}

// ListClinics handles GET /api/clinics
func (h *ClinicHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f := repositories.ClinicFilter{
		Borough: query.Get("borough"),
		Limit:   30,
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 200 {
			f.Limit = limit
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			f.Offset = offset
		}
	}
	if raw := query.Get("virtual"); raw != "" {
		if virtual, err := strconv.ParseBool(raw); err == nil {
			f.IsVirtual = &virtual
		}
	}

	clinics, err := h.clinicSvc.List(r.Context(), f)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"clinics": clinics,
		"count":   len(clinics),
	})
}

// clinicPayload is the write-side request body. Hours may arrive as raw text
// ("Mon-Fri 9am-5pm; Sat 10am-2pm") or as structured entries.
type clinicPayload struct {
	entities.ClinicRecord
	HoursText string `json:"hours_text,omitempty"`
}

// CreateClinic handles POST /api/clinics
func (h *ClinicHandler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	var payload clinicPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clinic := payload.ClinicRecord
	if err := h.clinicSvc.Create(r.Context(), &clinic, payload.HoursText); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, clinic)
}

// UpdateClinic handles PUT /api/clinics/{id}
func (h *ClinicHandler) UpdateClinic(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("id")
	if clinicID == "" {
		respondWithError(w, http.StatusBadRequest, "clinic ID is required")
		return
	}

	var payload clinicPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clinic := payload.ClinicRecord
	clinic.ID = clinicID
	if err := h.clinicSvc.Update(r.Context(), &clinic, payload.HoursText); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, clinic)
}

// DeleteClinic handles DELETE /api/clinics/{id}
func (h *ClinicHandler) DeleteClinic(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("id")
	if clinicID == "" {
		respondWithError(w, http.StatusBadRequest, "clinic ID is required")
		return
	}

	if err := h.clinicSvc.Delete(r.Context(), clinicID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseFilterSpec builds a FilterSpec from query parameters. List parameters
// are comma separated; unknown parameters are ignored.
func parseFilterSpec(r *http.Request) (*entities.FilterSpec, error) {
	query := r.URL.Query()

	spec := &entities.FilterSpec{
		SearchQuery:     query.Get("q"),
		Services:        splitParam(query.Get("services")),
		GenderAffirming: splitParam(query.Get("gender_affirming")),
		PrEP:            splitParam(query.Get("prep")),
		Insurance:       splitParam(query.Get("insurance")),
		Access:          splitParam(query.Get("access")),
		Boroughs:        splitParam(query.Get("boroughs")),
		SubwayLines:     splitParam(query.Get("subway")),
		BusRoutes:       splitParam(query.Get("bus")),
	}

	if raw := query.Get("gestational_weeks"); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil || weeks < 0 {
			return nil, fmt.Errorf("invalid gestational_weeks value %q", raw)
		}
		spec.GestationalWeeks = &weeks
	}

	spec.OpenNow = boolParam(query.Get("open_now"))
	spec.OpenAfter5pm = boolParam(query.Get("open_after_5pm"))

	return spec, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func boolParam(raw string) bool {
	value, err := strconv.ParseBool(raw)
	return err == nil && value
}
