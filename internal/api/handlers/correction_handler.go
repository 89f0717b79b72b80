package handlers

import (
	"encoding/json"
	"net/http"

	appservices "github.com/healthmap-nyc/clinic-directory/internal/application/services"
)

// CorrectionHandler handles listing-correction submissions
type CorrectionHandler struct {
	correctionSvc *appservices.CorrectionService
}

// NewCorrectionHandler creates a new correction handler
func NewCorrectionHandler(correctionSvc *appservices.CorrectionService) *CorrectionHandler {
	return &CorrectionHandler{
		correctionSvc: correctionSvc,
	}
}

type correctionRequest struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// SubmitCorrection handles POST /api/clinics/{id}/corrections
func (h *CorrectionHandler) SubmitCorrection(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("id")
	if clinicID == "" {
		respondWithError(w, http.StatusBadRequest, "clinic ID is required")
		return
	}

	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.correctionSvc.Submit(r.Context(), clinicID, req.Field, req.Message, req.Email)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, report)
}
