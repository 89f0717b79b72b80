package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appservices "github.com/healthmap-nyc/clinic-directory/internal/application/services"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

type stubCorrectionRepo struct {
	reports []*entities.CorrectionReport
}

func (r *stubCorrectionRepo) Create(ctx context.Context, report *entities.CorrectionReport) error {
	r.reports = append(r.reports, report)
	return nil
}

func newCorrectionHandler(clinics *stubClinicRepo, corrections *stubCorrectionRepo) *CorrectionHandler {
	return NewCorrectionHandler(appservices.NewCorrectionService(corrections, clinics))
}

func TestSubmitCorrection(t *testing.T) {
	corrections := &stubCorrectionRepo{}
	handler := newCorrectionHandler(newStubClinicRepo(fixtureClinics()...), corrections)

	body := `{"field":"hours","message":"Closed on Fridays now","email":"user@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/clinics/chelsea/corrections", strings.NewReader(body))
	req.SetPathValue("id", "chelsea")
	rec := httptest.NewRecorder()
	handler.SubmitCorrection(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, corrections.reports, 1)
	assert.Equal(t, "chelsea", corrections.reports[0].ClinicID)
	assert.Equal(t, "Closed on Fridays now", corrections.reports[0].Message)
}

func TestSubmitCorrectionEmptyMessage(t *testing.T) {
	handler := newCorrectionHandler(newStubClinicRepo(fixtureClinics()...), &stubCorrectionRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/clinics/chelsea/corrections", strings.NewReader(`{"message":""}`))
	req.SetPathValue("id", "chelsea")
	rec := httptest.NewRecorder()
	handler.SubmitCorrection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitCorrectionUnknownClinic(t *testing.T) {
	handler := newCorrectionHandler(newStubClinicRepo(), &stubCorrectionRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/clinics/ghost/corrections", strings.NewReader(`{"message":"bad hours"}`))
	req.SetPathValue("id", "ghost")
	rec := httptest.NewRecorder()
	handler.SubmitCorrection(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSnapshot(t *testing.T) {
	handler := NewSnapshotHandler(newStubClinicRepo(fixtureClinics()...))

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	rec := httptest.NewRecorder()
	handler.GetSnapshot(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)
}

func TestGetFilterOptions(t *testing.T) {
	handler := NewFilterOptionsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/filters/options", nil)
	rec := httptest.NewRecorder()
	handler.GetFilterOptions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), entities.ServiceSTITesting)
	assert.Contains(t, rec.Body.String(), string(entities.BoroughStatenIsland))
}
