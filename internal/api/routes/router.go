package routes

import (
	"net/http"

	"github.com/healthmap-nyc/clinic-directory/internal/api/handlers"
	"github.com/healthmap-nyc/clinic-directory/internal/api/middleware"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	clinicHandler        *handlers.ClinicHandler
	correctionHandler    *handlers.CorrectionHandler
	snapshotHandler      *handlers.SnapshotHandler
	filterOptionsHandler *handlers.FilterOptionsHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	clinicHandler *handlers.ClinicHandler,
	correctionHandler *handlers.CorrectionHandler,
	snapshotHandler *handlers.SnapshotHandler,
	filterOptionsHandler *handlers.FilterOptionsHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                  http.NewServeMux(),
		clinicHandler:        clinicHandler,
		correctionHandler:    correctionHandler,
		snapshotHandler:      snapshotHandler,
		filterOptionsHandler: filterOptionsHandler,
		cacheMiddleware:      cacheMiddleware,
		metrics:              metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Directory query endpoints
	r.mux.HandleFunc("GET /api/clinics", r.clinicHandler.ListClinics)
	r.mux.HandleFunc("GET /api/clinics/query", r.clinicHandler.QueryClinics)
	r.mux.HandleFunc("GET /api/clinics/{id}", r.clinicHandler.GetClinic)
	r.mux.HandleFunc("GET /api/clinics/{id}/status", r.clinicHandler.GetClinicStatus)

	// Admin write endpoints
	r.mux.HandleFunc("POST /api/clinics", r.clinicHandler.CreateClinic)
	r.mux.HandleFunc("PUT /api/clinics/{id}", r.clinicHandler.UpdateClinic)
	r.mux.HandleFunc("DELETE /api/clinics/{id}", r.clinicHandler.DeleteClinic)

	// Correction reports
	r.mux.HandleFunc("POST /api/clinics/{id}/corrections", r.correctionHandler.SubmitCorrection)

	// Snapshot and filter vocabulary
	r.mux.HandleFunc("GET /api/snapshot", r.snapshotHandler.GetSnapshot)
	r.mux.HandleFunc("GET /api/filters/options", r.filterOptionsHandler.GetFilterOptions)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
