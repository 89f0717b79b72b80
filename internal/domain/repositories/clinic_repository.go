package repositories

import (
	"context"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// ClinicRepository defines the interface for clinic data operations
type ClinicRepository interface {
	// Create creates a new clinic record
	Create(ctx context.Context, clinic *entities.ClinicRecord) error

	// GetByID retrieves a clinic by ID
	GetByID(ctx context.Context, id string) (*entities.ClinicRecord, error)

	// GetByIDs retrieves multiple clinics by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.ClinicRecord, error)

	// Update updates a clinic record
	Update(ctx context.Context, clinic *entities.ClinicRecord) error

	// Delete deletes a clinic record
	Delete(ctx context.Context, id string) error

	// List retrieves clinics matching the given filter
	List(ctx context.Context, filter ClinicFilter) ([]*entities.ClinicRecord, error)

	// All retrieves every active clinic; the snapshot export and indexer
	// walk the full directory through this.
	All(ctx context.Context) ([]*entities.ClinicRecord, error)
}

// ClinicSearchRepository defines the interface for clinic name search
// operations (e.g. Typesense)
type ClinicSearchRepository interface {
	// Search returns the IDs of clinics whose names match the query
	Search(ctx context.Context, query string, limit int) ([]string, error)

	// Index indexes a clinic
	Index(ctx context.Context, clinic *entities.ClinicRecord) error

	// Delete removes a clinic from the index
	Delete(ctx context.Context, id string) error
}

// CorrectionRepository stores user-submitted listing corrections.
type CorrectionRepository interface {
	Create(ctx context.Context, report *entities.CorrectionReport) error
}

// ClinicFilter defines filters for listing clinics
type ClinicFilter struct {
	Borough   string
	IsVirtual *bool
	IsActive  *bool
	Limit     int
	Offset    int
}
