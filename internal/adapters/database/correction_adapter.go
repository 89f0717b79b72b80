package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

// CorrectionAdapter implements correction report persistence in Postgres.
type CorrectionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCorrectionAdapter creates a new correction adapter.
func NewCorrectionAdapter(client *postgres.Client) repositories.CorrectionRepository {
	return &CorrectionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a correction report.
func (a *CorrectionAdapter) Create(ctx context.Context, report *entities.CorrectionReport) error {
	if report == nil {
		return apperrors.NewInternalError("correction report is nil", fmt.Errorf("correction report is nil"))
	}

	record := goqu.Record{
		"id":         report.ID,
		"clinic_id":  report.ClinicID,
		"field":      sql.NullString{String: report.Field, Valid: report.Field != ""},
		"message":    report.Message,
		"email":      sql.NullString{String: report.Email, Valid: report.Email != ""},
		"created_at": report.CreatedAt,
	}

	query, args, err := a.db.Insert("corrections").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build correction insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create correction report", err)
	}

	return nil
}
