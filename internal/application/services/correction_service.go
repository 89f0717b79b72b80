package services

import (
	"context"
	"strings"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

// CorrectionService records user-submitted listing corrections for manual
// review.
type CorrectionService struct {
	corrections repositories.CorrectionRepository
	clinics     repositories.ClinicRepository
}

// NewCorrectionService creates a new correction service.
func NewCorrectionService(
	corrections repositories.CorrectionRepository,
	clinics repositories.ClinicRepository,
) *CorrectionService {
	return &CorrectionService{
		corrections: corrections,
		clinics:     clinics,
	}
}

// Submit validates and stores a correction report against an existing clinic.
func (s *CorrectionService) Submit(ctx context.Context, clinicID, field, message, email string) (*entities.CorrectionReport, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("correction message is required")
	}

	// Reject reports against unknown clinics up front.
	if _, err := s.clinics.GetByID(ctx, clinicID); err != nil {
		return nil, err
	}

	report := entities.NewCorrectionReport(clinicID, field, strings.TrimSpace(message), strings.TrimSpace(email))
	if err := s.corrections.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}
