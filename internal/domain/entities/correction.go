package entities

import (
	"time"

	"github.com/google/uuid"
)

// CorrectionReport captures a user-submitted correction to a clinic listing.
type CorrectionReport struct {
	ID        string    `json:"id" db:"id"`
	ClinicID  string    `json:"clinic_id" db:"clinic_id"`
	Field     string    `json:"field,omitempty" db:"field"`
	Message   string    `json:"message" db:"message"`
	Email     string    `json:"email,omitempty" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewCorrectionReport creates a correction report with a fresh ID.
func NewCorrectionReport(clinicID, field, message, email string) *CorrectionReport {
	return &CorrectionReport{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		Field:     field,
		Message:   message,
		Email:     email,
		CreatedAt: time.Now(),
	}
}
