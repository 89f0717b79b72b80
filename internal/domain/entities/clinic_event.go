package entities

import (
	"time"

	"github.com/google/uuid"
)

// ClinicEventType represents the type of clinic event
type ClinicEventType string

const (
	ClinicEventTypeUpdated           ClinicEventType = "clinic_updated"
	ClinicEventTypeRemoved           ClinicEventType = "clinic_removed"
	ClinicEventTypeSnapshotRefreshed ClinicEventType = "snapshot_refreshed"
)

// ClinicEvent represents a directory change event published on the event bus.
// Snapshot-refresh events carry no clinic ID.
type ClinicEvent struct {
	ID        string          `json:"id"`
	ClinicID  string          `json:"clinic_id,omitempty"`
	EventType ClinicEventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewClinicEvent creates a new clinic event
func NewClinicEvent(clinicID string, eventType ClinicEventType) *ClinicEvent {
	return &ClinicEvent{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
