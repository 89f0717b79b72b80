package providers

import (
	"context"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ClinicEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ClinicEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelClinicUpdates is the channel for all clinic record changes
	EventChannelClinicUpdates = "clinic:updates"

	// EventChannelSnapshot carries snapshot-refresh notifications
	EventChannelSnapshot = "clinic:snapshot"

	// EventChannelClinicPrefix is the prefix for clinic-specific channels
	EventChannelClinicPrefix = "clinic:"
)

// GetClinicChannel returns the channel name for a specific clinic
func GetClinicChannel(clinicID string) string {
	return EventChannelClinicPrefix + clinicID
}
