package notify

import (
	"context"

	"github.com/superior-auto/frontdesk/internal/database"
)

// Notifier tells the shop about a committed appointment.
type Notifier interface {
	// Send delivers a notification for an appointment to the recipient
	Send(ctx context.Context, appointment *database.Appointment, recipient string) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}
