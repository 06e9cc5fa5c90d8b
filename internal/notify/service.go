package notify

import (
	"context"
	"fmt"

	"github.com/superior-auto/frontdesk/internal/database"
)

// Service fans committed appointments out to configured notifiers.
// Errors are logged but never fail the booking.
type Service struct {
	emailNotifier Notifier
	emailAddress  string
}

// NewService creates a notification service for the shop inbox.
func NewService(emailNotifier Notifier, emailAddress string) *Service {
	return &Service{
		emailNotifier: emailNotifier,
		emailAddress:  emailAddress,
	}
}

// NotifyBooked announces a committed appointment. Fire-and-forget.
func (s *Service) NotifyBooked(ctx context.Context, appointment *database.Appointment) {
	if s == nil {
		return
	}

	if s.emailAddress == "" || s.emailNotifier == nil || !s.emailNotifier.IsConfigured() {
		return
	}

	if err := s.emailNotifier.Send(ctx, appointment, s.emailAddress); err != nil {
		fmt.Printf("Notification: %s failed: %v\n", s.emailNotifier.Name(), err)
	}
}
