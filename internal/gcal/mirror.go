package gcal

import (
	"context"
	"fmt"
	"time"

	"github.com/superior-auto/frontdesk/internal/database"
)

// Mirror records committed appointments on an external Google Calendar.
// A nil Mirror is a no-op so callers do not need to branch on whether
// calendar sync is configured.
type Mirror struct {
	client     *Client
	calendarID string
	timezone   string
}

// NewMirror returns nil when the client is absent or unauthenticated.
func NewMirror(client *Client, calendarID, timezone string) *Mirror {
	if client == nil || !client.IsAuthenticated() || calendarID == "" {
		return nil
	}
	return &Mirror{client: client, calendarID: calendarID, timezone: timezone}
}

// MirrorAppointment inserts the appointment as a calendar event. Failures
// are returned so callers can log them, but bookings never depend on this.
func (m *Mirror) MirrorAppointment(ctx context.Context, a *database.Appointment) error {
	if m == nil || a == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.client.CreateEvent(ctx, m.calendarID, EventInput{
		Summary:     a.Title,
		Description: a.Description,
		Start:       a.StartTime.Format(time.RFC3339),
		End:         a.EndTime.Format(time.RFC3339),
		TimeZone:    m.timezone,
	})
	if err != nil {
		return fmt.Errorf("failed to mirror appointment: %w", err)
	}
	return nil
}
