package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/superior-auto/frontdesk/internal/database"
)

// ResendNotifier emails the shop inbox via the Resend API when an
// appointment is committed.
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
}

// NewResendNotifier creates a new Resend email notifier
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
	}
}

// IsConfigured returns true if the notifier has server-side config
func (r *ResendNotifier) IsConfigured() bool {
	return r.client != nil && r.fromAddress != ""
}

// Send sends an email notification for a committed appointment
func (r *ResendNotifier) Send(ctx context.Context, appointment *database.Appointment, recipient string) error {
	if recipient == "" {
		return fmt.Errorf("no recipient specified")
	}

	subject := fmt.Sprintf("New Appointment Booked: %s", appointment.Title)
	html := r.formatEmailHTML(appointment)

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{recipient},
		Subject: subject,
		Html:    html,
	}

	_, err := r.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Email notification sent to %s for appointment: %s\n", recipient, appointment.Title)
	return nil
}

// Name returns the notifier name
func (r *ResendNotifier) Name() string {
	return "resend"
}

// formatEmailHTML creates the HTML email body
func (r *ResendNotifier) formatEmailHTML(appointment *database.Appointment) string {
	startStr := appointment.StartTime.Format("Monday, January 2, 2006 at 3:04 PM")
	endStr := appointment.EndTime.Format("3:04 PM")
	if appointment.StartTime.Format("2006-01-02") != appointment.EndTime.Format("2006-01-02") {
		endStr = appointment.EndTime.Format("Monday, January 2, 2006 at 3:04 PM")
	}

	descriptionHTML := ""
	if appointment.Description != "" {
		descriptionHTML = fmt.Sprintf(`<p style="margin: 16px 0;">%s</p>`, appointment.Description)
	}

	callHTML := ""
	if appointment.CallID != "" {
		callHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Call:</strong> %s</p>`, appointment.CallID)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <div style="margin-bottom: 16px;">
      <span style="background-color: #28a745; color: white; padding: 4px 12px; border-radius: 4px; font-size: 12px; font-weight: 600;">Booked</span>
    </div>

    <h2 style="margin: 0 0 16px 0; color: #333;">%s</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #007bff;">
      <p style="margin: 8px 0;"><strong>When:</strong> %s - %s</p>
      %s
    </div>

    %s

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      FrontDesk - AI Receptionist<br>
      <span style="color: #ccc;">Sent at %s</span>
    </p>
  </div>
</body>
</html>`,
		appointment.Title,
		startStr,
		endStr,
		callHTML,
		descriptionHTML,
		time.Now().Format("Jan 2, 2006 3:04 PM"),
	)
}
