package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client mirrors committed appointments into a Google Calendar. It is
// optional: callers must check IsAuthenticated before use.
type Client struct {
	config  *oauth2.Config
	token   *oauth2.Token
	service *calendar.Service
}

// NewClient loads OAuth credentials and a stored token if present. A
// missing token is not an error, the client simply stays unauthenticated.
func NewClient(ctx context.Context, credentialsFile, tokenFile string) (*Client, error) {
	config, err := loadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, err
	}

	c := &Client{config: config}
	token, err := loadToken(tokenFile)
	if err == nil {
		c.token = token
		service, err := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
		if err != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", err)
		}
		c.service = service
	}
	return c, nil
}

// IsAuthenticated reports whether the client has a usable calendar service.
func (c *Client) IsAuthenticated() bool {
	return c != nil && c.service != nil
}

// EventInput describes an appointment to record on the calendar.
type EventInput struct {
	Summary     string
	Description string
	Start       string // RFC3339
	End         string // RFC3339
	TimeZone    string
}

// CreateEvent inserts an event and returns its ID.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (string, error) {
	if !c.IsAuthenticated() {
		return "", fmt.Errorf("calendar client is not authenticated")
	}
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start:       &calendar.EventDateTime{DateTime: input.Start, TimeZone: input.TimeZone},
		End:         &calendar.EventDateTime{DateTime: input.End, TimeZone: input.TimeZone},
	}
	created, err := c.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}

func loadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	data := []byte(os.Getenv("GOOGLE_CREDENTIALS_JSON"))
	if len(data) == 0 {
		fileData, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		data = fileData
	}
	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return config, nil
}

func loadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("unable to decode token file: %w", err)
	}
	return token, nil
}
