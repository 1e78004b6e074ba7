package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GoogleClient books events through the Google Calendar REST API.
type GoogleClient struct {
	HTTPClient *http.Client
	Token      string
	CalendarID string
	Endpoint   string
	TimeZone   string
}

func NewGoogleClient(token, calendarID string) *GoogleClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleClient{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Token:      token,
		CalendarID: calendarID,
		Endpoint:   "https://www.googleapis.com/calendar/v3",
		TimeZone:   "Asia/Kolkata",
	}
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type eventReminder struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type eventReminders struct {
	UseDefault bool            `json:"useDefault"`
	Overrides  []eventReminder `json:"overrides"`
}

type eventRequest struct {
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Start       eventTime       `json:"start"`
	End         eventTime       `json:"end"`
	Attendees   []eventAttendee `json:"attendees"`
	Reminders   eventReminders  `json:"reminders"`
}

type eventResponse struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
}

// Book inserts a demo event with the given contact as attendee and returns the
// confirmation link.
func (c *GoogleClient) Book(ctx context.Context, contact string, start, end time.Time, description string) (string, error) {
	if c.Token == "" {
		return "", fmt.Errorf("calendar token missing")
	}

	reqBody, _ := json.Marshal(eventRequest{
		Summary:     "AI Demo Session",
		Description: description,
		Start:       eventTime{DateTime: start.Format(time.RFC3339), TimeZone: c.TimeZone},
		End:         eventTime{DateTime: end.Format(time.RFC3339), TimeZone: c.TimeZone},
		Attendees:   []eventAttendee{{Email: contact}},
		Reminders: eventReminders{
			UseDefault: false,
			Overrides: []eventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
		},
	})

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.Endpoint, url.PathEscape(c.CalendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("calendar error: status=%d body=%s", resp.StatusCode, string(b))
	}

	var er eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return "", fmt.Errorf("calendar response decode failed: %w", err)
	}
	return er.HTMLLink, nil
}
