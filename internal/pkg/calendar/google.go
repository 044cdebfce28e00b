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

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/worktide-hr/absence-backend-go/internal/config"
	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
)

const (
	eventsBaseURL  = "https://www.googleapis.com/calendar/v3/calendars"
	requestTimeout = 10 * time.Second
)

// NewGoogleService builds the calendar syncer. With no client ID configured
// it returns a disabled service whose operations are no-ops.
func NewGoogleService(cfg config.CalendarConfig) absence.CalendarSync {
	if cfg.ClientID == "" || cfg.RefreshToken == "" {
		return &disabledService{}
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"https://www.googleapis.com/auth/calendar.events"},
	}

	return &googleService{
		cfg:      cfg,
		oauthCfg: oauthCfg,
	}
}

type googleService struct {
	cfg      config.CalendarConfig
	oauthCfg *oauth2.Config
}

// event mirrors the Calendar API v3 event resource, all-day variant.
type event struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       eventDate `json:"start"`
	End         eventDate `json:"end"`
	ColorID     string    `json:"colorId,omitempty"`
}

type eventDate struct {
	Date     string `json:"date"`
	TimeZone string `json:"timeZone,omitempty"`
}

func (s *googleService) client(ctx context.Context) *http.Client {
	// The token source refreshes the access token from the stored refresh
	// token on demand.
	token := &oauth2.Token{RefreshToken: s.cfg.RefreshToken}
	c := s.oauthCfg.Client(ctx, token)
	c.Timeout = requestTimeout
	return c
}

func (s *googleService) buildEvent(request absence.Request, owner user.User) event {
	summary := fmt.Sprintf("%s - Vacation", owner.Name)
	colorID := "10"
	if request.Category == absence.CategoryLeave {
		label := "Leave"
		if request.AbsenceTypeName != nil {
			label = *request.AbsenceTypeName
		}
		summary = fmt.Sprintf("%s - %s", owner.Name, label)
		colorID = "11"
	}

	reason := request.Reason
	if reason == "" {
		reason = "Not specified"
	}

	return event{
		Summary: summary,
		Description: fmt.Sprintf("Employee: %s\nEmail: %s\nDays: %d\nReason: %s",
			owner.Name, owner.Email, request.DaysRequested, reason),
		Start: eventDate{
			Date:     request.StartDate.Format("2006-01-02"),
			TimeZone: s.cfg.Timezone,
		},
		End: eventDate{
			// Calendar API end dates are exclusive
			Date:     request.EndDate.AddDate(0, 0, 1).Format("2006-01-02"),
			TimeZone: s.cfg.Timezone,
		},
		ColorID: colorID,
	}
}

func (s *googleService) SyncCreate(ctx context.Context, request absence.Request, owner user.User) (string, error) {
	body, err := json.Marshal(s.buildEvent(request, owner))
	if err != nil {
		return "", fmt.Errorf("failed to encode calendar event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/events", eventsBaseURL, url.PathEscape(s.cfg.CalendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client(ctx).Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar event insert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("calendar event insert returned %d: %s", resp.StatusCode, payload)
	}

	var created event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode calendar response: %w", err)
	}

	return created.ID, nil
}

func (s *googleService) SyncUpdate(ctx context.Context, eventID string, request absence.Request, owner user.User) error {
	body, err := json.Marshal(s.buildEvent(request, owner))
	if err != nil {
		return fmt.Errorf("failed to encode calendar event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/events/%s",
		eventsBaseURL, url.PathEscape(s.cfg.CalendarID), url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("calendar event update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("calendar event update returned %d: %s", resp.StatusCode, payload)
	}

	return nil
}

func (s *googleService) SyncDelete(ctx context.Context, eventID string) error {
	endpoint := fmt.Sprintf("%s/%s/events/%s",
		eventsBaseURL, url.PathEscape(s.cfg.CalendarID), url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("calendar event delete failed: %w", err)
	}
	defer resp.Body.Close()

	// 410 means the event is already gone; treat as success.
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusGone &&
		(resp.StatusCode < 200 || resp.StatusCode >= 300) {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("calendar event delete returned %d: %s", resp.StatusCode, payload)
	}

	return nil
}

// disabledService satisfies absence.CalendarSync when sync is not configured.
type disabledService struct{}

func (d *disabledService) SyncCreate(ctx context.Context, request absence.Request, owner user.User) (string, error) {
	return "", nil
}

func (d *disabledService) SyncUpdate(ctx context.Context, eventID string, request absence.Request, owner user.User) error {
	return nil
}

func (d *disabledService) SyncDelete(ctx context.Context, eventID string) error {
	return nil
}
