// Package gcal looks up upcoming interview events on Google Calendar.
package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/googleauth"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
)

const dateLayout = "Jan 2, 2006"

// Checker searches the primary calendar for events that look like
// interviews with a given company.
type Checker struct {
	creds     googleauth.Credentials
	tokenFile string
	lookahead time.Duration
}

var _ ports.CalendarChecker = (*Checker)(nil)

// NewChecker wires credentials and a search horizon.
func NewChecker(creds googleauth.Credentials, tokenFile string, lookaheadDays int) *Checker {
	if lookaheadDays <= 0 {
		lookaheadDays = 60
	}
	return &Checker{
		creds:     creds,
		tokenFile: tokenFile,
		lookahead: time.Duration(lookaheadDays) * 24 * time.Hour,
	}
}

// UpcomingInterview returns the date of the first upcoming event whose
// summary or description marks it as an interview for the company.
func (c *Checker) UpcomingInterview(ctx context.Context, company string) (string, bool, error) {
	client, err := googleauth.Client(ctx, c.creds, c.tokenFile)
	if err != nil {
		return "", false, fmt.Errorf("calendar auth: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", false, fmt.Errorf("create calendar service: %w", err)
	}

	now := time.Now()
	events, err := srv.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(c.lookahead).Format(time.RFC3339)).
		Q(company).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("list events for %s: %w", company, err)
	}

	for _, event := range events.Items {
		if !looksLikeInterview(event) {
			continue
		}
		if date, ok := eventStartDate(event); ok {
			return date, true, nil
		}
	}

	return "", false, nil
}

func looksLikeInterview(event *calendar.Event) bool {
	summary := strings.ToLower(event.Summary)
	description := strings.ToLower(event.Description)

	return strings.Contains(summary, "interview") ||
		strings.Contains(summary, "screen") ||
		strings.Contains(summary, "call") ||
		strings.Contains(description, "interview")
}

func eventStartDate(event *calendar.Event) (string, bool) {
	if event.Start == nil {
		return "", false
	}

	if event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			return t.Format(dateLayout), true
		}
	}
	if event.Start.Date != "" {
		if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
			return t.Format(dateLayout), true
		}
	}

	return "", false
}
