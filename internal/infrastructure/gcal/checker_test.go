package gcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestLooksLikeInterview(t *testing.T) {
	t.Parallel()

	assert.True(t, looksLikeInterview(&calendar.Event{Summary: "Phone Screen with Stripe"}))
	assert.True(t, looksLikeInterview(&calendar.Event{Summary: "Stripe <> me: intro call"}))
	assert.True(t, looksLikeInterview(&calendar.Event{
		Summary:     "Stripe",
		Description: "Technical interview, round 2",
	}))
	assert.False(t, looksLikeInterview(&calendar.Event{Summary: "Dentist appointment"}))
}

func TestEventStartDate(t *testing.T) {
	t.Parallel()

	date, ok := eventStartDate(&calendar.Event{
		Start: &calendar.EventDateTime{DateTime: "2026-01-09T14:00:00-05:00"},
	})
	require.True(t, ok)
	assert.Equal(t, "Jan 9, 2026", date)

	date, ok = eventStartDate(&calendar.Event{
		Start: &calendar.EventDateTime{Date: "2026-01-12"},
	})
	require.True(t, ok)
	assert.Equal(t, "Jan 12, 2026", date)

	_, ok = eventStartDate(&calendar.Event{})
	assert.False(t, ok)
}
