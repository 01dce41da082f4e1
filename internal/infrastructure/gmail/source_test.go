package gmail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/chriseyebagha/job-application-tracker/internal/source"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	p := &Provider{}
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	q := p.buildQuery(source.Request{Since: since})
	assert.True(t, strings.HasPrefix(q, "after:2026/01/01 "))
	assert.Contains(t, q, `subject:"interview"`)

	q = p.buildQuery(source.Request{Since: since, TrustAll: true})
	assert.Equal(t, "after:2026/01/01", q)

	q = p.buildQuery(source.Request{Since: since, Query: "label:jobs"})
	assert.Equal(t, "label:jobs", q)
}

func TestToMessage(t *testing.T) {
	t.Parallel()

	msg := &gmailapi.Message{
		Snippet: "We received your application.",
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "Subject", Value: "Thank you for applying to Stripe"},
				{Name: "From", Value: "Stripe <careers@stripe.com>"},
				{Name: "Date", Value: "Mon, 05 Jan 2026 10:30:00 -0500"},
			},
		},
	}

	got := toMessage(msg, "me@gmail.com")
	assert.Equal(t, "Thank you for applying to Stripe", got.Subject)
	assert.Equal(t, "Stripe <careers@stripe.com>", got.From)
	assert.Equal(t, "We received your application.", got.Snippet)
	assert.Equal(t, "Jan 5, 2026", got.Date)
	assert.Equal(t, "me@gmail.com", got.Account)
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jan 5, 2026", formatDate("Mon, 05 Jan 2026 10:30:00 -0500", 0))

	internal := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC).UnixMilli()
	got := formatDate("not a date", internal)
	assert.Equal(t, time.UnixMilli(internal).Format(dateLayout), got)

	assert.Equal(t, "", formatDate("", 0))
}
