// Package gmail fetches notification messages through the Gmail REST
// API. It only reads headers and snippets; full bodies are never
// downloaded.
package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/googleauth"
	"github.com/chriseyebagha/job-application-tracker/internal/source"
)

const dateLayout = "Jan 2, 2006"

// Keyword clause appended to queries for accounts that mix job mail
// with everything else.
const jobKeywordQuery = `(subject:"application" OR subject:"applied" OR subject:"interview" OR subject:"opportunity" OR subject:"position" OR "thank you for applying" OR "received your application" OR "application received" OR "unfortunately" OR "not selected" OR "moving forward")`

// Provider implements the gmail fetch strategy.
type Provider struct {
	creds  googleauth.Credentials
	logger *slog.Logger
}

var _ source.Provider = (*Provider)(nil)

// NewProvider wires OAuth credentials shared by all accounts.
func NewProvider(creds googleauth.Credentials, log *slog.Logger) *Provider {
	return &Provider{creds: creds, logger: log}
}

// Name identifies the strategy inside the registry.
func (p *Provider) Name() string {
	return "gmail"
}

// Fetch lists matching messages and resolves each to subject, sender,
// snippet, and a formatted date. Messages are fetched sequentially in
// list order; downstream merging depends on a stable sequence.
func (p *Provider) Fetch(ctx context.Context, req source.Request) ([]domain.Message, error) {
	tokenFile := req.TokenFile
	if tokenFile == "" {
		tokenFile = googleauth.TokenFileFor(req.Account)
	}

	client, err := googleauth.Client(ctx, p.creds, tokenFile)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", req.Account, err)
	}

	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	query := p.buildQuery(req)
	p.debug("gmail query", "account", req.Account, "query", query)

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	list, err := srv.Users.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages for %s: %w", req.Account, err)
	}

	messages := make([]domain.Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := srv.Users.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("Subject", "From", "Date").
			Context(ctx).Do()
		if err != nil {
			p.debug("skip unreadable message", "account", req.Account, "id", ref.Id, "error", err)
			continue
		}
		messages = append(messages, toMessage(full, req.Account))
	}

	return messages, nil
}

// buildQuery restricts the search to the fetch window; trust-all
// accounts take every message in the window, others only keyword hits.
func (p *Provider) buildQuery(req source.Request) string {
	if req.Query != "" {
		return req.Query
	}

	window := fmt.Sprintf("after:%s", req.Since.Format("2006/01/02"))
	if req.TrustAll {
		return window
	}
	return window + " " + jobKeywordQuery
}

func toMessage(msg *gmailapi.Message, account string) domain.Message {
	var subject, from, rawDate string
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "Subject":
				subject = h.Value
			case "From":
				from = h.Value
			case "Date":
				rawDate = h.Value
			}
		}
	}

	return domain.Message{
		Subject: subject,
		Snippet: msg.Snippet,
		From:    from,
		Date:    formatDate(rawDate, msg.InternalDate),
		Account: account,
	}
}

// formatDate renders the header date as "Jan 2, 2006", falling back to
// the server receive timestamp. An unparsable date yields "" so the
// record simply carries no date.
func formatDate(header string, internalMillis int64) string {
	if header != "" {
		if t, err := mail.ParseDate(header); err == nil {
			return t.Format(dateLayout)
		}
	}
	if internalMillis > 0 {
		return time.UnixMilli(internalMillis).Format(dateLayout)
	}
	return ""
}

func (p *Provider) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
