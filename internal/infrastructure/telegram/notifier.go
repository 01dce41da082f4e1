// Package telegram posts run summaries to a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier renders run summaries as Markdown and sends them via the
// Telegram bot API.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishRunSummary formats the run outcome and posts it to the
// configured chat.
func (n *Notifier) PublishRunSummary(ctx context.Context, sum domain.RunSummary) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", formatRunSummary(sum))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func formatRunSummary(sum domain.RunSummary) string {
	return fmt.Sprintf(
		"*Job catalog updated*\nMessages scanned: %d\nNew applications: %d\nUpdated records: %d\nTotals: %d applied, %d interviewing, %d rejected",
		sum.MessagesScanned, sum.Added, sum.Updated,
		sum.Applied, sum.Interviewing, sum.Rejected)
}
