package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/chriseyebagha/job-application-tracker/internal/config"
	"github.com/chriseyebagha/job-application-tracker/internal/domain"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
)

// AccountSource implements MessageSource by walking the configured
// accounts in order and delegating to their providers. A failing
// account is logged and skipped so one broken token does not starve the
// rest of the batch.
type AccountSource struct {
	registry   *Registry
	accounts   []config.AccountConfig
	maxResults int64
	logger     *slog.Logger
}

var _ ports.MessageSource = (*AccountSource)(nil)

// NewAccountSource wires the provider registry with config-defined
// accounts.
func NewAccountSource(reg *Registry, accounts []config.AccountConfig, maxResults int64, log *slog.Logger) *AccountSource {
	return &AccountSource{
		registry:   reg,
		accounts:   accounts,
		maxResults: maxResults,
		logger:     log,
	}
}

// FetchSince collects messages from every account. Accounts are visited
// in config order and each provider returns messages in fetch order, so
// repeated runs over the same mailboxes produce the same sequence.
func (s *AccountSource) FetchSince(ctx context.Context, since time.Time) ([]domain.Message, error) {
	if s.registry == nil {
		return nil, nil
	}

	s.debug("fetch messages", "accounts", len(s.accounts), "since", since.Format("2006-01-02"))

	var aggregated []domain.Message
	for _, acct := range s.accounts {
		providerName := acct.Provider
		if providerName == "" {
			providerName = "gmail"
		}

		provider, err := s.registry.Resolve(providerName)
		if err != nil {
			s.warn("skip account", "account", acct.Email, "error", err)
			continue
		}

		req := Request{
			Account:    acct.Email,
			TokenFile:  acct.TokenFile,
			TrustAll:   acct.TrustAll,
			Query:      acct.Query,
			Since:      since,
			MaxResults: s.maxResults,
		}

		messages, err := provider.Fetch(ctx, req)
		if err != nil {
			s.warn("fetch account failed", "account", acct.Email, "error", err)
			continue
		}

		s.debug("account produced messages", "account", acct.Email, "count", len(messages))
		aggregated = append(aggregated, messages...)
	}

	s.debug("account source done", "total_messages", len(aggregated))
	return aggregated, nil
}

func (s *AccountSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *AccountSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
