package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriseyebagha/job-application-tracker/internal/config"
	"github.com/chriseyebagha/job-application-tracker/internal/domain"
)

type stubProvider struct {
	name     string
	messages map[string][]domain.Message
	err      error
	requests []Request
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context, req Request) ([]domain.Message, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.messages[req.Account], nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&stubProvider{name: "gmail"})

	p, err := reg.Resolve("gmail")
	require.NoError(t, err)
	assert.Equal(t, "gmail", p.Name())

	_, err = reg.Resolve("imap")
	assert.Error(t, err)
}

func TestAccountSourcePreservesConfigOrder(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "gmail",
		messages: map[string][]domain.Message{
			"first@gmail.com":  {{Subject: "one", Account: "first@gmail.com"}},
			"second@gmail.com": {{Subject: "two", Account: "second@gmail.com"}},
		},
	}
	reg := NewRegistry()
	reg.Register(provider)

	accounts := []config.AccountConfig{
		{Email: "first@gmail.com"},
		{Email: "second@gmail.com", TrustAll: true},
	}
	src := NewAccountSource(reg, accounts, 50, nil)

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	messages, err := src.FetchSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Subject)
	assert.Equal(t, "two", messages[1].Subject)

	require.Len(t, provider.requests, 2)
	assert.Equal(t, since, provider.requests[0].Since)
	assert.Equal(t, int64(50), provider.requests[0].MaxResults)
	assert.True(t, provider.requests[1].TrustAll)
}

func TestAccountSourceSkipsFailingAccount(t *testing.T) {
	t.Parallel()

	healthy := &stubProvider{
		name: "gmail",
		messages: map[string][]domain.Message{
			"ok@gmail.com": {{Subject: "kept"}},
		},
	}
	broken := &stubProvider{name: "broken", err: errors.New("token expired")}

	reg := NewRegistry()
	reg.Register(healthy)
	reg.Register(broken)

	accounts := []config.AccountConfig{
		{Email: "bad@gmail.com", Provider: "broken"},
		{Email: "ok@gmail.com"},
	}
	src := NewAccountSource(reg, accounts, 0, nil)

	messages, err := src.FetchSince(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "kept", messages[0].Subject)
}

func TestAccountSourceUnknownProviderSkipped(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	accounts := []config.AccountConfig{{Email: "me@gmail.com", Provider: "imap"}}
	src := NewAccountSource(reg, accounts, 0, nil)

	messages, err := src.FetchSince(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, messages)
}
