// Package source fans message fetching out over configured accounts,
// resolving each account to a provider strategy.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
)

// Request carries all parameters required to fetch one account's mail.
type Request struct {
	Account    string
	TokenFile  string
	TrustAll   bool
	Query      string
	Since      time.Time
	MaxResults int64
}

// Provider fetches messages for a single account (Gmail today; the
// registry leaves room for other mailbox backends).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.Message, error)
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("provider %s is not registered", name)
}
