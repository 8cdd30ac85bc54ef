package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"car-aggregator/models"
)

// ProviderID names a marketplace source.
type ProviderID string

const (
	Motors      ProviderID = "motors"
	AutoTrader  ProviderID = "autotrader"
	PistonHeads ProviderID = "pistonheads"
	Gumtree     ProviderID = "gumtree"
	EBay        ProviderID = "ebay"
)

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderTimeout  = errors.New("provider timeout")
)

// Provider is one listing source.
//
// Search must not return an error for "no results", must return at most
// maxResults listings and silently ignores filters it cannot interpret.
type Provider interface {
	ID() ProviderID
	Search(ctx context.Context, filters models.SearchFilters, maxResults int) ([]models.Listing, error)
}

// ProviderError ties a failure to the provider that produced it.
type ProviderError struct {
	Provider ProviderID
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Registry maps provider IDs to providers and remembers registration order.
// It is built once at startup and shared read-only afterwards.
type Registry struct {
	mu        sync.RWMutex
	order     []ProviderID
	providers map[ProviderID]Provider
}

// NewRegistry creates a Registry holding the given providers in order.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[ProviderID]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds p. Registering an existing ID replaces it in place.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID()
	if _, exists := r.providers[id]; !exists {
		r.order = append(r.order, id)
	}
	r.providers[id] = p
}

// Get returns the provider registered under id.
func (r *Registry) Get(id ProviderID) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	return p, nil
}

// IDs returns every registered ID in registration order.
func (r *Registry) IDs() []ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ProviderID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Wrap replaces every registered provider with wrap(provider), keeping the order.
func (r *Registry) Wrap(wrap func(Provider) Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		r.providers[id] = wrap(r.providers[id])
	}
}
