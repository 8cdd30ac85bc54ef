package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"car-aggregator/models"
	"car-aggregator/utils"
)

// WithTimeout bounds each Search call of p to d. d <= 0 returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: d}
}

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Search(ctx context.Context, filters models.SearchFilters, maxResults int) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type outcome struct {
		listings []models.Listing
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		listings, err := t.Provider.Search(ctx, filters, maxResults)
		done <- outcome{listings, err}
	}()

	select {
	case o := <-done:
		return o.listings, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w after %v", ErrProviderTimeout, t.timeout)
	}
}

// WithRetry retries failed Search calls of p per cfg. MaxAttempts <= 1 returns p unchanged.
func WithRetry(p Provider, cfg *utils.RetryConfig) Provider {
	if cfg == nil || cfg.MaxAttempts <= 1 {
		return p
	}
	return &retryProvider{Provider: p, retry: cfg}
}

type retryProvider struct {
	Provider
	retry *utils.RetryConfig
}

func (r *retryProvider) Search(ctx context.Context, filters models.SearchFilters, maxResults int) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.retry.Do(ctx, "search-"+string(r.ID()), func(ctx context.Context) error {
		var err error
		listings, err = r.Provider.Search(ctx, filters, maxResults)
		return err
	})
	return listings, err
}

// ResultCache stores raw provider output keyed by an opaque string.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]models.Listing, bool, error)
	Set(ctx context.Context, key string, listings []models.Listing, ttl time.Duration) error
}

// WithCache serves repeated identical Search calls of p from cache.
// Cache errors are logged and fall through to the provider.
func WithCache(p Provider, cache ResultCache, ttl time.Duration, logger *utils.Logger) Provider {
	if cache == nil || ttl <= 0 {
		return p
	}
	return &cachedProvider{Provider: p, cache: cache, ttl: ttl, logger: logger}
}

type cachedProvider struct {
	Provider
	cache  ResultCache
	ttl    time.Duration
	logger *utils.Logger
}

func (c *cachedProvider) Search(ctx context.Context, filters models.SearchFilters, maxResults int) ([]models.Listing, error) {
	key := CacheKey(c.ID(), filters, maxResults)

	listings, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("[cache] %s lookup failed: %v", c.ID(), err)
	} else if hit {
		c.logger.Debug("[cache] %s hit (%d listings)", c.ID(), len(listings))
		return listings, nil
	}

	listings, err = c.Provider.Search(ctx, filters, maxResults)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, listings, c.ttl); err != nil {
		c.logger.Warn("[cache] %s store failed: %v", c.ID(), err)
	}
	return listings, nil
}

// CacheKey derives a stable key for one provider call.
func CacheKey(id ProviderID, filters models.SearchFilters, maxResults int) string {
	raw, _ := json.Marshal(filters)
	sum := sha1.Sum(append(raw, []byte(fmt.Sprintf("|%d", maxResults))...))
	return "listings:" + string(id) + ":" + hex.EncodeToString(sum[:])
}
