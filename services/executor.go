package services

import (
	"context"
	"fmt"
	"time"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/utils"
)

// Executor fans a search out to providers and collects one PlatformResult each.
type Executor struct {
	registry       *scraper.Registry
	maxConcurrency int
	logger         *utils.Logger
}

// NewExecutor creates an Executor. maxConcurrency <= 0 runs every provider at once.
func NewExecutor(registry *scraper.Registry, maxConcurrency int, logger *utils.Logger) *Executor {
	return &Executor{registry: registry, maxConcurrency: maxConcurrency, logger: logger}
}

// Execute calls every provider in ids concurrently. It never fails: provider
// errors and panics are recorded on the matching result, and results keep the
// order of ids regardless of completion order.
func (e *Executor) Execute(ctx context.Context, ids []scraper.ProviderID, filters models.SearchFilters, limit int) []models.PlatformResult {
	results := make([]models.PlatformResult, len(ids))

	utils.RunAll(ctx, len(ids), e.maxConcurrency, func(ctx context.Context, i int) {
		results[i] = e.call(ctx, ids[i], filters, limit)
	})

	return results
}

func (e *Executor) call(ctx context.Context, id scraper.ProviderID, filters models.SearchFilters, limit int) (res models.PlatformResult) {
	start := time.Now()
	res = models.PlatformResult{Platform: string(id), Listings: []models.Listing{}}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("[executor] %s panicked: %v", id, r)
			res = models.PlatformResult{
				Platform:   string(id),
				Listings:   []models.Listing{},
				SearchTime: time.Since(start).Milliseconds(),
				Error:      fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	provider, err := e.registry.Get(id)
	if err != nil {
		res.SearchTime = time.Since(start).Milliseconds()
		res.Error = err.Error()
		e.logger.Warn("[executor] %v", err)
		return res
	}

	listings, err := provider.Search(ctx, filters, limit)
	res.SearchTime = time.Since(start).Milliseconds()
	if err != nil {
		perr := &scraper.ProviderError{Provider: id, Err: err}
		res.Error = perr.Error()
		e.logger.Warn("[executor] %v (%dms)", perr, res.SearchTime)
		return res
	}

	if limit >= 0 && len(listings) > limit {
		e.logger.Warn("[executor] %s returned %d listings, trimming to %d", id, len(listings), limit)
		listings = listings[:limit]
	}
	if listings != nil {
		res.Listings = listings
	}
	res.Success = true
	e.logger.Debug("[executor] %s returned %d listings in %dms", id, len(res.Listings), res.SearchTime)
	return res
}
