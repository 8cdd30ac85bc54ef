package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/utils"
)

const defaultPerProviderLimit = 20

// SearchArchive persists a completed search.
type SearchArchive interface {
	SaveSearch(ctx context.Context, filters models.SearchFilters, result *models.SearchResult) error
}

// SearchNotifier announces a completed search.
type SearchNotifier interface {
	SearchCompleted(ctx context.Context, filters models.SearchFilters, result *models.SearchResult) error
}

// AggregatorOptions tunes an Aggregator. Archive and Notifier are optional.
type AggregatorOptions struct {
	PerProviderLimit int
	MaxConcurrency   int
	Archive          SearchArchive
	Notifier         SearchNotifier
}

// Aggregator runs one search across every relevant marketplace.
type Aggregator struct {
	registry *scraper.Registry
	executor *Executor
	dedupe   *Deduplicator
	ranker   *Ranker
	summary  *SummaryBuilder
	opts     AggregatorOptions
	logger   *utils.Logger
}

func NewAggregator(registry *scraper.Registry, opts AggregatorOptions, logger *utils.Logger) *Aggregator {
	if opts.PerProviderLimit <= 0 {
		opts.PerProviderLimit = defaultPerProviderLimit
	}
	return &Aggregator{
		registry: registry,
		executor: NewExecutor(registry, opts.MaxConcurrency, logger),
		dedupe:   NewDeduplicator(logger),
		ranker:   NewRanker(nil),
		summary:  NewSummaryBuilder(logger),
		opts:     opts,
		logger:   logger,
	}
}

// Providers lists the registered provider IDs in registry order.
func (a *Aggregator) Providers() []scraper.ProviderID {
	return a.registry.IDs()
}

// SearchAllPlatforms selects providers, queries them concurrently, merges,
// de-duplicates and ranks their listings and summarises the outcome.
// It never fails: provider failures are reported on PlatformResults.
func (a *Aggregator) SearchAllPlatforms(ctx context.Context, filters models.SearchFilters) *models.SearchResult {
	searchID := uuid.NewString()
	start := time.Now()

	ids := SelectProviders(filters, a.registry.IDs())
	a.logger.Info("[aggregator] %s querying %d providers: %v", searchID, len(ids), ids)

	results := a.executor.Execute(ctx, ids, filters, a.opts.PerProviderLimit)

	var merged []models.Listing
	for _, r := range results {
		merged = append(merged, r.Listings...)
	}

	unique := a.dedupe.Dedupe(merged)
	ranked := a.ranker.Rank(unique, filters)

	result := &models.SearchResult{
		SearchID:        searchID,
		AllListings:     ranked,
		PlatformResults: results,
		Summary:         a.summary.Summarize(ranked, results),
		CompletedAt:     time.Now().UTC(),
	}

	a.logger.Info("[aggregator] %s done in %v: %d listings from %d/%d platforms",
		searchID, time.Since(start).Round(time.Millisecond), result.Summary.TotalListings,
		result.Summary.PlatformsSearched, len(results))

	if a.opts.Archive != nil {
		if err := a.opts.Archive.SaveSearch(ctx, filters, result); err != nil {
			a.logger.Error("[aggregator] %s archive failed: %v", searchID, err)
		}
	}
	if a.opts.Notifier != nil {
		if err := a.opts.Notifier.SearchCompleted(ctx, filters, result); err != nil {
			a.logger.Error("[aggregator] %s event publish failed: %v", searchID, err)
		}
	}
	return result
}
