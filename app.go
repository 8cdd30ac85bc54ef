package main

import (
	"context"
	"time"

	"car-aggregator/config"
	"car-aggregator/events"
	"car-aggregator/scraper"
	"car-aggregator/scraper/browser"
	"car-aggregator/scraper/marketplace"
	"car-aggregator/services"
	"car-aggregator/storage"
	"car-aggregator/utils"
)

// app holds everything both run modes share.
type app struct {
	cfg        *config.Config
	logger     *utils.Logger
	registry   *scraper.Registry
	aggregator *services.Aggregator
	archive    storage.SearchStore

	closers []func() error
}

// newApp builds the provider registry and the optional infrastructure.
// Infrastructure that cannot be reached is logged and left out.
func newApp(ctx context.Context, cfg *config.Config, logger *utils.Logger) *app {
	a := &app{cfg: cfg, logger: logger}

	a.registry = marketplace.NewRegistry(marketplace.Options{
		Seed:    cfg.ProviderSeed,
		Latency: cfg.ProviderLatency,
	})

	if cfg.BrowserProvider != "" && cfg.BrowserSearchURL != "" {
		a.registry.Register(browser.New(browser.Config{
			ID:        scraper.ProviderID(cfg.BrowserProvider),
			SearchURL: cfg.BrowserSearchURL,
			ChromeBin: cfg.ChromeBin,
		}, logger))
		logger.Info("Provider %q served by headless browser: %s", cfg.BrowserProvider, cfg.BrowserSearchURL)
	}

	var cache scraper.ResultCache
	if cfg.RedisAddr != "" {
		rc, err := storage.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis cache disabled: %v", err)
		} else {
			cache = rc
			a.closers = append(a.closers, rc.Close)
			logger.Info("Provider results cached in Redis at %s (ttl %v)", cfg.RedisAddr, cfg.CacheTTL)
		}
	}

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryBaseDelay, Logger: logger}
	a.registry.Wrap(func(p scraper.Provider) scraper.Provider {
		p = scraper.WithTimeout(p, cfg.ProviderTimeout)
		p = scraper.WithRetry(p, retry)
		return scraper.WithCache(p, cache, cfg.CacheTTL, logger)
	})

	opts := services.AggregatorOptions{
		PerProviderLimit: cfg.PerProviderLimit,
		MaxConcurrency:   cfg.MaxConcurrency,
	}

	if cfg.ArchiveEnabled {
		pa, err := storage.NewPostgresArchive(cfg.DSN())
		if err != nil {
			logger.Error("Search archive disabled: %v", err)
		} else {
			a.archive = pa
			opts.Archive = pa
			a.closers = append(a.closers, pa.Close)
			logger.Info("Searches archived in PostgreSQL (tables: searches, search_listings)")
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
		if err != nil {
			logger.Error("Search events disabled: %v", err)
		} else {
			opts.Notifier = pub
			a.closers = append(a.closers, pub.Close)
		}
	}
	if opts.Notifier == nil {
		opts.Notifier = events.NopPublisher{}
	}

	a.aggregator = services.NewAggregator(a.registry, opts, logger)
	return a
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Shutdown: %v", err)
		}
	}
}

// searchTimeout bounds a CLI search so a hung provider cannot block forever.
func (a *app) searchTimeout() time.Duration {
	if a.cfg.ProviderTimeout > 0 {
		return a.cfg.ProviderTimeout*time.Duration(max(a.cfg.MaxRetries, 1)) + 10*time.Second
	}
	return 5 * time.Minute
}
