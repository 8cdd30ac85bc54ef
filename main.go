package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"car-aggregator/api"
	"car-aggregator/config"
	"car-aggregator/services"
	"car-aggregator/storage"
	"car-aggregator/utils"
)

const usage = `usage: car-aggregator <command> [flags]

commands:
  search   run one aggregated search, print a report and export a CSV
  serve    start the HTTP API
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := utils.NewLoggerWithConfig(utils.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	defer logger.Sync()

	var err error
	switch os.Args[1] {
	case "search":
		err = runSearch(cfg, logger, os.Args[2:])
	case "serve":
		err = runServe(cfg, logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error("%v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func runSearch(cfg *config.Config, logger *utils.Logger, args []string) error {
	sf, err := parseSearchFlags(args, cfg.CSVOutputPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, cfg, logger)
	defer a.Close()

	logger.Info("=== Car search starting ===")
	logger.Info("Config: providers %v | per-provider limit: %d | concurrency: %d | timeout: %v",
		a.registry.IDs(), cfg.PerProviderLimit, cfg.MaxConcurrency, cfg.ProviderTimeout)

	ctx, cancel := context.WithTimeout(ctx, a.searchTimeout())
	defer cancel()

	result := a.aggregator.SearchAllPlatforms(ctx, sf.filters)

	if sf.csvPath != "" {
		csvWriter, err := storage.NewCSVWriter(sf.csvPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else {
			if err := csvWriter.Write(result.AllListings); err != nil {
				logger.Error("CSV write failed: %v", err)
			} else {
				logger.Info("Ranked listings saved to %s", sf.csvPath)
			}
			_ = csvWriter.Close()
		}
	}

	services.NewSummaryPrinter(nil, sf.top).Print(result)
	return nil
}

func runServe(cfg *config.Config, logger *utils.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, cfg, logger)
	defer a.Close()

	var loader api.SearchLoader
	if a.archive != nil {
		loader = a.archive
	}

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      api.NewRouter(a.aggregator, loader, logger, cfg.APITimeout),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening on :%s (providers %v)", cfg.APIPort, a.registry.IDs())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("API stopped")
	return nil
}
