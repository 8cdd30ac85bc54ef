package services

import (
	"math"

	"car-aggregator/models"
	"car-aggregator/utils"
)

// topSourcesWindow is how many leading ranked listings feed TopSources.
const topSourcesWindow = 10

// SummaryBuilder derives aggregate statistics from a ranked result set.
type SummaryBuilder struct {
	logger *utils.Logger
}

func NewSummaryBuilder(logger *utils.Logger) *SummaryBuilder {
	return &SummaryBuilder{logger: logger}
}

func (s *SummaryBuilder) Summarize(listings []models.Listing, results []models.PlatformResult) models.AggregationSummary {
	summary := models.AggregationSummary{
		TotalListings: len(listings),
		TopSources:    []string{},
	}

	for _, r := range results {
		if r.Success {
			summary.PlatformsSearched++
		}
	}

	// Price stats (only listings with price > 0)
	var total, eligible int
	for _, l := range listings {
		if l.Price <= 0 {
			continue
		}
		if eligible == 0 || l.Price < summary.PriceRange.Min {
			summary.PriceRange.Min = l.Price
		}
		if l.Price > summary.PriceRange.Max {
			summary.PriceRange.Max = l.Price
		}
		total += l.Price
		eligible++
	}
	if eligible > 0 {
		summary.AveragePrice = int(math.Round(float64(total) / float64(eligible)))
	}

	seen := make(map[string]struct{})
	for i, l := range listings {
		if i >= topSourcesWindow {
			break
		}
		if l.Source == "" {
			continue
		}
		if _, ok := seen[l.Source]; ok {
			continue
		}
		seen[l.Source] = struct{}{}
		summary.TopSources = append(summary.TopSources, l.Source)
	}

	s.logger.Debug("[summary] %d listings, %d/%d platforms ok, avg £%d",
		summary.TotalListings, summary.PlatformsSearched, len(results), summary.AveragePrice)
	return summary
}
