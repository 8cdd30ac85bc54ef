package services

import (
	"strings"

	"car-aggregator/models"
	"car-aggregator/scraper"
)

const (
	budgetThreshold  = 15000
	premiumThreshold = 25000
	// assumedMaxPrice stands in for an absent maxPrice in the budget and premium checks.
	assumedMaxPrice = 50000
)

var baselineProviders = []scraper.ProviderID{scraper.Motors, scraper.AutoTrader}

var budgetProviders = []scraper.ProviderID{scraper.Gumtree, scraper.EBay}

var performanceIndicators = []string{
	"sport", "gti", "amg", "turbo", "coupe", "convertible", "type r", "type-r",
	"m3", "m4", "m5", "rs3", "rs4", "rs6", "vrs", "cupra", "porsche", "911",
	"supra", "gt86", "ferrari", "lamborghini", "mclaren",
}

// SelectProviders decides which providers are worth querying for filters.
// The result preserves first-insertion order, holds no duplicates and only
// contains IDs present in registered.
func SelectProviders(filters models.SearchFilters, registered []scraper.ProviderID) []scraper.ProviderID {
	selected := append([]scraper.ProviderID{}, baselineProviders...)

	if filters.SearchType == models.SearchPerformance || hasPerformanceIndicator(filters) {
		selected = append(selected, scraper.PistonHeads)
	}

	maxPrice := assumedMaxPrice
	if filters.MaxPrice != nil {
		maxPrice = *filters.MaxPrice
	}

	if filters.SearchType == models.SearchBudget || maxPrice < budgetThreshold {
		selected = append(selected, budgetProviders...)
	}

	if filters.SearchType == models.SearchPremium || maxPrice > premiumThreshold {
		selected = moveToFront(selected, scraper.AutoTrader)
	}

	if filters.SearchType == models.SearchAll || filters.SearchType == "" {
		selected = append(selected, registered...)
	}

	known := make(map[scraper.ProviderID]bool, len(registered))
	for _, id := range registered {
		known[id] = true
	}

	seen := make(map[scraper.ProviderID]bool, len(selected))
	out := make([]scraper.ProviderID, 0, len(selected))
	for _, id := range selected {
		if seen[id] || !known[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func hasPerformanceIndicator(filters models.SearchFilters) bool {
	text := strings.ToLower(strings.TrimSpace(filters.Make + " " + filters.Model))
	if text == "" {
		return false
	}
	for _, indicator := range performanceIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

func moveToFront(ids []scraper.ProviderID, id scraper.ProviderID) []scraper.ProviderID {
	out := make([]scraper.ProviderID, 0, len(ids)+1)
	out = append(out, id)
	for _, other := range ids {
		if other != id {
			out = append(out, other)
		}
	}
	return out
}
