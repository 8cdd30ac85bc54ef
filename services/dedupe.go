package services

import (
	"strconv"
	"strings"

	"car-aggregator/models"
	"car-aggregator/utils"
)

// Deduplicator collapses listings that advertise the same vehicle.
type Deduplicator struct {
	logger *utils.Logger
}

// NewDeduplicator creates a Deduplicator with the given logger.
func NewDeduplicator(logger *utils.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

// Dedupe keeps the first listing for every DedupKey, in input order.
func (d *Deduplicator) Dedupe(listings []models.Listing) []models.Listing {
	seen := utils.NewKeySet()
	result := make([]models.Listing, 0, len(listings))

	for _, l := range listings {
		if !seen.Add(DedupKey(l)) {
			d.logger.Debug("[dedupe] Duplicate skipped: %s (%s)", l.ID, l.Source)
			continue
		}
		result = append(result, l)
	}

	d.logger.Info("[dedupe] %d → %d listings (dropped %d)",
		len(listings), len(result), len(listings)-len(result))
	return result
}

// DedupKey is lower(title)-price-year. An absent year renders as an empty string.
func DedupKey(l models.Listing) string {
	year := ""
	if l.Year > 0 {
		year = strconv.Itoa(l.Year)
	}
	return strings.ToLower(l.Title) + "-" + strconv.Itoa(l.Price) + "-" + year
}
