package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"car-aggregator/models"
)

func TestPounds(t *testing.T) {
	p := NewSummaryPrinter(&bytes.Buffer{}, 5)
	assert.Equal(t, "£12,495", p.Pounds(12495))
	assert.Equal(t, "£950", p.Pounds(950))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewSummaryPrinter(&buf, 2)

	p.Print(&models.SearchResult{
		SearchID: "abc",
		AllListings: []models.Listing{
			{Title: "Toyota Yaris Icon", Price: 8900, Source: "autotrader", Score: 101.5},
			{Title: "Ford Fiesta Zetec", Price: 6500, Source: "motors", Score: 90},
			{Title: "Kia Picanto 1", Price: 4200, Source: "gumtree", Score: 80},
		},
		PlatformResults: []models.PlatformResult{
			{Platform: "autotrader", Success: true, SearchTime: 12},
			{Platform: "ebay", Success: false, Error: "marketplace unavailable"},
		},
		Summary: models.AggregationSummary{
			TotalListings: 3, PlatformsSearched: 1, AveragePrice: 6533,
			PriceRange: models.PriceRange{Min: 4200, Max: 8900},
			TopSources: []string{"autotrader", "motors", "gumtree"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "CAR SEARCH RESULTS")
	assert.Contains(t, out, "£6,533")
	assert.Contains(t, out, "£4,200 – £8,900")
	assert.Contains(t, out, "Toyota Yaris Icon")
	assert.NotContains(t, out, "Kia Picanto 1")
	assert.Contains(t, out, "marketplace unavailable")
	assert.Contains(t, out, "1/2")
	assert.NotContains(t, out, "\033[")
}

func TestPrintEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	NewSummaryPrinter(&buf, 10).Print(&models.SearchResult{})
	assert.Contains(t, buf.String(), "No cars found")
	assert.Contains(t, buf.String(), "No price data available")
}
