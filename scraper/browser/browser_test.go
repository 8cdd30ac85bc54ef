package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/utils"
)

func TestCardToListing(t *testing.T) {
	c := card{
		Title:    "2019 Ford Focus 1.0 EcoBoost Titanium",
		Price:    "£11,495",
		Meta:     "2019 (69 reg) | 32,100 miles | Petrol | Manual",
		Location: " Leeds ",
		Seller:   "Evans Halshaw",
		URL:      "https://example.invalid/cars/1",
	}

	l, ok := cardToListing(c, scraper.AutoTrader, 2)
	require.True(t, ok)

	assert.Equal(t, "autotrader-web-3", l.ID)
	assert.Equal(t, 11495, l.Price)
	assert.Equal(t, 2019, l.Year)
	require.NotNil(t, l.Mileage)
	assert.Equal(t, 32100, *l.Mileage)
	assert.Equal(t, "Petrol", l.FuelType)
	assert.Equal(t, "Manual", l.Transmission)
	assert.Equal(t, "Leeds", l.Location)
	assert.Equal(t, "autotrader", l.Source)
	assert.NotNil(t, l.Features)
}

func TestCardToListingSkipsUnusableCards(t *testing.T) {
	_, ok := cardToListing(card{Title: "", Price: "£1,000"}, scraper.Motors, 0)
	assert.False(t, ok)

	_, ok = cardToListing(card{Title: "Ford Ka", Price: "POA"}, scraper.Motors, 0)
	assert.False(t, ok)
}

func TestCardToListingWithoutMeta(t *testing.T) {
	l, ok := cardToListing(card{Title: "Vauxhall Corsa", Price: "£ 3,250"}, scraper.Gumtree, 0)
	require.True(t, ok)
	assert.Equal(t, 3250, l.Price)
	assert.Zero(t, l.Year)
	assert.Nil(t, l.Mileage)
}

func TestBuildURL(t *testing.T) {
	tmpl := "https://example.invalid/search?make={make}&model={model}&price-to={maxPrice}"

	got := BuildURL(tmpl, models.SearchFilters{Make: "Land Rover", Model: "Defender", MaxPrice: models.Int(45000)})
	assert.Equal(t, "https://example.invalid/search?make=Land+Rover&model=Defender&price-to=45000", got)

	got = BuildURL(tmpl, models.SearchFilters{})
	assert.Equal(t, "https://example.invalid/search?make=&model=&price-to=", got)
}

func TestSearchZeroLimitSkipsBrowser(t *testing.T) {
	p := New(Config{ID: scraper.Motors, SearchURL: "https://example.invalid"}, utils.NewNopLogger())
	got, err := p.Search(context.Background(), models.SearchFilters{}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, scraper.Motors, p.ID())
}
