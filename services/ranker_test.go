package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-aggregator/models"
)

func TestScoreComponents(t *testing.T) {
	r := NewRanker(nil)

	l := models.Listing{
		Price:   16000,
		Year:    2020,
		Mileage: models.Int(30000),
		Rating:  models.Float(4.5),
		Source:  "autotrader",
	}
	// 40 + 40 + 70 + 15 + 13.5
	assert.InDelta(t, 178.5, r.Score(l, models.SearchFilters{MaxPrice: models.Int(20000)}), 1e-9)

	// Without maxPrice, year, mileage, source or rating: default rating only.
	assert.InDelta(t, 12.0, r.Score(models.Listing{Price: 5000}, models.SearchFilters{}), 1e-9)
}

func TestScoreMileageFloorsAtZero(t *testing.T) {
	r := NewRanker(nil)
	l := models.Listing{Mileage: models.Int(250000), Rating: models.Float(0)}
	assert.InDelta(t, 0.0, r.Score(l, models.SearchFilters{}), 1e-9)
}

func TestScorePriceFitIsUnclamped(t *testing.T) {
	r := NewRanker(nil)
	l := models.Listing{Price: 200000, Rating: models.Float(0)}
	// (1 - |200000-16000|/20000) * 40 = -328
	assert.InDelta(t, -328.0, r.Score(l, models.SearchFilters{MaxPrice: models.Int(20000)}), 1e-9)
}

func TestScoreUnknownSourceHasNoBonus(t *testing.T) {
	r := NewRanker(nil)
	known := r.Score(models.Listing{Source: "gumtree"}, models.SearchFilters{})
	unknown := r.Score(models.Listing{Source: "carsnip"}, models.SearchFilters{})
	assert.InDelta(t, 3.0, known-unknown, 1e-9)
}

func TestRankPriceFitMonotonic(t *testing.T) {
	r := NewRanker(nil)
	filters := models.SearchFilters{MaxPrice: models.Int(20000)}

	prices := []int{4000, 12000, 15500, 16000, 17000, 19999, 26000}
	for _, a := range prices {
		for _, b := range prices {
			in := []models.Listing{
				{ID: "a", Title: "Golf", Price: a, Year: 2018, Source: "motors"},
				{ID: "b", Title: "Golf", Price: b, Year: 2018, Source: "motors"},
			}
			out := r.Rank(in, filters)
			first, second := out[0], out[1]
			assert.LessOrEqual(t, abs(first.Price-16000), abs(second.Price-16000), "prices %d vs %d", a, b)
		}
	}
}

func TestRankSortsDescendingAndSetsScore(t *testing.T) {
	r := NewRanker(nil)
	in := []models.Listing{
		{ID: "old", Year: 2008, Source: "gumtree"},
		{ID: "new", Year: 2022, Source: "autotrader"},
		{ID: "mid", Year: 2015, Source: "motors"},
	}

	out := r.Rank(in, models.SearchFilters{})

	require.Len(t, out, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{out[0].ID, out[1].ID, out[2].ID})
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
	assert.Zero(t, in[0].Score, "input must not be mutated")
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	r := NewRanker(nil)
	in := []models.Listing{
		{ID: "1", Source: "ebay"},
		{ID: "2", Source: "ebay"},
		{ID: "3", Source: "ebay"},
	}
	out := r.Rank(in, models.SearchFilters{})
	assert.Equal(t, []string{"1", "2", "3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestRankCustomTrustTable(t *testing.T) {
	r := NewRanker(map[string]float64{"gumtree": 100})
	out := r.Rank([]models.Listing{
		{ID: "at", Source: "autotrader"},
		{ID: "gt", Source: "gumtree"},
	}, models.SearchFilters{})
	assert.Equal(t, "gt", out[0].ID)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
