package services

import (
	"math"
	"sort"

	"car-aggregator/models"
	"car-aggregator/scraper"
)

const (
	priceFitWeight  = 40.0
	priceFitTarget  = 0.8
	yearBase        = 2000
	yearWeight      = 2.0
	mileageCeiling  = 100.0
	ratingWeight    = 3.0
	defaultRating   = 4.0
	mileagePerPoint = 1000.0
)

// DefaultTrustBonus is the fixed additive bonus per known source.
var DefaultTrustBonus = map[string]float64{
	string(scraper.AutoTrader):  15,
	string(scraper.Motors):      10,
	string(scraper.PistonHeads): 8,
	string(scraper.EBay):        5,
	string(scraper.Gumtree):     3,
}

// Ranker orders listings by an additive relevance score.
type Ranker struct {
	trust map[string]float64
}

// NewRanker creates a Ranker. A nil trust table uses DefaultTrustBonus.
func NewRanker(trust map[string]float64) *Ranker {
	if trust == nil {
		trust = DefaultTrustBonus
	}
	return &Ranker{trust: trust}
}

// Score computes the relevance score of l for filters.
func (r *Ranker) Score(l models.Listing, filters models.SearchFilters) float64 {
	var score float64

	// Unclamped: far-off prices go negative.
	if filters.MaxPrice != nil && *filters.MaxPrice != 0 {
		maxPrice := float64(*filters.MaxPrice)
		target := maxPrice * priceFitTarget
		score += (1 - math.Abs(float64(l.Price)-target)/maxPrice) * priceFitWeight
	}

	if l.Year > 0 {
		score += float64(l.Year-yearBase) * yearWeight
	}

	if l.Mileage != nil {
		score += math.Max(0, mileageCeiling-float64(*l.Mileage)/mileagePerPoint)
	}

	score += r.trust[l.Source]

	rating := defaultRating
	if l.Rating != nil {
		rating = *l.Rating
	}
	score += rating * ratingWeight

	return score
}

// Rank returns a scored copy of listings sorted by descending score.
// Equal scores keep their input order.
func (r *Ranker) Rank(listings []models.Listing, filters models.SearchFilters) []models.Listing {
	ranked := make([]models.Listing, len(listings))
	copy(ranked, listings)

	for i := range ranked {
		ranked[i].Score = r.Score(ranked[i], filters)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
