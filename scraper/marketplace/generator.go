// Package marketplace fabricates plausible UK used-car listings for the five
// supported marketplaces. Output is deterministic for a given provider,
// filter set, result cap and seed.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"car-aggregator/models"
	"car-aggregator/scraper"
)

const (
	defaultMinPrice  = 500
	defaultMaxPrice  = 150000
	defaultAgeSpan   = 15
	overshootPercent = 5
)

// profile is what makes one marketplace's output look different from another's.
type profile struct {
	id        scraper.ProviderID
	idPrefix  string
	baseURL   string
	imageHost string

	minResults int
	maxResults int

	// priceSkew multiplies the depreciated catalogue price.
	priceSkew float64
	// softOvershoot lets a few listings land up to overshootPercent above maxPrice.
	softOvershoot bool
	// performanceBias prefers performance vehicles when the catalogue allows it.
	performanceBias bool

	ratingMin float64
	ratingMax float64
	sellers   []string
}

// Options configures every generator built by NewRegistry.
type Options struct {
	// Seed is mixed into every generator's randomness. 0 keeps the built-in sequence.
	Seed int64
	// Latency is the upper bound of the simulated per-call delay. 0 disables it.
	Latency time.Duration
}

// Generator is a scraper.Provider backed by the fabrication rules of one profile.
type Generator struct {
	profile profile
	seed    int64
	latency time.Duration
	clock   func() time.Time
}

func newGenerator(p profile, opts Options) *Generator {
	return &Generator{
		profile: p,
		seed:    opts.Seed,
		latency: opts.Latency,
		clock:   time.Now,
	}
}

// ID implements scraper.Provider.
func (g *Generator) ID() scraper.ProviderID { return g.profile.id }

// Search implements scraper.Provider.
func (g *Generator) Search(ctx context.Context, filters models.SearchFilters, maxResults int) ([]models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		return []models.Listing{}, nil
	}

	r := rand.New(rand.NewSource(g.seedFor(filters, maxResults)))

	if g.latency > 0 {
		delay := time.Duration(r.Int63n(int64(g.latency)) + 1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	now := g.clock()
	currentYear := now.Year()

	minYear, maxYear := currentYear-defaultAgeSpan, currentYear
	if filters.MinYear != nil {
		minYear = *filters.MinYear
	}
	if filters.MaxYear != nil {
		maxYear = *filters.MaxYear
	}
	minPrice, maxPrice := defaultMinPrice, defaultMaxPrice
	if filters.MinPrice != nil {
		minPrice = max(*filters.MinPrice, 0)
	}
	if filters.MaxPrice != nil {
		maxPrice = *filters.MaxPrice
	}
	if minYear > maxYear || minPrice > maxPrice || maxPrice < 0 {
		return []models.Listing{}, nil
	}

	candidates := g.candidates(filters)
	count := g.profile.minResults
	if spread := g.profile.maxResults - g.profile.minResults; spread > 0 {
		count += r.Intn(spread + 1)
	}
	count = min(count, maxResults)

	listings := make([]models.Listing, 0, count)
	for i := 0; i < count; i++ {
		v := candidates[r.Intn(len(candidates))]
		year := minYear + r.Intn(maxYear-minYear+1)
		age := max(currentYear-year, 0)

		price := g.price(r, v, age, minPrice, maxPrice, filters.MaxPrice != nil)
		mileage := g.mileage(r, age, filters.MaxMileage)

		engine := v.Engines[r.Intn(len(v.Engines))]
		trim := v.Trims[r.Intn(len(v.Trims))]

		fuel := v.Fuels[r.Intn(len(v.Fuels))]
		if filters.FuelType != "" {
			fuel = titleCase(filters.FuelType)
		}
		transmission := transmissions[r.Intn(len(transmissions))]
		if filters.Transmission != "" {
			transmission = titleCase(filters.Transmission)
		}

		id := fmt.Sprintf("%s%05d-%d", g.profile.idPrefix, r.Intn(100000), i+1)
		listedAt := now.Truncate(24*time.Hour).AddDate(0, 0, -r.Intn(30))

		condition := "Used"
		if age <= 1 && mileage < 10000 {
			condition = "Nearly New"
		}

		listings = append(listings, models.Listing{
			ID:           id,
			Title:        fmt.Sprintf("%s %s %s %s", v.Make, v.Model, engine, trim),
			Price:        price,
			Year:         year,
			Mileage:      models.Int(mileage),
			FuelType:     fuel,
			Transmission: transmission,
			Location:     g.location(r, filters),
			SellerName:   g.profile.sellers[r.Intn(len(g.profile.sellers))],
			Rating:       models.Float(g.rating(r)),
			ImageURL:     fmt.Sprintf("https://%s/%s/%s.jpg", g.profile.imageHost, slug(v.Make+" "+v.Model), id),
			Features:     g.features(r, v),
			URL:          g.profile.baseURL + "/" + id,
			BodyType:     v.Body,
			EngineSize:   engine,
			Doors:        v.Doors,
			Condition:    condition,
			ListedAt:     &listedAt,
			Source:       string(g.profile.id),
		})
	}
	return listings, nil
}

func (g *Generator) seedFor(filters models.SearchFilters, maxResults int) int64 {
	raw, _ := json.Marshal(filters)
	h := fnv.New64a()
	h.Write([]byte(g.profile.id))
	h.Write([]byte{'|'})
	h.Write(raw)
	h.Write([]byte("|" + strconv.Itoa(maxResults)))
	return int64(h.Sum64()) ^ g.seed
}

// candidates narrows the catalogue to the requested make and model. An unknown
// make or model still yields listings under the requested name.
func (g *Generator) candidates(filters models.SearchFilters) []vehicle {
	mk := strings.ToLower(strings.TrimSpace(filters.Make))
	md := strings.ToLower(strings.TrimSpace(filters.Model))

	var out []vehicle
	for _, v := range catalogue {
		if mk != "" && !strings.Contains(strings.ToLower(v.Make), mk) {
			continue
		}
		if md != "" && !strings.Contains(strings.ToLower(v.Model), md) {
			continue
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		v := vehicle{
			Make: titleCase(filters.Make), Model: titleCase(filters.Model),
			BasePrice: 22000, Body: "Hatchback", Doors: 5,
			Engines: []string{"1.5", "2.0"}, Trims: []string{"SE", "Sport"},
			Fuels: []string{"Petrol", "Diesel"},
		}
		if v.Make == "" {
			v.Make = "Ford"
		}
		if v.Model == "" {
			v.Model = "Hatchback"
		}
		return []vehicle{v}
	}

	if g.profile.performanceBias {
		var perf []vehicle
		for _, v := range out {
			if v.Performance {
				perf = append(perf, v)
			}
		}
		if len(perf) > 0 {
			return perf
		}
	}
	return out
}

func (g *Generator) price(r *rand.Rand, v vehicle, age, lo, hi int, capped bool) int {
	value := float64(v.BasePrice) * math.Pow(0.86, float64(age)) * g.profile.priceSkew
	value *= 0.9 + r.Float64()*0.2
	price := int(value/10) * 10

	if price < lo || price > hi {
		price = lo + r.Intn(hi-lo+1)
	}
	if capped && g.profile.softOvershoot && r.Intn(6) == 0 {
		price = hi + r.Intn(hi*overshootPercent/100+1)
	}
	return max(price, 0)
}

func (g *Generator) mileage(r *rand.Rand, age int, limit *int) int {
	perYear := 5000 + r.Intn(7000)
	mileage := age*perYear + r.Intn(3000)
	if limit != nil && mileage > *limit {
		if *limit <= 0 {
			return 0
		}
		mileage = r.Intn(*limit + 1)
	}
	return mileage
}

func (g *Generator) rating(r *rand.Rand) float64 {
	v := g.profile.ratingMin + r.Float64()*(g.profile.ratingMax-g.profile.ratingMin)
	return math.Round(v*10) / 10
}

// location approximates postcode/radius as text rather than geo-filtering.
func (g *Generator) location(r *rand.Rand, filters models.SearchFilters) string {
	postcode := strings.ToUpper(strings.TrimSpace(filters.Postcode))
	if postcode == "" {
		return towns[r.Intn(len(towns))]
	}
	radius := 50
	if filters.Radius != nil && *filters.Radius > 0 {
		radius = *filters.Radius
	}
	return fmt.Sprintf("%d miles from %s", r.Intn(radius)+1, postcode)
}

func (g *Generator) features(r *rand.Rand, v vehicle) []string {
	n := 3 + r.Intn(4)
	picked := make([]string, 0, n+2)
	for i := 0; i < n; i++ {
		picked = append(picked, featurePool[r.Intn(len(featurePool))])
	}
	if v.Performance {
		for i := 0; i < 2; i++ {
			picked = append(picked, performanceFeatures[r.Intn(len(performanceFeatures))])
		}
	}
	return uniqueStrings(picked)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
