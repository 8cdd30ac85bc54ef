package models

import "time"

// Listing is a normalized vehicle advertisement produced by a provider.
// IDs are unique within one provider's output only.
type Listing struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Price        int        `json:"price"`
	Year         int        `json:"year,omitempty"`
	Mileage      *int       `json:"mileage,omitempty"`
	FuelType     string     `json:"fuelType,omitempty"`
	Transmission string     `json:"transmission,omitempty"`
	Location     string     `json:"location,omitempty"`
	SellerName   string     `json:"sellerName"`
	Rating       *float64   `json:"rating,omitempty"`
	ImageURL     string     `json:"imageUrl"`
	Features     []string   `json:"features"`
	URL          string     `json:"url,omitempty"`
	BodyType     string     `json:"bodyType,omitempty"`
	EngineSize   string     `json:"engineSize,omitempty"`
	Doors        int        `json:"doors,omitempty"`
	Condition    string     `json:"condition,omitempty"`
	ListedAt     *time.Time `json:"listedAt,omitempty"`
	Source       string     `json:"source,omitempty"`

	// Score is filled in by the ranker.
	Score float64 `json:"score"`
}

// SearchType is the optional hint steering provider selection.
type SearchType string

const (
	SearchAll         SearchType = "all"
	SearchBudget      SearchType = "budget"
	SearchPremium     SearchType = "premium"
	SearchPerformance SearchType = "performance"
)

// SearchFilters is the user-supplied query. A nil pointer means "no constraint".
type SearchFilters struct {
	Make         string     `json:"make,omitempty"`
	Model        string     `json:"model,omitempty"`
	MinPrice     *int       `json:"minPrice,omitempty"`
	MaxPrice     *int       `json:"maxPrice,omitempty"`
	MinYear      *int       `json:"minYear,omitempty"`
	MaxYear      *int       `json:"maxYear,omitempty"`
	MaxMileage   *int       `json:"maxMileage,omitempty"`
	FuelType     string     `json:"fuelType,omitempty"`
	Transmission string     `json:"transmission,omitempty"`
	Postcode     string     `json:"postcode,omitempty"`
	Radius       *int       `json:"radius,omitempty"`
	SearchType   SearchType `json:"searchType,omitempty"`
}

// PlatformResult is one provider's outcome for a single aggregation call.
type PlatformResult struct {
	Platform   string    `json:"platform"`
	Listings   []Listing `json:"listings"`
	SearchTime int64     `json:"searchTime"` // milliseconds
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

// PriceRange holds the min and max of the eligible prices.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// AggregationSummary is derived from the final ranked listing set.
type AggregationSummary struct {
	TotalListings     int        `json:"totalListings"`
	PlatformsSearched int        `json:"platformsSearched"`
	AveragePrice      int        `json:"averagePrice"`
	PriceRange        PriceRange `json:"priceRange"`
	TopSources        []string   `json:"topSources"`
}

// SearchResult is everything one aggregation call returns.
type SearchResult struct {
	SearchID        string             `json:"searchId"`
	AllListings     []Listing          `json:"allListings"`
	PlatformResults []PlatformResult   `json:"platformResults"`
	Summary         AggregationSummary `json:"summary"`
	CompletedAt     time.Time          `json:"completedAt"`
}

// Int returns a pointer to v. Handy for building filters and listings.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
