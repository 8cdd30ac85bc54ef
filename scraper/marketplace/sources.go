package marketplace

import "car-aggregator/scraper"

var (
	autoTraderProfile = profile{
		id: scraper.AutoTrader, idPrefix: "at-",
		baseURL: "https://www.autotrader.co.uk/car-details", imageHost: "m.atcdn.co.uk",
		minResults: 12, maxResults: 20,
		priceSkew: 1.05,
		ratingMin: 4.0, ratingMax: 5.0,
		sellers: []string{"Arnold Clark", "Evans Halshaw", "Motorpoint", "Cazoo Retail", "Sytner Group", "Private Seller"},
	}

	motorsProfile = profile{
		id: scraper.Motors, idPrefix: "mo-",
		baseURL: "https://www.motors.co.uk/car", imageHost: "images.motors.co.uk",
		minResults: 10, maxResults: 18,
		priceSkew: 1.0,
		ratingMin: 3.8, ratingMax: 4.9,
		sellers: []string{"Trade Centre UK", "Big Motoring World", "Carshop", "Lookers", "Private Seller"},
	}

	pistonHeadsProfile = profile{
		id: scraper.PistonHeads, idPrefix: "ph-",
		baseURL: "https://www.pistonheads.com/buy/listing", imageHost: "images.pistonheads.com",
		minResults: 6, maxResults: 12,
		priceSkew: 1.15, performanceBias: true,
		ratingMin: 4.2, ratingMax: 5.0,
		sellers: []string{"Hexagon Classics", "Romans International", "Jardine Performance", "Private Enthusiast"},
	}

	gumtreeProfile = profile{
		id: scraper.Gumtree, idPrefix: "gt-",
		baseURL: "https://www.gumtree.com/p/cars", imageHost: "i.ebayimg.com/gumtree",
		minResults: 8, maxResults: 16,
		priceSkew: 0.85, softOvershoot: true,
		ratingMin: 3.0, ratingMax: 4.6,
		sellers: []string{"Private Seller", "Budget Cars Direct", "Station Road Motors", "Value Motors"},
	}

	eBayProfile = profile{
		id: scraper.EBay, idPrefix: "eb-",
		baseURL: "https://www.ebay.co.uk/itm", imageHost: "i.ebayimg.com",
		minResults: 8, maxResults: 16,
		priceSkew: 0.8, softOvershoot: true,
		ratingMin: 3.2, ratingMax: 4.8,
		sellers: []string{"carsdirect_uk", "motortrader247", "Private Seller", "bargain-autos"},
	}
)

// NewAutoTrader returns the flagship general marketplace.
func NewAutoTrader(opts Options) *Generator { return newGenerator(autoTraderProfile, opts) }

// NewMotors returns the second baseline general marketplace.
func NewMotors(opts Options) *Generator { return newGenerator(motorsProfile, opts) }

// NewPistonHeads returns the performance-car specialist.
func NewPistonHeads(opts Options) *Generator { return newGenerator(pistonHeadsProfile, opts) }

// NewGumtree returns a budget-oriented classifieds source.
func NewGumtree(opts Options) *Generator { return newGenerator(gumtreeProfile, opts) }

// NewEBay returns a budget-oriented auction source.
func NewEBay(opts Options) *Generator { return newGenerator(eBayProfile, opts) }

// NewRegistry registers every marketplace in its canonical order.
func NewRegistry(opts Options) *scraper.Registry {
	return scraper.NewRegistry(
		NewMotors(opts),
		NewAutoTrader(opts),
		NewPistonHeads(opts),
		NewGumtree(opts),
		NewEBay(opts),
	)
}
