package main

import (
	"flag"
	"strconv"
	"strings"

	"car-aggregator/models"
)

// optionalInt is an int flag that records whether it was set.
type optionalInt struct {
	v *int
}

func (o *optionalInt) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return err
	}
	o.v = &n
	return nil
}

type searchFlags struct {
	filters models.SearchFilters
	top     int
	csvPath string

	minPrice, maxPrice optionalInt
	minYear, maxYear   optionalInt
	maxMileage, radius optionalInt
	searchType         string
}

func parseSearchFlags(args []string, defaultCSV string) (*searchFlags, error) {
	sf := &searchFlags{}
	fs := flag.NewFlagSet("search", flag.ContinueOnError)

	fs.StringVar(&sf.filters.Make, "make", "", "vehicle make, e.g. Ford")
	fs.StringVar(&sf.filters.Model, "model", "", "vehicle model, e.g. Focus")
	fs.Var(&sf.minPrice, "min-price", "minimum price in GBP")
	fs.Var(&sf.maxPrice, "max-price", "maximum price in GBP")
	fs.Var(&sf.minYear, "min-year", "oldest registration year")
	fs.Var(&sf.maxYear, "max-year", "newest registration year")
	fs.Var(&sf.maxMileage, "max-mileage", "maximum mileage")
	fs.StringVar(&sf.filters.FuelType, "fuel", "", "Petrol, Diesel, Hybrid or Electric")
	fs.StringVar(&sf.filters.Transmission, "transmission", "", "Manual or Automatic")
	fs.StringVar(&sf.filters.Postcode, "postcode", "", "search centre postcode")
	fs.Var(&sf.radius, "radius", "search radius in miles")
	fs.StringVar(&sf.searchType, "type", "", "all, budget, premium or performance")
	fs.IntVar(&sf.top, "top", 10, "number of listings to print")
	fs.StringVar(&sf.csvPath, "csv", defaultCSV, "ranked listings CSV output path (empty disables)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	sf.filters.MinPrice = sf.minPrice.v
	sf.filters.MaxPrice = sf.maxPrice.v
	sf.filters.MinYear = sf.minYear.v
	sf.filters.MaxYear = sf.maxYear.v
	sf.filters.MaxMileage = sf.maxMileage.v
	sf.filters.Radius = sf.radius.v
	sf.filters.SearchType = models.SearchType(strings.ToLower(strings.TrimSpace(sf.searchType)))
	return sf, nil
}
