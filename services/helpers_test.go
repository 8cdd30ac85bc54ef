package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

// fakeProvider returns canned listings, an error or a panic.
type fakeProvider struct {
	id       scraper.ProviderID
	listings []models.Listing
	err      error
	panicMsg string
	delay    time.Duration

	inFlight *int32
	peak     *int32
}

func (f *fakeProvider) ID() scraper.ProviderID { return f.id }

func (f *fakeProvider) Search(ctx context.Context, _ models.SearchFilters, maxResults int) ([]models.Listing, error) {
	if f.inFlight != nil {
		n := atomic.AddInt32(f.inFlight, 1)
		defer atomic.AddInt32(f.inFlight, -1)
		for {
			p := atomic.LoadInt32(f.peak)
			if n <= p || atomic.CompareAndSwapInt32(f.peak, p, n) {
				break
			}
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.listings) > maxResults {
		return f.listings[:maxResults], nil
	}
	return f.listings, nil
}

func listing(id, title string, price, year int, source string) models.Listing {
	return models.Listing{ID: id, Title: title, Price: price, Year: year, Source: source}
}

var errMarketplaceDown = errors.New("marketplace unavailable")

// fakeRegistry builds the five marketplaces with two listings each.
func fakeRegistry() *scraper.Registry {
	return scraper.NewRegistry(
		&fakeProvider{id: scraper.Motors, listings: []models.Listing{
			listing("mo-1", "Ford Fiesta Zetec", 6500, 2017, "motors"),
			listing("mo-2", "Vauxhall Corsa SE", 5200, 2016, "motors"),
		}},
		&fakeProvider{id: scraper.AutoTrader, listings: []models.Listing{
			listing("at-1", "Ford Fiesta Zetec", 6500, 2017, "autotrader"),
			listing("at-2", "Toyota Yaris Icon", 8900, 2019, "autotrader"),
		}},
		&fakeProvider{id: scraper.PistonHeads, listings: []models.Listing{
			listing("ph-1", "Golf GTI Performance", 9800, 2015, "pistonheads"),
		}},
		&fakeProvider{id: scraper.Gumtree, listings: []models.Listing{
			listing("gt-1", "Nissan Micra Acenta", 3100, 2014, "gumtree"),
			listing("gt-2", "Kia Picanto 1", 4200, 2018, "gumtree"),
		}},
		&fakeProvider{id: scraper.EBay, listings: []models.Listing{
			listing("eb-1", "Honda Jazz EX", 7400, 2016, "ebay"),
			listing("eb-2", "vauxhall corsa se", 5200, 2016, "ebay"),
		}},
	)
}
