package storage

import (
	"context"

	"car-aggregator/models"
)

// ListingWriter is the interface any ranked-listing export must satisfy.
type ListingWriter interface {
	Write(listings []models.Listing) error
	Close() error
}

// SearchStore persists completed searches and reads them back.
type SearchStore interface {
	SaveSearch(ctx context.Context, filters models.SearchFilters, result *models.SearchResult) error
	LoadSearch(ctx context.Context, searchID string) (*models.SearchResult, error)
	Close() error
}

var (
	_ ListingWriter = (*CSVWriter)(nil)
	_ SearchStore   = (*PostgresArchive)(nil)
)
