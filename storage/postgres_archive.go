package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"car-aggregator/models"
)

// ErrSearchNotFound is returned by LoadSearch for an unknown search ID.
var ErrSearchNotFound = errors.New("search not found")

// PostgresArchive persists completed searches and their ranked listings.
type PostgresArchive struct {
	db *sql.DB
}

// NewPostgresArchive opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresArchive.
func NewPostgresArchive(dsn string) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pa := &PostgresArchive{db: db}
	if err := pa.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pa, nil
}

func (pa *PostgresArchive) migrate() error {
	_, err := pa.db.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			id               UUID        PRIMARY KEY,
			filters          JSONB       NOT NULL,
			summary          JSONB       NOT NULL,
			platform_results JSONB       NOT NULL,
			total_listings   INTEGER     NOT NULL DEFAULT 0,
			completed_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS search_listings (
			search_id  UUID          NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
			rank       INTEGER       NOT NULL,
			listing_id TEXT          NOT NULL,
			source     VARCHAR(50)   NOT NULL DEFAULT '',
			title      TEXT          NOT NULL,
			price      INTEGER       NOT NULL DEFAULT 0,
			year       INTEGER,
			mileage    INTEGER,
			score      NUMERIC(10,2) NOT NULL DEFAULT 0,
			data       JSONB         NOT NULL,
			PRIMARY KEY (search_id, rank)
		);

		CREATE INDEX IF NOT EXISTS idx_searches_completed_at ON searches(completed_at);
		CREATE INDEX IF NOT EXISTS idx_search_listings_source ON search_listings(source);
		CREATE INDEX IF NOT EXISTS idx_search_listings_price  ON search_listings(price);
	`)
	return err
}

// SaveSearch stores the search row and all ranked listings in one transaction.
func (pa *PostgresArchive) SaveSearch(ctx context.Context, filters models.SearchFilters, result *models.SearchResult) error {
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("postgres: encode filters: %w", err)
	}
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return fmt.Errorf("postgres: encode summary: %w", err)
	}
	platformJSON, err := json.Marshal(platformOutcomes(result.PlatformResults))
	if err != nil {
		return fmt.Errorf("postgres: encode platform results: %w", err)
	}

	tx, err := pa.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO searches (id, filters, summary, platform_results, total_listings, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, result.SearchID, string(filtersJSON), string(summaryJSON), string(platformJSON), len(result.AllListings), result.CompletedAt); err != nil {
		return fmt.Errorf("postgres: insert search: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(result.AllListings); i += batchSize {
		end := min(i+batchSize, len(result.AllListings))
		query, args, err := listingBatch(result.SearchID, i, result.AllListings[i:end])
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert listings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

const listingColumns = 10

// listingBatch builds one multi-row INSERT. offset is the rank of batch[0] minus one.
func listingBatch(searchID string, offset int, batch []models.Listing) (string, []interface{}, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*listingColumns)

	for idx, l := range batch {
		data, err := json.Marshal(l)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: encode listing %s: %w", l.ID, err)
		}

		base := idx * listingColumns
		placeholders := make([]string, listingColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		var year, mileage sql.NullInt64
		if l.Year > 0 {
			year = sql.NullInt64{Int64: int64(l.Year), Valid: true}
		}
		if l.Mileage != nil {
			mileage = sql.NullInt64{Int64: int64(*l.Mileage), Valid: true}
		}

		valueArgs = append(valueArgs,
			searchID, offset+idx+1, l.ID, l.Source, l.Title, l.Price, year, mileage, l.Score, string(data))
	}

	query := fmt.Sprintf(`
		INSERT INTO search_listings (search_id, rank, listing_id, source, title, price, year, mileage, score, data)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs, nil
}

// platformOutcomes drops listings from platform results; they are stored per row.
func platformOutcomes(results []models.PlatformResult) []models.PlatformResult {
	out := make([]models.PlatformResult, len(results))
	for i, r := range results {
		r.Listings = []models.Listing{}
		out[i] = r
	}
	return out
}

// LoadSearch reads back an archived search with its listings in rank order.
func (pa *PostgresArchive) LoadSearch(ctx context.Context, searchID string) (*models.SearchResult, error) {
	var summaryJSON, platformJSON []byte
	result := &models.SearchResult{SearchID: searchID}

	err := pa.db.QueryRowContext(ctx, `
		SELECT summary, platform_results, completed_at
		FROM searches
		WHERE id = $1
	`, searchID).Scan(&summaryJSON, &platformJSON, &result.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSearchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch search: %w", err)
	}
	if err := json.Unmarshal(summaryJSON, &result.Summary); err != nil {
		return nil, fmt.Errorf("postgres: decode summary: %w", err)
	}
	if err := json.Unmarshal(platformJSON, &result.PlatformResults); err != nil {
		return nil, fmt.Errorf("postgres: decode platform results: %w", err)
	}

	rows, err := pa.db.QueryContext(ctx, `
		SELECT data
		FROM search_listings
		WHERE search_id = $1
		ORDER BY rank
	`, searchID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch listings: %w", err)
	}
	defer rows.Close()

	result.AllListings = []models.Listing{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		var l models.Listing
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("postgres: decode listing: %w", err)
		}
		result.AllListings = append(result.AllListings, l)
	}
	return result, rows.Err()
}

func (pa *PostgresArchive) Close() error {
	return pa.db.Close()
}
