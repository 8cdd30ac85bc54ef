package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/storage"
	"car-aggregator/utils"
)

type stubSearcher struct {
	got models.SearchFilters
}

func (s *stubSearcher) SearchAllPlatforms(_ context.Context, filters models.SearchFilters) *models.SearchResult {
	s.got = filters
	return &models.SearchResult{
		SearchID:        "s-1",
		AllListings:     []models.Listing{{ID: "at-1", Title: "Toyota Yaris", Price: 8900, Source: "autotrader", Score: 110}},
		PlatformResults: []models.PlatformResult{{Platform: "autotrader", Success: true, Listings: []models.Listing{}}},
		Summary:         models.AggregationSummary{TotalListings: 1, PlatformsSearched: 1, TopSources: []string{"autotrader"}},
	}
}

func (s *stubSearcher) Providers() []scraper.ProviderID {
	return []scraper.ProviderID{scraper.Motors, scraper.AutoTrader}
}

type stubLoader struct {
	err error
}

func (l stubLoader) LoadSearch(_ context.Context, id string) (*models.SearchResult, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &models.SearchResult{SearchID: id}, nil
}

func newTestRouter(s Searcher, l SearchLoader) http.Handler {
	return NewRouter(s, l, utils.NewNopLogger(), 0)
}

func TestSearchEndpoint(t *testing.T) {
	s := &stubSearcher{}
	router := newTestRouter(s, nil)

	body := `{"make":"Toyota","maxPrice":10000,"searchType":"budget","minPrice":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	assert.Equal(t, "Toyota", s.got.Make)
	require.NotNil(t, s.got.MaxPrice)
	assert.Equal(t, 10000, *s.got.MaxPrice)
	assert.Equal(t, -5, *s.got.MinPrice)
	assert.Equal(t, models.SearchBudget, s.got.SearchType)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "allListings")
	assert.Contains(t, resp, "platformResults")
	assert.Contains(t, resp, "summary")
}

func TestSearchEndpointEmptyBody(t *testing.T) {
	s := &stubSearcher{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	newTestRouter(s, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SearchFilters{}, s.got)
}

func TestSearchEndpointInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"make":`))
	rec := httptest.NewRecorder()
	newTestRouter(&stubSearcher{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request", resp.Error)
}

func TestProvidersEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&stubSearcher{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"providers":["motors","autotrader"]}`, rec.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&stubSearcher{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Providers)
}

func TestGetSearchEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		loader SearchLoader
		want   int
	}{
		{"archive disabled", nil, http.StatusNotFound},
		{"found", stubLoader{}, http.StatusOK},
		{"missing", stubLoader{err: storage.ErrSearchNotFound}, http.StatusNotFound},
		{"archive error", stubLoader{err: errors.New("conn refused")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/searches/abc", nil)
			rec := httptest.NewRecorder()
			newTestRouter(&stubSearcher{}, tt.loader).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
