package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/storage"
	"car-aggregator/utils"
)

// Searcher runs aggregated searches.
type Searcher interface {
	SearchAllPlatforms(ctx context.Context, filters models.SearchFilters) *models.SearchResult
	Providers() []scraper.ProviderID
}

// SearchLoader reads archived searches back.
type SearchLoader interface {
	LoadSearch(ctx context.Context, searchID string) (*models.SearchResult, error)
}

type SearchHandler struct {
	searcher Searcher
	loader   SearchLoader
	logger   *utils.Logger
}

func NewSearchHandler(searcher Searcher, loader SearchLoader, logger *utils.Logger) *SearchHandler {
	return &SearchHandler{searcher: searcher, loader: loader, logger: logger}
}

// Search runs one aggregation for the JSON filters in the body.
// An empty body means no filters. Filter values are not validated.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var filters models.SearchFilters
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be a JSON search filter object")
		return
	}

	result := h.searcher.SearchAllPlatforms(r.Context(), filters)
	writeJSON(w, http.StatusOK, result)
}

type providersResponse struct {
	Providers []scraper.ProviderID `json:"providers"`
}

func (h *SearchHandler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providersResponse{Providers: h.searcher.Providers()})
}

// GetSearch returns an archived search by ID.
func (h *SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.loader.LoadSearch(r.Context(), id)
	if errors.Is(err, storage.ErrSearchNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "search "+id+" not found")
		return
	}
	if err != nil {
		h.logger.Error("[api] load search %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "archive_error", "could not load search")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Providers int       `json:"providers"`
	Time      time.Time `json:"time"`
}

func (h *SearchHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Providers: len(h.searcher.Providers()),
		Time:      time.Now().UTC(),
	})
}
