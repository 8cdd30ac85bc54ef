// Package events announces completed searches to downstream consumers.
package events

import (
	"time"

	"car-aggregator/models"
)

// SearchCompletedRoutingKey is the routing key every SearchCompleted event is published with.
const SearchCompletedRoutingKey = "search.completed"

// PlatformOutcome is the per-provider part of a SearchCompleted event.
type PlatformOutcome struct {
	Platform   string `json:"platform"`
	Success    bool   `json:"success"`
	Listings   int    `json:"listings"`
	SearchTime int64  `json:"searchTime"`
	Error      string `json:"error,omitempty"`
}

// SearchCompleted is published once per aggregation call.
type SearchCompleted struct {
	SearchID    string                    `json:"searchId"`
	Filters     models.SearchFilters      `json:"filters"`
	Summary     models.AggregationSummary `json:"summary"`
	Platforms   []PlatformOutcome         `json:"platforms"`
	CompletedAt time.Time                 `json:"completedAt"`
}

// NewSearchCompleted builds the event for result. Listings themselves are not carried.
func NewSearchCompleted(filters models.SearchFilters, result *models.SearchResult) SearchCompleted {
	ev := SearchCompleted{
		SearchID:    result.SearchID,
		Filters:     filters,
		Summary:     result.Summary,
		Platforms:   make([]PlatformOutcome, 0, len(result.PlatformResults)),
		CompletedAt: result.CompletedAt,
	}
	for _, pr := range result.PlatformResults {
		ev.Platforms = append(ev.Platforms, PlatformOutcome{
			Platform:   pr.Platform,
			Success:    pr.Success,
			Listings:   len(pr.Listings),
			SearchTime: pr.SearchTime,
			Error:      pr.Error,
		})
	}
	return ev
}
