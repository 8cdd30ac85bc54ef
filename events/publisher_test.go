package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-aggregator/models"
	"car-aggregator/utils"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleResult() *models.SearchResult {
	return &models.SearchResult{
		SearchID: "3f1c",
		AllListings: []models.Listing{
			{ID: "at-1", Price: 9000, Source: "autotrader"},
		},
		PlatformResults: []models.PlatformResult{
			{Platform: "autotrader", Success: true, SearchTime: 15, Listings: []models.Listing{{ID: "at-1"}}},
			{Platform: "ebay", Success: false, SearchTime: 3, Listings: []models.Listing{}, Error: "boom"},
		},
		Summary:     models.AggregationSummary{TotalListings: 1, PlatformsSearched: 1},
		CompletedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewSearchCompleted(t *testing.T) {
	ev := NewSearchCompleted(models.SearchFilters{Make: "Audi"}, sampleResult())

	assert.Equal(t, "3f1c", ev.SearchID)
	assert.Equal(t, "Audi", ev.Filters.Make)
	require.Len(t, ev.Platforms, 2)
	assert.Equal(t, PlatformOutcome{Platform: "autotrader", Success: true, Listings: 1, SearchTime: 15}, ev.Platforms[0])
	assert.Equal(t, "boom", ev.Platforms[1].Error)
}

func TestRabbitPublisherPublishesJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{exchange: "car-search", logger: utils.NewNopLogger(), ch: ch}

	require.NoError(t, p.SearchCompleted(context.Background(), models.SearchFilters{}, sampleResult()))

	assert.Equal(t, "car-search", ch.exchange)
	assert.Equal(t, SearchCompletedRoutingKey, ch.key)
	require.Len(t, ch.msgs, 1)
	msg := ch.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "3f1c", msg.MessageId)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var ev SearchCompleted
	require.NoError(t, json.Unmarshal(msg.Body, &ev))
	assert.Equal(t, 1, ev.Summary.PlatformsSearched)
}

func TestRabbitPublisherWrapsErrors(t *testing.T) {
	sentinel := errors.New("channel closed")
	p := &RabbitPublisher{exchange: "x", logger: utils.NewNopLogger(), ch: &fakeChannel{err: sentinel}}

	err := p.SearchCompleted(context.Background(), models.SearchFilters{}, sampleResult())
	assert.ErrorIs(t, err, sentinel)
}

func TestRabbitPublisherClose(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{exchange: "x", logger: utils.NewNopLogger(), ch: ch}

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.Error(t, p.SearchCompleted(context.Background(), models.SearchFilters{}, sampleResult()))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.SearchCompleted(context.Background(), models.SearchFilters{}, sampleResult()))
	assert.NoError(t, p.Close())
}
