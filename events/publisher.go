package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"car-aggregator/models"
	"car-aggregator/utils"
)

// Publisher sends SearchCompleted events.
type Publisher interface {
	SearchCompleted(ctx context.Context, filters models.SearchFilters, result *models.SearchResult) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) SearchCompleted(context.Context, models.SearchFilters, *models.SearchResult) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes events to a durable topic exchange.
type RabbitPublisher struct {
	exchange string
	logger   *utils.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   channel
}

// NewRabbitPublisher dials url, opens a channel and declares exchange.
func NewRabbitPublisher(url, exchange string, logger *utils.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange %q: %w", exchange, err)
	}

	logger.Info("[events] Publishing to exchange %q", exchange)
	return &RabbitPublisher{exchange: exchange, logger: logger, conn: conn, ch: ch}, nil
}

// SearchCompleted implements Publisher.
func (p *RabbitPublisher) SearchCompleted(ctx context.Context, filters models.SearchFilters, result *models.SearchResult) error {
	body, err := json.Marshal(NewSearchCompleted(filters, result))
	if err != nil {
		return fmt.Errorf("events: encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return fmt.Errorf("events: publisher closed")
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, SearchCompletedRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    result.SearchID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("events: publish %s: %w", result.SearchID, err)
	}

	p.logger.Debug("[events] Published %s for %s", SearchCompletedRoutingKey, result.SearchID)
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = err
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}
