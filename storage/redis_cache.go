package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"car-aggregator/models"
)

// RedisCache stores provider results as JSON values with a TTL.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

// Get returns the cached listings for key. A missing key is a miss, not an error.
func (r *RedisCache) Get(ctx context.Context, key string) ([]models.Listing, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}

	listings, err := decodeListings(raw)
	if err != nil {
		return nil, false, err
	}
	return listings, true, nil
}

// Set stores listings under key for ttl.
func (r *RedisCache) Set(ctx context.Context, key string, listings []models.Listing, ttl time.Duration) error {
	raw, err := encodeListings(listings)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func encodeListings(listings []models.Listing) ([]byte, error) {
	if listings == nil {
		listings = []models.Listing{}
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return nil, fmt.Errorf("redis: encode listings: %w", err)
	}
	return raw, nil
}

func decodeListings(raw []byte) ([]models.Listing, error) {
	var listings []models.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, fmt.Errorf("redis: decode listings: %w", err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}
