package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const (
	listingTTL    = 5 * time.Minute
	generationKey = "products:listings:generation"
)

// RedisClient caches serialized product listing pages. Listing keys embed a
// generation counter; bumping the counter on a product mutation orphans all
// previous entries, which then age out via TTL.
type RedisClient struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr string, logger zerolog.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		log:    logger,
	}, nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}

// GetListing returns a cached listing payload, or false on a miss. Redis
// failures degrade to a miss so the caller falls back to the database.
func (c *RedisClient) GetListing(ctx context.Context, key string) (string, bool) {
	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("failed to read listing from cache")
		}
		return "", false
	}
	return payload, true
}

// SetListing stores a listing payload with the standard TTL.
func (c *RedisClient) SetListing(ctx context.Context, key string, payload string) {
	if err := c.client.Set(ctx, key, payload, listingTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to write listing to cache")
	}
}

// Generation returns the current listing generation, or 0 when the counter
// is absent or unreadable.
func (c *RedisClient) Generation(ctx context.Context) int64 {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("failed to read listing generation")
		}
		return 0
	}
	return gen
}

// InvalidateListings bumps the generation counter, orphaning every cached
// listing page.
func (c *RedisClient) InvalidateListings(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("failed to bump listing generation")
	}
}
