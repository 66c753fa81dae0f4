package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
)

// RedisCache caches estimation results in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 1 * time.Hour
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// resultKey builds the Redis key: estimates:{market}:{flight}:{period}
func resultKey(market, flight, period string) string {
	return fmt.Sprintf("estimates:%s:%s:%s", market, flight, period)
}

// Set caches an estimation result
func (c *RedisCache) Set(ctx context.Context, result *models.EstimationResult) error {
	key := resultKey(result.Market, result.Flight, result.Period)

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal estimation result: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached estimation result")

	return nil
}

// Get retrieves a cached estimation result
func (c *RedisCache) Get(ctx context.Context, market, flight, period string) (*models.EstimationResult, error) {
	key := resultKey(market, flight, period)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("estimation result not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var result models.EstimationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal estimation result: %w", err)
	}

	return &result, nil
}

// SetBatch caches multiple estimation results
func (c *RedisCache) SetBatch(ctx context.Context, results []*models.EstimationResult) error {
	if len(results) == 0 {
		return nil
	}

	// Use pipeline for batch operations
	pipe := c.client.Pipeline()

	for _, result := range results {
		key := resultKey(result.Market, result.Flight, result.Period)
		data, err := json.Marshal(result)
		if err != nil {
			c.logger.Error().Err(err).Msg("failed to marshal estimation result")
			continue
		}
		pipe.Set(ctx, key, data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Int("count", len(results)).
		Msg("cached batch of estimation results")

	return nil
}

// GetByMarket retrieves all cached estimation results for a market
func (c *RedisCache) GetByMarket(ctx context.Context, market string) ([]*models.EstimationResult, error) {
	pattern := fmt.Sprintf("estimates:%s:*", market)

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	results := make([]*models.EstimationResult, 0, len(keys))
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to get key")
			continue
		}

		var result models.EstimationResult
		if err := json.Unmarshal(data, &result); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal estimation result")
			continue
		}

		results = append(results, &result)
	}

	return results, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
