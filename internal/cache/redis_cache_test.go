package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
)

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestRedisCache creates a test cache with miniredis
func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	logger := zerolog.Nop()

	config := RedisCacheConfig{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
		TTL:      time.Hour,
	}

	cache := NewRedisCache(config, logger)
	ctx := context.Background()

	return &testRedisCacheSetup{
		cache:     cache,
		miniRedis: mr,
		ctx:       ctx,
	}
}

// cleanup cleans up test resources
func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

// resultFixture returns an estimation result for cache tests
func resultFixture(market, flight, period string) *models.EstimationResult {
	return &models.EstimationResult{
		ID:         uuid.New(),
		SnapshotID: uuid.New(),
		Market:     market,
		Flight:     flight,
		Period:     period,
		Host: models.HostEstimate{
			Demand:    106.82,
			Spill:     12.82,
			Recapture: 6.0,
		},
		Products: map[string]models.ProductEstimate{
			"Y": {
				Product:        "Y",
				Demand:         117.5,
				Spill:          23.5,
				Recapture:      6.0,
				SpilledRevenue: decimal.NewFromFloat(10575),
			},
		},
		TotalSpilledRevenue: decimal.NewFromFloat(10575),
		ObservedAt:          time.Now().UTC().Truncate(time.Second),
		EstimatedAt:         time.Now().UTC().Truncate(time.Second),
	}
}

// TestNewRedisCache tests cache creation
func TestNewRedisCache(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.cache)
	assert.NotNil(t, setup.cache.client)
	assert.Equal(t, time.Hour, setup.cache.ttl)
}

// TestSet_Success tests successful result caching
func TestSet_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	result := resultFixture("JFK-LHR", "BA178", "2026-07")

	err := setup.cache.Set(setup.ctx, result)
	require.NoError(t, err)

	// verify the key exists with a TTL
	key := "estimates:JFK-LHR:BA178:2026-07"
	assert.True(t, setup.miniRedis.Exists(key))
	assert.Greater(t, setup.miniRedis.TTL(key), time.Duration(0))
}

// TestGet_Success tests retrieval of a cached result
func TestGet_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	result := resultFixture("JFK-LHR", "BA178", "2026-07")
	require.NoError(t, setup.cache.Set(setup.ctx, result))

	cached, err := setup.cache.Get(setup.ctx, "JFK-LHR", "BA178", "2026-07")

	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, result.ID, cached.ID)
	assert.Equal(t, result.Market, cached.Market)
	assert.InDelta(t, result.Host.Demand, cached.Host.Demand, 1e-9)
	assert.True(t, result.TotalSpilledRevenue.Equal(cached.TotalSpilledRevenue))
	require.Contains(t, cached.Products, "Y")
	assert.InDelta(t, 117.5, cached.Products["Y"].Demand, 1e-9)
}

// TestGet_NotFound tests cache miss behavior
func TestGet_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	cached, err := setup.cache.Get(setup.ctx, "JFK-LHR", "BA178", "2026-07")

	assert.Error(t, err)
	assert.Nil(t, cached)
	assert.Contains(t, err.Error(), "not found")
}

// TestSetBatch_Success tests batch caching
func TestSetBatch_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	results := []*models.EstimationResult{
		resultFixture("JFK-LHR", "BA178", "2026-07"),
		resultFixture("JFK-LHR", "BA174", "2026-07"),
		resultFixture("LAX-NRT", "JL61", "2026-07"),
	}

	err := setup.cache.SetBatch(setup.ctx, results)
	require.NoError(t, err)

	assert.True(t, setup.miniRedis.Exists("estimates:JFK-LHR:BA178:2026-07"))
	assert.True(t, setup.miniRedis.Exists("estimates:JFK-LHR:BA174:2026-07"))
	assert.True(t, setup.miniRedis.Exists("estimates:LAX-NRT:JL61:2026-07"))
}

// TestSetBatch_Empty tests that an empty batch is a no-op
func TestSetBatch_Empty(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetBatch(setup.ctx, nil)
	assert.NoError(t, err)
}

// TestGetByMarket_Success tests scanning all results for a market
func TestGetByMarket_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	results := []*models.EstimationResult{
		resultFixture("JFK-LHR", "BA178", "2026-07"),
		resultFixture("JFK-LHR", "BA174", "2026-07"),
		resultFixture("LAX-NRT", "JL61", "2026-07"),
	}
	require.NoError(t, setup.cache.SetBatch(setup.ctx, results))

	marketResults, err := setup.cache.GetByMarket(setup.ctx, "JFK-LHR")

	require.NoError(t, err)
	assert.Len(t, marketResults, 2)
	for _, result := range marketResults {
		assert.Equal(t, "JFK-LHR", result.Market)
	}
}

// TestGetByMarket_Empty tests scanning a market with no cached results
func TestGetByMarket_Empty(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	marketResults, err := setup.cache.GetByMarket(setup.ctx, "JFK-LHR")

	require.NoError(t, err)
	assert.Empty(t, marketResults)
}

// TestPing tests the Redis connection check
func TestPing(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NoError(t, setup.cache.Ping(setup.ctx))

	setup.miniRedis.Close()
	assert.Error(t, setup.cache.Ping(setup.ctx))
}
