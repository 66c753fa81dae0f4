package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
	"github.com/cypherlabdev/demand-estimator-service/pkg/estimator"
)

// EstimatorService orchestrates demand estimation with caching
type EstimatorService struct {
	engine *estimator.Engine
	cache  Cache
	logger zerolog.Logger
}

// NewEstimatorService creates a new estimator service
func NewEstimatorService(
	engine *estimator.Engine,
	cache Cache,
	logger zerolog.Logger,
) *EstimatorService {
	return &EstimatorService{
		engine: engine,
		cache:  cache,
		logger: logger.With().Str("component", "estimator_service").Logger(),
	}
}

// GetEstimates retrieves a cached estimation result for a market/flight/period
func (s *EstimatorService) GetEstimates(ctx context.Context, market, flight, period string) (*models.EstimationResult, error) {
	cached, err := s.cache.Get(ctx, market, flight, period)
	if err == nil && cached != nil {
		s.logger.Debug().
			Str("market", market).
			Str("flight", flight).
			Str("period", period).
			Msg("cache hit for estimation result")
		return cached, nil
	}

	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("market", market).
			Str("flight", flight).
			Str("period", period).
			Msg("cache error, a booking snapshot is needed to estimate")
	}

	return nil, fmt.Errorf("estimates not found in cache for market=%s flight=%s period=%s", market, flight, period)
}

// RunEstimation estimates a booking snapshot and caches the result
func (s *EstimatorService) RunEstimation(ctx context.Context, snapshot *models.BookingSnapshot) (*models.EstimationResult, error) {
	result, err := s.engine.Estimate(snapshot)
	if err != nil {
		return nil, fmt.Errorf("estimation failed: %w", err)
	}

	// Cache the result; cache errors never fail the request
	if err := s.cache.Set(ctx, result); err != nil {
		s.logger.Warn().
			Err(err).
			Str("market", result.Market).
			Str("flight", result.Flight).
			Str("period", result.Period).
			Msg("failed to cache estimation result")
	}

	s.logger.Info().
		Str("market", result.Market).
		Str("flight", result.Flight).
		Str("period", result.Period).
		Float64("host_demand", result.Host.Demand).
		Float64("host_spill", result.Host.Spill).
		Str("spilled_revenue", result.TotalSpilledRevenue.String()).
		Msg("estimated and cached snapshot")

	return result, nil
}

// RunBatchEstimation estimates a batch of snapshots and caches the results
func (s *EstimatorService) RunBatchEstimation(ctx context.Context, snapshots []*models.BookingSnapshot) ([]*models.EstimationResult, error) {
	if len(snapshots) == 0 {
		return nil, nil
	}

	results, err := s.engine.EstimateBatch(snapshots)
	if err != nil {
		return nil, fmt.Errorf("batch estimation failed: %w", err)
	}

	if err := s.cache.SetBatch(ctx, results); err != nil {
		s.logger.Warn().
			Err(err).
			Int("count", len(results)).
			Msg("failed to cache batch of estimation results")
	}

	s.logger.Info().
		Int("input_count", len(snapshots)).
		Int("output_count", len(results)).
		Msg("estimated and cached batch")

	return results, nil
}

// GetEstimatesByMarket retrieves all cached estimation results for a market
func (s *EstimatorService) GetEstimatesByMarket(ctx context.Context, market string) ([]*models.EstimationResult, error) {
	results, err := s.cache.GetByMarket(ctx, market)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve estimates for market: %w", err)
	}

	s.logger.Debug().
		Str("market", market).
		Int("count", len(results)).
		Msg("retrieved estimation results by market")

	return results, nil
}
