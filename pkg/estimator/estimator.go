package estimator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
	"github.com/cypherlabdev/demand-estimator-service/pkg/mfrm"
)

// Engine runs MFRM unconstraining over booking snapshots
type Engine struct {
	params models.EstimationParams
	logger zerolog.Logger
}

// NewEngine creates a new estimation engine
func NewEngine(params models.EstimationParams, logger zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		logger: logger.With().Str("component", "estimator").Logger(),
	}
}

// Estimate runs the full MFRM pipeline over a single booking snapshot:
// derive selection probabilities if the snapshot carries raw utilities, solve
// host and class level, then value the spill at each product's fare.
func (e *Engine) Estimate(snapshot *models.BookingSnapshot) (*models.EstimationResult, error) {
	probs := snapshot.SelectionProbs
	noFlyProb := snapshot.NoFlyProb

	// Derive the choice model when the snapshot carries utilities instead of
	// precomputed probabilities
	if len(probs) == 0 {
		if len(snapshot.Utilities) == 0 {
			return nil, fmt.Errorf("%w: snapshot carries neither selection probabilities nor utilities", mfrm.ErrInvalidInput)
		}

		marketShare := snapshot.MarketShare
		if marketShare == 0 {
			marketShare = e.params.DefaultMarketShare
		}

		var err error
		probs, noFlyProb, err = mfrm.SelectionProbs(snapshot.Utilities, marketShare)
		if err != nil {
			return nil, fmt.Errorf("failed to derive selection probabilities: %w", err)
		}
	}

	host, err := mfrm.EstimateHostLevel(snapshot.Observed, snapshot.Availability, probs, noFlyProb)
	if err != nil {
		return nil, fmt.Errorf("host-level estimation failed: %w", err)
	}

	classEstimates, err := mfrm.EstimateClassLevel(snapshot.Observed, snapshot.Availability, probs, noFlyProb, e.params.Calibrate)
	if err != nil {
		return nil, fmt.Errorf("class-level estimation failed: %w", err)
	}

	products := make(map[string]models.ProductEstimate, len(classEstimates))
	totalSpilledRevenue := decimal.Zero

	for product, estimate := range classEstimates {
		productEstimate := models.ProductEstimate{
			Product:   product,
			Demand:    estimate.Demand,
			Spill:     estimate.Spill,
			Recapture: estimate.Recapture,
		}

		// Value the spill at the product's average fare
		if fare, ok := snapshot.Fares[product]; ok {
			productEstimate.SpilledRevenue = fare.Mul(decimal.NewFromFloat(estimate.Spill))
			totalSpilledRevenue = totalSpilledRevenue.Add(productEstimate.SpilledRevenue)
		}

		products[product] = productEstimate
	}

	return &models.EstimationResult{
		ID:         uuid.New(),
		SnapshotID: snapshot.ID,
		Market:     snapshot.Market,
		Flight:     snapshot.Flight,
		Period:     snapshot.Period,
		Host: models.HostEstimate{
			Demand:    host.Demand,
			Spill:     host.Spill,
			Recapture: host.Recapture,
		},
		Products:            products,
		TotalSpilledRevenue: totalSpilledRevenue,
		ObservedAt:          snapshot.ObservedAt,
		EstimatedAt:         time.Now().UTC(),
	}, nil
}

// EstimateBatch estimates a batch of booking snapshots
func (e *Engine) EstimateBatch(snapshots []*models.BookingSnapshot) ([]*models.EstimationResult, error) {
	results := make([]*models.EstimationResult, 0, len(snapshots))

	for _, snapshot := range snapshots {
		result, err := e.Estimate(snapshot)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("market", snapshot.Market).
				Str("flight", snapshot.Flight).
				Str("period", snapshot.Period).
				Msg("failed to estimate snapshot")
			continue
		}
		results = append(results, result)
	}

	e.logger.Info().
		Int("input_count", len(snapshots)).
		Int("output_count", len(results)).
		Msg("batch estimation complete")

	return results, nil
}
