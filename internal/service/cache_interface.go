package service

import (
	"context"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	Set(ctx context.Context, result *models.EstimationResult) error
	Get(ctx context.Context, market, flight, period string) (*models.EstimationResult, error)
	SetBatch(ctx context.Context, results []*models.EstimationResult) error
	GetByMarket(ctx context.Context, market string) ([]*models.EstimationResult, error)
	Ping(ctx context.Context) error
	Close() error
}
