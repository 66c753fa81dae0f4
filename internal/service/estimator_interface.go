package service

import (
	"github.com/cypherlabdev/demand-estimator-service/internal/models"
)

// Estimator is an interface that abstracts demand estimation operations
// This allows for easier testing and mocking
type Estimator interface {
	Estimate(snapshot *models.BookingSnapshot) (*models.EstimationResult, error)
	EstimateBatch(snapshots []*models.BookingSnapshot) ([]*models.EstimationResult, error)
}
