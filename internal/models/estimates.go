package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingSnapshot represents one estimation input: the observed bookings,
// product availability and choice model for a market/flight over a booking
// period. Either SelectionProbs+NoFlyProb or Utilities+MarketShare must be
// supplied; when only utilities are present the engine derives the
// probabilities itself.
type BookingSnapshot struct {
	ID             uuid.UUID                  `json:"id"`
	Market         string                     `json:"market"`  // e.g. "JFK-LHR"
	Flight         string                     `json:"flight"`  // e.g. "BA178"
	Period         string                     `json:"period"`  // booking period label, e.g. "2026-07"
	Observed       map[string]float64         `json:"observed"`
	Availability   map[string]float64         `json:"availability"`
	Utilities      map[string]float64         `json:"utilities,omitempty"`
	MarketShare    float64                    `json:"market_share,omitempty"`
	SelectionProbs map[string]float64         `json:"selection_probs,omitempty"`
	NoFlyProb      float64                    `json:"no_fly_prob,omitempty"`
	Fares          map[string]decimal.Decimal `json:"fares,omitempty"`
	ObservedAt     time.Time                  `json:"observed_at"`
}

// HostEstimate represents the aggregate unconstrained demand, spill and
// recapture for the host across the whole snapshot.
type HostEstimate struct {
	Demand    float64 `json:"demand"`
	Spill     float64 `json:"spill"`
	Recapture float64 `json:"recapture"`
}

// ProductEstimate represents the unconstrained demand estimate for a single
// fare product, plus the revenue value of its spill at the product's fare.
type ProductEstimate struct {
	Product        string          `json:"product"`
	Demand         float64         `json:"demand"`
	Spill          float64         `json:"spill"`
	Recapture      float64         `json:"recapture"`
	SpilledRevenue decimal.Decimal `json:"spilled_revenue"`
}

// EstimationResult represents the full output of one estimation run.
type EstimationResult struct {
	ID                  uuid.UUID                  `json:"id"`
	SnapshotID          uuid.UUID                  `json:"snapshot_id"`
	Market              string                     `json:"market"`
	Flight              string                     `json:"flight"`
	Period              string                     `json:"period"`
	Host                HostEstimate               `json:"host"`
	Products            map[string]ProductEstimate `json:"products"`
	TotalSpilledRevenue decimal.Decimal            `json:"total_spilled_revenue"`
	ObservedAt          time.Time                  `json:"observed_at"`
	EstimatedAt         time.Time                  `json:"estimated_at"`
}

// EstimationParams holds parameters for the estimation engine
type EstimationParams struct {
	Calibrate          bool    // redistribute unaccounted spill to zero-booking products
	DefaultMarketShare float64 // used when a snapshot carries utilities but no market share
}

// KafkaBookingSnapshotMessage represents the Kafka message from the booking
// data pipeline
type KafkaBookingSnapshotMessage struct {
	Snapshots []BookingSnapshot `json:"snapshots"`
	Timestamp time.Time         `json:"timestamp"`
	BatchID   string            `json:"batch_id"`
}
