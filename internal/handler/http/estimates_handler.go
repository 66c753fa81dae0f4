package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
	"github.com/cypherlabdev/demand-estimator-service/internal/service"
	"github.com/cypherlabdev/demand-estimator-service/pkg/mfrm"
)

// EstimatesHandler handles HTTP requests for demand estimates
type EstimatesHandler struct {
	service *service.EstimatorService
	logger  zerolog.Logger
}

// NewEstimatesHandler creates a new estimates HTTP handler
func NewEstimatesHandler(service *service.EstimatorService, logger zerolog.Logger) *EstimatesHandler {
	return &EstimatesHandler{
		service: service,
		logger:  logger.With().Str("component", "estimates_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *EstimatesHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/estimates - Run estimation on a booking snapshot
	// GET  /api/v1/estimates/:market/:flight/:period - Get cached estimates
	mux.HandleFunc("/api/v1/estimates", h.handleRunEstimation)
	mux.HandleFunc("/api/v1/estimates/", h.handleGetEstimates)

	// GET /api/v1/markets/:market/estimates - Get all estimates for a market
	mux.HandleFunc("/api/v1/markets/", h.handleGetMarketEstimates)
}

// handleRunEstimation handles POST /api/v1/estimates
func (h *EstimatesHandler) handleRunEstimation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var snapshot models.BookingSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if snapshot.Market == "" || snapshot.Flight == "" || snapshot.Period == "" {
		h.errorResponse(w, http.StatusBadRequest, "market, flight, and period are required")
		return
	}

	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}

	result, err := h.service.RunEstimation(r.Context(), &snapshot)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("market", snapshot.Market).
			Str("flight", snapshot.Flight).
			Str("period", snapshot.Period).
			Msg("estimation failed")

		switch {
		case errors.Is(err, mfrm.ErrInvalidInput),
			errors.Is(err, mfrm.ErrInvalidMarketShare),
			errors.Is(err, mfrm.ErrNoSpillTarget):
			h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.errorResponse(w, http.StatusInternalServerError, "estimation failed")
		}
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handleGetEstimates handles GET /api/v1/estimates/:market/:flight/:period
func (h *EstimatesHandler) handleGetEstimates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/estimates/:market/:flight/:period
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/estimates/")
	parts := strings.Split(path, "/")

	if len(parts) != 3 {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/estimates/:market/:flight/:period")
		return
	}

	market := parts[0]
	flight := parts[1]
	period := parts[2]

	if market == "" || flight == "" || period == "" {
		h.errorResponse(w, http.StatusBadRequest, "market, flight, and period are required")
		return
	}

	result, err := h.service.GetEstimates(r.Context(), market, flight, period)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("market", market).
			Str("flight", flight).
			Str("period", period).
			Msg("estimates not found")
		h.errorResponse(w, http.StatusNotFound, "estimates not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handleGetMarketEstimates handles GET /api/v1/markets/:market/estimates
func (h *EstimatesHandler) handleGetMarketEstimates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/markets/:market/estimates
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/markets/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "estimates" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/markets/:market/estimates")
		return
	}

	market := parts[0]
	if market == "" {
		h.errorResponse(w, http.StatusBadRequest, "market is required")
		return
	}

	results, err := h.service.GetEstimatesByMarket(r.Context(), market)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("market", market).
			Msg("failed to retrieve market estimates")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve estimates")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"market":    market,
		"count":     len(results),
		"estimates": results,
	})
}

// jsonResponse writes a JSON response
func (h *EstimatesHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *EstimatesHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
