package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/request"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/response"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// RateHandler handles HTTP requests for exchange rates.
type RateHandler struct {
	fxRateService *service.FxRateService
}

// NewRateHandler creates a new RateHandler with the provided service dependency.
func NewRateHandler(fxRateService *service.FxRateService) *RateHandler {
	return &RateHandler{
		fxRateService: fxRateService,
	}
}

// GetRate handles GET requests for the stored rate of a currency pair.
// Query parameters: from, to (required), date (optional, defaults to today).
//
// Endpoint: GET /api/rates
// Response: 200 OK with ExchangeRate
// Error: 400 Bad Request if parameters are missing or malformed
// Error: 404 Not Found if no rate is stored for the pair
// Error: 500 Internal Server Error if retrieval fails
func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	date := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), err.Error())
			return
		}
		date = parsed.UTC()
	}

	rate, err := h.fxRateService.GetRate(from, to, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCurrency) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCurrency.Error(), "")
			return
		}
		if errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExchangeRateNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveExchangeRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

// SetRate handles POST requests to store a rate for a currency pair and date.
//
// Endpoint: POST /api/rates
// Request Body: SetExchangeRateRequest
// Response: 201 Created with the stored ExchangeRate
// Error: 400 Bad Request if the body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *RateHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetExchangeRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), err.Error())
		return
	}

	rate, err := h.fxRateService.SetRate(req.FromCurrency, req.ToCurrency, date.UTC(), req.Rate)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCurrency) || errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateExchangeRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, rate)
}
