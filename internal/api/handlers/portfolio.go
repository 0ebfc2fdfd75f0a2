package handlers

import (
	"net/http"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/response"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for consolidated portfolio views.
type PortfolioHandler struct {
	consolidationService *service.ConsolidationService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(consolidationService *service.ConsolidationService) *PortfolioHandler {
	return &PortfolioHandler{
		consolidationService: consolidationService,
	}
}

// Portfolio handles GET requests for the consolidated position list.
// Positions are replayed from the full transaction log on every request and
// enriched with live market prices where the quote provider can serve them.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of PositionSummary
// Error: 500 Internal Server Error if consolidation fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, _ *http.Request) {
	positions, err := h.consolidationService.GetPortfolio()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToConsolidate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// History handles GET requests for the equity curve.
//
// Endpoint: GET /api/portfolio/history
// Response: 200 OK with array of HistoricalPoint
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) History(w http.ResponseWriter, _ *http.Request) {
	points, err := h.consolidationService.GetEquityHistory()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetEquityHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// Gains handles GET requests for monthly realized-gain totals.
//
// Endpoint: GET /api/portfolio/gains
// Response: 200 OK with array of MonthlyGain, most recent month first
// Error: 500 Internal Server Error if consolidation fails
func (h *PortfolioHandler) Gains(w http.ResponseWriter, _ *http.Request) {
	gains, err := h.consolidationService.GetRealizedGains()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetRealizedGains.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, gains)
}
