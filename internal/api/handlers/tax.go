package handlers

import (
	"net/http"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/response"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// TaxHandler handles HTTP requests for the Brazilian monthly tax report.
type TaxHandler struct {
	consolidationService *service.ConsolidationService
}

// NewTaxHandler creates a new TaxHandler with the provided service dependency.
func NewTaxHandler(consolidationService *service.ConsolidationService) *TaxHandler {
	return &TaxHandler{
		consolidationService: consolidationService,
	}
}

// Report handles GET requests for the monthly tax report.
// Each month carries gross sales, taxable gain, tax due, the exemption flag
// and the per-sale details that produced the totals.
//
// Endpoint: GET /api/tax/report
// Response: 200 OK with array of TaxMonthlySummary, most recent month first
// Error: 500 Internal Server Error if consolidation fails
func (h *TaxHandler) Report(w http.ResponseWriter, _ *http.Request) {
	report, err := h.consolidationService.GetTaxReport()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetTaxReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
