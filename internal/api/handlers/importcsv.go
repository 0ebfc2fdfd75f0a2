package handlers

import (
	"errors"
	"net/http"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/response"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/importer"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// maxImportSize caps uploaded CSV files at 10 MB.
const maxImportSize = 10 << 20

// ImportHandler handles CSV transaction imports.
type ImportHandler struct {
	transactionService *service.TransactionService
}

// NewImportHandler creates a new ImportHandler with the provided service dependency.
func NewImportHandler(transactionService *service.TransactionService) *ImportHandler {
	return &ImportHandler{
		transactionService: transactionService,
	}
}

// ImportResponse reports how many transactions an import created.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportCSV handles POST requests carrying a transaction CSV file.
// The file is sent as multipart form data under the "file" field. The whole
// file is validated before anything is written: one bad row rejects the
// import so a retry never creates duplicates.
//
// Endpoint: POST /api/import/csv
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if the file is missing, headers are wrong, or a row is malformed
// Error: 500 Internal Server Error if the write fails
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "file field is required", err.Error())
		return
	}
	defer file.Close()

	transactions, err := importer.ParseTransactionsCSV(file)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrFailedToImportTransactions.Error(), err.Error())
		return
	}

	imported, err := h.transactionService.ImportTransactions(transactions)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCSVHeaders.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}
