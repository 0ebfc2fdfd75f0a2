package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/request"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/response"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService   *service.SystemService
	settingsService *service.SettingsService
	priceService    *service.PriceService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(
	systemService *service.SystemService,
	settingsService *service.SettingsService,
	priceService *service.PriceService,
) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		settingsService: settingsService,
		priceService:    priceService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	// System is healthy
	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Version handles GET requests to retrieve version information.
// Returns the application version and the applied schema version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	info, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// GetSetting handles GET requests for a system setting. Encrypted values
// are returned decrypted; the ciphertext never leaves the service layer.
//
// Endpoint: GET /api/system/settings/{key}
// Response: 200 OK with SystemSetting
// Error: 404 Not Found if the key does not exist
// Error: 500 Internal Server Error if retrieval or decryption fails
func (h *SystemHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := h.settingsService.GetSetting(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSettingNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSetting.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, setting)
}

// SetSetting handles PUT requests to store a system setting. Storing the
// quote provider token also rotates it into the running price service.
//
// Endpoint: PUT /api/system/settings/{key}
// Request Body: SetSettingRequest
// Response: 200 OK with the stored SystemSetting
// Error: 400 Bad Request if the body is invalid
// Error: 500 Internal Server Error if the write or encryption fails
func (h *SystemHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	req, err := parseJSON[request.SetSettingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	setting, err := h.settingsService.SetSetting(key, req.Value, req.Encrypted)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreSetting.Error(), err.Error())
		return
	}

	if key == service.QuoteProviderTokenKey {
		h.priceService.SetToken(req.Value)
	}

	response.RespondJSON(w, http.StatusOK, setting)
}
