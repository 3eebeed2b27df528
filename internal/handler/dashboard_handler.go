package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"warranty-vault/internal/service"
)

// DashboardHandler serves the aggregate views over a user's products.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Overview handles GET /api/dashboard requests.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to compute dashboard", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Analytics handles GET /api/analytics requests.
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Analytics(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to compute analytics", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Expiring handles GET /api/expiring requests.
func (h *DashboardHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Expiring(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to compute expiring products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
