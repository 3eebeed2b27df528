package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/service"
)

// ProfileHandler handles user preference HTTP requests.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /api/profile requests.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve profile", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /api/profile requests.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	profile, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to save profile", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
