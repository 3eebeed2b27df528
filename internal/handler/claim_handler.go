package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/service"
)

// ClaimHandler handles warranty claim HTTP requests.
type ClaimHandler struct {
	service service.ClaimService
	logger  zerolog.Logger
}

// NewClaimHandler creates a new claim handler.
func NewClaimHandler(service service.ClaimService, logger zerolog.Logger) *ClaimHandler {
	return &ClaimHandler{
		service: service,
		logger:  logger.With().Str("handler", "claim").Logger(),
	}
}

// ListByProduct handles GET /api/products/{id}/claims requests.
func (h *ClaimHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	claims, err := h.service.ListByProduct(r.Context(), userID, productID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve claims", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, claims)
}

// Create handles POST /api/products/{id}/claims requests.
func (h *ClaimHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.ClaimInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	claim, err := h.service.Create(r.Context(), userID, productID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to create claim", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, claim)
}

// Update handles PUT /api/claims/{id} requests.
func (h *ClaimHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.ClaimUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	claim, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update claim", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, claim)
}
