package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"warranty-vault/internal/service"
)

// CategoryHandler serves the global category reference data.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// GetAll handles GET /api/categories requests.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve categories", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
