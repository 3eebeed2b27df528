package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/service"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with search, filter and sort
// query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	params := r.URL.Query()
	query := service.ListQuery{
		Search:   params.Get("search"),
		Status:   params.Get("status"),
		Category: params.Get("category"),
		SortBy:   params.Get("sortBy"),
	}

	products, err := h.service.List(r.Context(), userID, query)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "failed to delete product", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
