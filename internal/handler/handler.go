package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"warranty-vault/internal/middleware"
	"warranty-vault/internal/model"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service-layer error onto an HTTP response. Domain
// errors keep their code and message; everything else becomes an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeProductNotFound,
			model.ErrCodeClaimNotFound,
			model.ErrCodeCategoryNotFound,
			model.ErrCodeAttachmentMissing:
			status = http.StatusNotFound
		case model.ErrCodeUnauthorised:
			status = http.StatusUnauthorized
		case model.ErrCodeForbidden:
			status = http.StatusForbidden
		}
		logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fallback, Code: model.ErrCodeInternalError})
}

// requestUser extracts the authenticated user's ID from the request context.
// The user-context middleware guarantees it is present on every /api route.
func requestUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", logger)
		return uuid.UUID{}, false
	}
	return userID, true
}

// pathID parses a UUID route parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" format", logger)
		return uuid.UUID{}, false
	}
	return id, true
}
