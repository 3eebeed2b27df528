package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/service"
)

// maxUploadBytes caps attachment uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// AttachmentHandler handles product attachment HTTP requests.
type AttachmentHandler struct {
	service service.AttachmentService
	logger  zerolog.Logger
}

// NewAttachmentHandler creates a new attachment handler.
func NewAttachmentHandler(service service.AttachmentService, logger zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		logger:  logger.With().Str("handler", "attachment").Logger(),
	}
}

// Upload handles POST /api/products/{id}/attachments/{kind} multipart
// requests. The file travels in the "file" form field.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	kind := model.AttachmentKind(chi.URLParam(r, "kind"))

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file form field", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	product, err := h.service.Upload(r.Context(), userID, productID, kind, header.Filename, contentType, file)
	if err != nil {
		writeServiceError(w, err, "failed to upload attachment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Download handles GET /api/products/{id}/attachments/{kind} requests,
// responding with a time-limited download URL rather than the blob itself.
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	kind := model.AttachmentKind(chi.URLParam(r, "kind"))

	url, err := h.service.DownloadURL(r.Context(), userID, productID, kind)
	if err != nil {
		writeServiceError(w, err, "failed to resolve attachment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
