package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/repository"
	"warranty-vault/internal/storage"
	"warranty-vault/internal/warranty"
)

// attachmentService implements AttachmentService.
type attachmentService struct {
	productRepo repository.ProductRepository
	store       storage.AttachmentStore
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAttachmentService creates a new attachment service.
func NewAttachmentService(productRepo repository.ProductRepository, store storage.AttachmentStore, logger zerolog.Logger) AttachmentService {
	return &attachmentService{
		productRepo: productRepo,
		store:       store,
		logger:      logger.With().Str("service", "attachment").Logger(),
		now:         time.Now,
	}
}

// Upload stores one attachment for an owned product and records its key.
func (s *attachmentService) Upload(ctx context.Context, userID, productID uuid.UUID, kind model.AttachmentKind, filename, contentType string, body io.Reader) (*ProductView, error) {
	if !kind.Valid() {
		return nil, model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Unknown attachment kind: %s", kind))
	}

	product, err := s.productRepo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	key := storage.BuildKey(userID, productID, kind, filename)
	if err := s.store.Put(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	if err := s.productRepo.SetAttachmentKey(ctx, userID, productID, kind, key); err != nil {
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID.String()).
		Str("kind", string(kind)).
		Str("key", key).
		Msg("attachment uploaded")

	switch kind {
	case model.AttachmentReceipt:
		product.ReceiptKey = &key
	case model.AttachmentManual:
		product.ManualKey = &key
	case model.AttachmentImage:
		product.ImageKey = &key
	}

	view := ProductView{Product: *product, Warranty: warranty.Assess(product, s.now())}
	return &view, nil
}

// DownloadURL returns a time-limited URL for an owned product's attachment.
func (s *attachmentService) DownloadURL(ctx context.Context, userID, productID uuid.UUID, kind model.AttachmentKind) (string, error) {
	if !kind.Valid() {
		return "", model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Unknown attachment kind: %s", kind))
	}

	product, err := s.productRepo.GetByID(ctx, userID, productID)
	if err != nil {
		return "", fmt.Errorf("failed to check product: %w", err)
	}
	if product == nil {
		return "", model.ErrProductNotFound
	}

	var key *string
	switch kind {
	case model.AttachmentReceipt:
		key = product.ReceiptKey
	case model.AttachmentManual:
		key = product.ManualKey
	case model.AttachmentImage:
		key = product.ImageKey
	}
	if key == nil {
		return "", model.ErrAttachmentMissing
	}

	url, err := s.store.URL(ctx, *key)
	if err != nil {
		return "", fmt.Errorf("failed to resolve attachment URL: %w", err)
	}
	return url, nil
}
