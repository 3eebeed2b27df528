package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warranty-vault/internal/model"
)

// MockAttachmentStore is a mock implementation of storage.AttachmentStore.
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockAttachmentStore) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func newTestAttachmentService(productRepo *MockProductRepository, store *MockAttachmentStore, now time.Time) *attachmentService {
	svc := NewAttachmentService(productRepo, store, zerolog.Nop()).(*attachmentService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	product := testProduct(userID, "Camera", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 24)
	expectedKey := userID.String() + "/" + product.ID.String() + "/receipt.pdf"

	t.Run("Success stores blob and records key", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockAttachmentStore)
		svc := newTestAttachmentService(mockRepo, mockStore, now)

		body := strings.NewReader("%PDF-1.4")
		mockRepo.On("GetByID", ctx, userID, product.ID).Return(&product, nil)
		mockStore.On("Put", ctx, expectedKey, "application/pdf", body).Return(nil)
		mockRepo.On("SetAttachmentKey", ctx, userID, product.ID, model.AttachmentReceipt, expectedKey).Return(nil)

		view, err := svc.Upload(ctx, userID, product.ID, model.AttachmentReceipt, "receipt.pdf", "application/pdf", body)
		require.NoError(t, err)
		require.NotNil(t, view.ReceiptKey)
		assert.Equal(t, expectedKey, *view.ReceiptKey)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown kind is rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockAttachmentStore)
		svc := newTestAttachmentService(mockRepo, mockStore, now)

		view, err := svc.Upload(ctx, userID, product.ID, model.AttachmentKind("invoice"), "a.pdf", "application/pdf", strings.NewReader(""))
		require.Error(t, err)
		assert.Nil(t, view)
	})

	t.Run("Unknown product is rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockAttachmentStore)
		svc := newTestAttachmentService(mockRepo, mockStore, now)

		mockRepo.On("GetByID", ctx, userID, product.ID).Return(nil, nil)

		view, err := svc.Upload(ctx, userID, product.ID, model.AttachmentReceipt, "a.pdf", "application/pdf", strings.NewReader(""))
		require.Error(t, err)
		assert.Equal(t, model.ErrProductNotFound, err)
		assert.Nil(t, view)
		mockRepo.AssertExpectations(t)
	})
}

func TestAttachmentService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockAttachmentStore)
		svc := newTestAttachmentService(mockRepo, mockStore, now)

		product := testProduct(userID, "Camera", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 24)
		key := "some/key/receipt.pdf"
		product.ReceiptKey = &key

		mockRepo.On("GetByID", ctx, userID, product.ID).Return(&product, nil)
		mockStore.On("URL", ctx, key).Return("https://example.com/signed", nil)

		url, err := svc.DownloadURL(ctx, userID, product.ID, model.AttachmentReceipt)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/signed", url)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Missing attachment", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockAttachmentStore)
		svc := newTestAttachmentService(mockRepo, mockStore, now)

		product := testProduct(userID, "Camera", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 24)
		mockRepo.On("GetByID", ctx, userID, product.ID).Return(&product, nil)

		url, err := svc.DownloadURL(ctx, userID, product.ID, model.AttachmentManual)
		require.Error(t, err)
		assert.Equal(t, model.ErrAttachmentMissing, err)
		assert.Empty(t, url)
		mockRepo.AssertExpectations(t)
	})
}
