package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warranty-vault/internal/model"
)

// MockClaimService is a mock implementation of ClaimService.
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) ListByProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.ClaimLog, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClaimLog), args.Error(1)
}

func (m *MockClaimService) Create(ctx context.Context, userID, productID uuid.UUID, in *model.ClaimInput) (*model.ClaimLog, error) {
	args := m.Called(ctx, userID, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClaimLog), args.Error(1)
}

func (m *MockClaimService) Update(ctx context.Context, userID, id uuid.UUID, in *model.ClaimUpdateInput) (*model.ClaimLog, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClaimLog), args.Error(1)
}

func TestClaimHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	productID := uuid.New()

	claim := model.ClaimLog{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Title:     "Screen flicker",
		Status:    model.ClaimPending,
	}

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.ClaimLog
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"title":"Screen flicker"}`,
			mockReturn:     &claim,
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed body maps to 400",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown product maps to 404",
			body:           `{"title":"Screen flicker"}`,
			mockError:      model.ErrProductNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockClaimService)
			h := NewClaimHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Create", mock.Anything, userID, productID, mock.AnythingOfType("*model.ClaimInput")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := authedRequest(http.MethodPost, "/api/products/"+productID.String()+"/claims", tt.body, userID, map[string]string{"id": productID.String()})
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestClaimHandler_Update(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	claimID := uuid.New()

	t.Run("Status transition", func(t *testing.T) {
		mockService := new(MockClaimService)
		h := NewClaimHandler(mockService, logger)

		updated := model.ClaimLog{ID: claimID, UserID: userID, Title: "Screen flicker", Status: model.ClaimResolved}
		mockService.On("Update", mock.Anything, userID, claimID, mock.AnythingOfType("*model.ClaimUpdateInput")).
			Return(&updated, nil)

		req := authedRequest(http.MethodPut, "/api/claims/"+claimID.String(), `{"status":"resolved"}`, userID, map[string]string{"id": claimID.String()})
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got model.ClaimLog
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, model.ClaimResolved, got.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("Unknown status maps to 400 with code", func(t *testing.T) {
		mockService := new(MockClaimService)
		h := NewClaimHandler(mockService, logger)

		mockService.On("Update", mock.Anything, userID, claimID, mock.AnythingOfType("*model.ClaimUpdateInput")).
			Return(nil, model.ErrInvalidClaimStatus)

		req := authedRequest(http.MethodPut, "/api/claims/"+claimID.String(), `{"status":"escalated"}`, userID, map[string]string{"id": claimID.String()})
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeInvalidClaimStatus, resp.Code)
		mockService.AssertExpectations(t)
	})
}

func TestClaimHandler_ListByProduct(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	productID := uuid.New()

	mockService := new(MockClaimService)
	h := NewClaimHandler(mockService, logger)

	claims := []model.ClaimLog{
		{ID: uuid.New(), ProductID: productID, UserID: userID, Title: "Second", Status: model.ClaimPending},
		{ID: uuid.New(), ProductID: productID, UserID: userID, Title: "First", Status: model.ClaimResolved},
	}
	mockService.On("ListByProduct", mock.Anything, userID, productID).Return(claims, nil)

	req := authedRequest(http.MethodGet, "/api/products/"+productID.String()+"/claims", "", userID, map[string]string{"id": productID.String()})
	rec := httptest.NewRecorder()

	h.ListByProduct(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.ClaimLog
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 2)
	mockService.AssertExpectations(t)
}
