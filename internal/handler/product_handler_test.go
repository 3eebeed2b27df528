package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warranty-vault/internal/middleware"
	"warranty-vault/internal/model"
	"warranty-vault/internal/service"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, userID uuid.UUID, q service.ListQuery) ([]service.ProductView, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ProductView), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, userID, id uuid.UUID) (*service.ProductView, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductView), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, userID uuid.UUID, in *model.ProductInput) (*service.ProductView, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductView), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, userID, id uuid.UUID, in *model.ProductInput) (*service.ProductView, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductView), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// authedRequest builds a request carrying the user's identity, optionally
// with a chi route parameter.
func authedRequest(method, target string, body string, userID uuid.UUID, params map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := middleware.WithUserID(req.Context(), userID)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func sampleView(userID uuid.UUID, name string) service.ProductView {
	return service.ProductView{
		Product: model.Product{
			ID:                uuid.New(),
			UserID:            userID,
			Name:              name,
			PurchaseDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			WarrantyMonths:    24,
			EUStatutoryMonths: 24,
		},
	}
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	tests := []struct {
		name           string
		target         string
		expectedQuery  service.ListQuery
		mockReturn     []service.ProductView
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success without filters",
			target:         "/api/products",
			expectedQuery:  service.ListQuery{},
			mockReturn:     []service.ProductView{sampleView(userID, "Laptop")},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Query parameters are forwarded",
			target: "/api/products?search=lap&status=active&sortBy=name",
			expectedQuery: service.ListQuery{
				Search: "lap",
				Status: "active",
				SortBy: "name",
			},
			mockReturn:     []service.ProductView{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid filter maps to 400",
			target:         "/api/products?status=bogus",
			expectedQuery:  service.ListQuery{Status: "bogus"},
			mockError:      model.NewDomainError(model.ErrCodeInvalidQuery, "Unknown status filter: bogus"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error maps to 500",
			target:         "/api/products",
			expectedQuery:  service.ListQuery{},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			h := NewProductHandler(mockService, logger)

			mockService.On("List", mock.Anything, userID, tt.expectedQuery).
				Return(tt.mockReturn, tt.mockError)

			req := authedRequest(http.MethodGet, tt.target, "", userID, nil)
			rec := httptest.NewRecorder()

			h.List(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_List_MissingIdentity(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "List")
}

func TestProductHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	view := sampleView(userID, "Camera")

	tests := []struct {
		name           string
		paramID        string
		mockReturn     *service.ProductView
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			paramID:        view.ID.String(),
			mockReturn:     &view,
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Product not found maps to 404",
			paramID:        view.ID.String(),
			mockError:      model.ErrProductNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed ID maps to 400",
			paramID:        "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			h := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Get", mock.Anything, userID, view.ID).
					Return(tt.mockReturn, tt.mockError)
			}

			req := authedRequest(http.MethodGet, "/api/products/"+tt.paramID, "", userID, map[string]string{"id": tt.paramID})
			rec := httptest.NewRecorder()

			h.Get(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	view := sampleView(userID, "Dishwasher")

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		h := NewProductHandler(mockService, logger)

		mockService.On("Create", mock.Anything, userID, mock.AnythingOfType("*model.ProductInput")).
			Return(&view, nil)

		body := `{"name":"Dishwasher","purchaseDate":"2025-01-01","warrantyMonths":24}`
		req := authedRequest(http.MethodPost, "/api/products", body, userID, nil)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got service.ProductView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "Dishwasher", got.Name)
		mockService.AssertExpectations(t)
	})

	t.Run("Malformed body maps to 400", func(t *testing.T) {
		mockService := new(MockProductService)
		h := NewProductHandler(mockService, logger)

		req := authedRequest(http.MethodPost, "/api/products", "{not json", userID, nil)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Create")
	})

	t.Run("Validation failure maps to 400 with code", func(t *testing.T) {
		mockService := new(MockProductService)
		h := NewProductHandler(mockService, logger)

		mockService.On("Create", mock.Anything, userID, mock.AnythingOfType("*model.ProductInput")).
			Return(nil, model.ErrInvalidWarranty)

		body := `{"name":"Dishwasher","purchaseDate":"2025-01-01","warrantyMonths":0}`
		req := authedRequest(http.MethodPost, "/api/products", body, userID, nil)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeInvalidWarranty, resp.Code)
		mockService.AssertExpectations(t)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	id := uuid.New()

	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "Success", expectedStatus: http.StatusNoContent},
		{name: "Not found maps to 404", mockError: model.ErrProductNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			h := NewProductHandler(mockService, logger)

			mockService.On("Delete", mock.Anything, userID, id).Return(tt.mockError)

			req := authedRequest(http.MethodDelete, "/api/products/"+id.String(), "", userID, map[string]string{"id": id.String()})
			rec := httptest.NewRecorder()

			h.Delete(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}
