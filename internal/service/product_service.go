package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"warranty-vault/internal/model"
	"warranty-vault/internal/repository"
	"warranty-vault/internal/warranty"
)

// defaultStatutoryMonths is applied when a request omits the statutory term.
// It is only a form default: the stored per-product value is authoritative
// and the engine never assumes it.
const defaultStatutoryMonths = 24

// productService implements ProductService.
type productService struct {
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	defaultLanguage string
	defaultCurrency string
	logger          zerolog.Logger
	now             func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	defaultLanguage, defaultCurrency string,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		defaultLanguage: defaultLanguage,
		defaultCurrency: defaultCurrency,
		logger:          logger.With().Str("service", "product").Logger(),
		now:             time.Now,
	}
}

// List runs the search/filter/sort pipeline over the user's products. The
// current time is read once per invocation so every product in the response
// is assessed against the same instant.
func (s *productService) List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]ProductView, error) {
	query, err := s.buildQuery(q)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	now := s.now()
	filtered := warranty.Apply(products, now, *query)

	views := make([]ProductView, len(filtered))
	for i := range filtered {
		views[i] = ProductView{
			Product:  filtered[i],
			Warranty: warranty.Assess(&filtered[i], now),
		}
	}

	s.logger.Debug().
		Int("total", len(products)).
		Int("matched", len(filtered)).
		Str("user_id", userID.String()).
		Msg("listed products")

	return views, nil
}

// buildQuery translates raw list parameters into an engine pipeline query.
func (s *productService) buildQuery(q ListQuery) (*warranty.Query, error) {
	query := &warranty.Query{
		Search:   q.Search,
		Status:   warranty.FilterAll,
		SortBy:   warranty.SortExpiry,
		Language: s.defaultLanguage,
	}

	switch q.Status {
	case "", string(warranty.FilterAll):
	case string(warranty.StatusActive), string(warranty.StatusExpiringSoon), string(warranty.StatusExpired):
		query.Status = warranty.StatusFilter(q.Status)
	default:
		return nil, model.NewDomainError(model.ErrCodeInvalidQuery, fmt.Sprintf("Unknown status filter: %s", q.Status))
	}

	switch q.SortBy {
	case "", string(warranty.SortExpiry):
	case string(warranty.SortName), string(warranty.SortPurchaseDate), string(warranty.SortPrice):
		query.SortBy = warranty.SortKey(q.SortBy)
	default:
		return nil, model.NewDomainError(model.ErrCodeInvalidQuery, fmt.Sprintf("Unknown sort key: %s", q.SortBy))
	}

	if q.Category != "" {
		categoryID, err := uuid.Parse(q.Category)
		if err != nil {
			return nil, model.NewDomainError(model.ErrCodeInvalidQuery, "Category filter must be a valid UUID")
		}
		query.CategoryID = &categoryID
	}

	return query, nil
}

// Get retrieves a single product with its warranty assessment.
func (s *productService) Get(ctx context.Context, userID, id uuid.UUID) (*ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	view := ProductView{
		Product:  *product,
		Warranty: warranty.Assess(product, s.now()),
	}
	return &view, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, userID uuid.UUID, in *model.ProductInput) (*ProductView, error) {
	fields, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := model.Product{
		ID:                uuid.New(),
		UserID:            userID,
		CategoryID:        in.CategoryID,
		Name:              in.Name,
		Brand:             in.Brand,
		Model:             in.Model,
		SerialNumber:      in.SerialNumber,
		PurchaseDate:      fields.purchaseDate,
		PurchasePrice:     fields.price,
		Currency:          fields.currency,
		RetailerName:      in.RetailerName,
		RetailerPhone:     in.RetailerPhone,
		RetailerEmail:     in.RetailerEmail,
		RetailerWebsite:   in.RetailerWebsite,
		WarrantyMonths:    in.WarrantyMonths,
		EUStatutoryMonths: fields.statutoryMonths,
		Notes:             in.Notes,
		IsTransferred:     in.IsTransferred,
		TransferDate:      fields.transferDate,
		TransferBuyerName: in.TransferBuyerName,
		IsActive:          fields.isActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("user_id", userID.String()).
		Msg("product created")

	view := ProductView{Product: product, Warranty: warranty.Assess(&product, now)}
	return &view, nil
}

// Update validates and rewrites an existing product.
func (s *productService) Update(ctx context.Context, userID, id uuid.UUID, in *model.ProductInput) (*ProductView, error) {
	existing, err := s.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product for update: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	fields, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := *existing
	product.CategoryID = in.CategoryID
	product.Name = in.Name
	product.Brand = in.Brand
	product.Model = in.Model
	product.SerialNumber = in.SerialNumber
	product.PurchaseDate = fields.purchaseDate
	product.PurchasePrice = fields.price
	product.Currency = fields.currency
	product.RetailerName = in.RetailerName
	product.RetailerPhone = in.RetailerPhone
	product.RetailerEmail = in.RetailerEmail
	product.RetailerWebsite = in.RetailerWebsite
	product.WarrantyMonths = in.WarrantyMonths
	product.EUStatutoryMonths = fields.statutoryMonths
	product.Notes = in.Notes
	product.IsTransferred = in.IsTransferred
	product.TransferDate = fields.transferDate
	product.TransferBuyerName = in.TransferBuyerName
	product.IsActive = fields.isActive
	product.UpdatedAt = now

	if err := s.productRepo.Update(ctx, &product); err != nil {
		return nil, err
	}

	view := ProductView{Product: product, Warranty: warranty.Assess(&product, now)}
	return &view, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Str("user_id", userID.String()).
		Msg("product deleted")

	return nil
}

// validatedFields carries the parsed and defaulted values of a ProductInput.
type validatedFields struct {
	purchaseDate    time.Time
	transferDate    *time.Time
	price           decimal.NullDecimal
	currency        string
	statutoryMonths int
	isActive        bool
}

// validate enforces the boundary invariants the warranty engine relies on:
// parseable dates, positive month counts and a non-negative price.
func (s *productService) validate(ctx context.Context, in *model.ProductInput) (*validatedFields, error) {
	if in.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}

	purchaseDate, err := time.ParseInLocation("2006-01-02", in.PurchaseDate, time.UTC)
	if err != nil {
		return nil, model.ErrInvalidDate
	}

	if in.WarrantyMonths <= 0 {
		return nil, model.ErrInvalidWarranty
	}

	statutoryMonths := in.EUStatutoryMonths
	if statutoryMonths == 0 {
		statutoryMonths = defaultStatutoryMonths
	}
	if statutoryMonths < 0 {
		return nil, model.ErrInvalidWarranty
	}

	price := decimal.NullDecimal{}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, model.ErrInvalidPrice
		}
		price = decimal.NullDecimal{Decimal: *in.PurchasePrice, Valid: true}
	}

	var transferDate *time.Time
	if in.TransferDate != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *in.TransferDate, time.UTC)
		if err != nil {
			return nil, model.ErrInvalidDate
		}
		transferDate = &parsed
	}

	if in.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if category == nil {
			return nil, model.ErrCategoryNotFound
		}
	}

	currency := in.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	return &validatedFields{
		purchaseDate:    purchaseDate,
		transferDate:    transferDate,
		price:           price,
		currency:        currency,
		statutoryMonths: statutoryMonths,
		isActive:        isActive,
	}, nil
}
