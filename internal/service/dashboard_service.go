package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/repository"
	"warranty-vault/internal/warranty"
)

// dashboardService implements DashboardService. Every figure in one response
// is derived from a single product snapshot and a single clock read.
type dashboardService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	upcomingLimit int
	recentLimit   int
	logger        zerolog.Logger
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	upcomingLimit, recentLimit int,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		upcomingLimit: upcomingLimit,
		recentLimit:   recentLimit,
		logger:        logger.With().Str("service", "dashboard").Logger(),
		now:           time.Now,
	}
}

// Overview returns the dashboard headline figures and short lists.
func (s *dashboardService) Overview(ctx context.Context, userID uuid.UUID) (*DashboardView, error) {
	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load products for dashboard")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	now := s.now()
	view := DashboardView{
		Summary:          warranty.Summarize(products, now),
		UpcomingExpiries: toViews(warranty.UpcomingExpiries(products, now, s.upcomingLimit), now),
		RecentlyAdded:    toViews(warranty.RecentlyAdded(products, s.recentLimit), now),
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Int("products", len(products)).
		Msg("dashboard computed")

	return &view, nil
}

// Analytics returns the full analytics breakdowns.
func (s *dashboardService) Analytics(ctx context.Context, userID uuid.UUID) (*AnalyticsView, error) {
	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load products for analytics")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	now := s.now()
	groups := warranty.CategoryBreakdown(products)
	items := make([]CategoryBreakdownItem, len(groups))
	for i, g := range groups {
		item := CategoryBreakdownItem{CategoryGroup: g}
		if g.CategoryID != nil {
			item.Category = byID[*g.CategoryID]
		}
		items[i] = item
	}

	view := AnalyticsView{
		Summary:          warranty.Summarize(products, now),
		Categories:       items,
		MonthlyPurchases: warranty.MonthlyPurchases(products),
	}
	return &view, nil
}

// Expiring returns the soon-to-expire products tiered by urgency.
func (s *dashboardService) Expiring(ctx context.Context, userID uuid.UUID) (*ExpiringView, error) {
	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load products for expiring view")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	now := s.now()
	buckets := warranty.BucketExpiries(products, now)

	view := ExpiringView{
		Week:    toViews(buckets.Week, now),
		Month:   toViews(buckets.Month, now),
		Quarter: toViews(buckets.Quarter, now),
	}
	return &view, nil
}

// toViews assesses every product against the same instant.
func toViews(products []model.Product, now time.Time) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = ProductView{
			Product:  products[i],
			Warranty: warranty.Assess(&products[i], now),
		}
	}
	return views
}
