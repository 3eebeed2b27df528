package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"warranty-vault/internal/model"
	"warranty-vault/internal/warranty"
)

// ProductView is a stored product enriched with its derived warranty figures.
// The assessment is computed fresh on every read; it is never persisted.
type ProductView struct {
	model.Product
	Warranty warranty.Assessment `json:"warranty"`
}

// DashboardView is the payload of the dashboard endpoint.
type DashboardView struct {
	Summary          warranty.Summary `json:"summary"`
	UpcomingExpiries []ProductView    `json:"upcomingExpiries"`
	RecentlyAdded    []ProductView    `json:"recentlyAdded"`
}

// CategoryBreakdownItem pairs one breakdown group with its category metadata.
// Category is nil for the uncategorised bucket.
type CategoryBreakdownItem struct {
	warranty.CategoryGroup
	Category *model.Category `json:"category"`
}

// AnalyticsView is the payload of the analytics endpoint.
type AnalyticsView struct {
	Summary          warranty.Summary        `json:"summary"`
	Categories       []CategoryBreakdownItem `json:"categories"`
	MonthlyPurchases []warranty.MonthCount   `json:"monthlyPurchases"`
}

// ExpiringView groups the soon-to-expire products into urgency tiers.
type ExpiringView struct {
	Week    []ProductView `json:"week"`
	Month   []ProductView `json:"month"`
	Quarter []ProductView `json:"quarter"`
}

// ListQuery carries the raw list-view parameters; the service translates it
// into the engine's pipeline query.
type ListQuery struct {
	Search   string
	Status   string
	Category string
	SortBy   string
}

// ProductService defines operations for product management.
type ProductService interface {
	// List runs the search/filter/sort pipeline over the user's products.
	List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]ProductView, error)

	// Get retrieves a single product with its warranty assessment.
	Get(ctx context.Context, userID, id uuid.UUID) (*ProductView, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, userID uuid.UUID, in *model.ProductInput) (*ProductView, error)

	// Update validates and rewrites an existing product.
	Update(ctx context.Context, userID, id uuid.UUID, in *model.ProductInput) (*ProductView, error)

	// Delete removes a product.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// DashboardService computes the aggregate views over a user's products.
type DashboardService interface {
	// Overview returns the dashboard headline figures and short lists.
	Overview(ctx context.Context, userID uuid.UUID) (*DashboardView, error)

	// Analytics returns the full analytics breakdowns.
	Analytics(ctx context.Context, userID uuid.UUID) (*AnalyticsView, error)

	// Expiring returns the soon-to-expire products tiered by urgency.
	Expiring(ctx context.Context, userID uuid.UUID) (*ExpiringView, error)
}

// CategoryService exposes the global category reference data.
type CategoryService interface {
	// GetAll retrieves every category.
	GetAll(ctx context.Context) ([]model.Category, error)
}

// ClaimService defines operations for warranty claim management.
type ClaimService interface {
	// ListByProduct retrieves the claims raised against one owned product.
	ListByProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.ClaimLog, error)

	// Create opens a new claim against an owned product.
	Create(ctx context.Context, userID, productID uuid.UUID, in *model.ClaimInput) (*model.ClaimLog, error)

	// Update amends an owned claim (status transitions, resolution notes).
	Update(ctx context.Context, userID, id uuid.UUID, in *model.ClaimUpdateInput) (*model.ClaimLog, error)
}

// ProfileService manages per-user preferences.
type ProfileService interface {
	// Get retrieves the user's profile, falling back to defaults when the
	// user has not saved one yet.
	Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error)

	// Update stores the user's profile.
	Update(ctx context.Context, userID uuid.UUID, in *model.ProfileInput) (*model.Profile, error)
}

// AttachmentService stores and serves product attachments.
type AttachmentService interface {
	// Upload stores one attachment for an owned product and records its key.
	Upload(ctx context.Context, userID, productID uuid.UUID, kind model.AttachmentKind, filename, contentType string, body io.Reader) (*ProductView, error)

	// DownloadURL returns a time-limited URL for an owned product's attachment.
	DownloadURL(ctx context.Context, userID, productID uuid.UUID, kind model.AttachmentKind) (string, error)
}
