package repository

import (
	"context"

	"github.com/google/uuid"

	"warranty-vault/internal/model"
)

// ProductRepository defines the interface for product data access operations.
// Every read is scoped to the owning user; callers above this layer never see
// another user's rows.
type ProductRepository interface {
	// ListByUser retrieves every product belonging to the user in creation
	// order, which downstream consumers rely on as the stable natural order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Product, error)

	// GetByID retrieves a single product owned by the user, or nil when the
	// product does not exist or belongs to someone else.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update rewrites the mutable fields of an existing product. Returns
	// model.ErrProductNotFound when no owned row matches.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product owned by the user. Returns
	// model.ErrProductNotFound when no owned row matches.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// SetAttachmentKey stores the object-store key for one attachment kind
	// (receipt, manual or image) on the product.
	SetAttachmentKey(ctx context.Context, userID, id uuid.UUID, kind model.AttachmentKind, key string) error
}

// CategoryRepository defines read access to the global category reference data.
type CategoryRepository interface {
	// GetAll retrieves every category ordered by name.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

// ClaimRepository defines the interface for warranty claim data access.
type ClaimRepository interface {
	// ListByProduct retrieves the claims raised against one owned product,
	// newest first.
	ListByProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.ClaimLog, error)

	// GetByID retrieves a single owned claim, or nil when it does not exist.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.ClaimLog, error)

	// Create inserts a new claim.
	Create(ctx context.Context, c *model.ClaimLog) error

	// Update rewrites the mutable fields of an owned claim. Returns
	// model.ErrClaimNotFound when no owned row matches.
	Update(ctx context.Context, c *model.ClaimLog) error
}

// ProfileRepository defines the interface for per-user preference storage.
type ProfileRepository interface {
	// Get retrieves the profile for the user, or nil when none exists yet.
	Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error)

	// Upsert creates or replaces the profile for p.UserID.
	Upsert(ctx context.Context, p *model.Profile) error
}
