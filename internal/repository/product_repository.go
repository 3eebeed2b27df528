package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
)

const productColumns = `
	id, user_id, category_id, name, brand, model, serial_number,
	purchase_date, purchase_price, currency,
	retailer_name, retailer_phone, retailer_email, retailer_website,
	warranty_months, eu_statutory_months, notes,
	receipt_key, manual_key, image_key,
	is_transferred, transfer_date, transfer_buyer_name,
	is_active, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.UserID, &p.CategoryID, &p.Name, &p.Brand, &p.Model, &p.SerialNumber,
		&p.PurchaseDate, &p.PurchasePrice, &p.Currency,
		&p.RetailerName, &p.RetailerPhone, &p.RetailerEmail, &p.RetailerWebsite,
		&p.WarrantyMonths, &p.EUStatutoryMonths, &p.Notes,
		&p.ReceiptKey, &p.ManualKey, &p.ImageKey,
		&p.IsTransferred, &p.TransferDate, &p.TransferBuyerName,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
}

// ListByUser retrieves every product belonging to the user in creation order.
func (r *productRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product owned by the user.
func (r *productRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND user_id = $2
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id, userID), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, user_id, category_id, name, brand, model, serial_number,
			purchase_date, purchase_price, currency,
			retailer_name, retailer_phone, retailer_email, retailer_website,
			warranty_months, eu_statutory_months, notes,
			is_transferred, transfer_date, transfer_buyer_name,
			is_active, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20,
			$21, $22, $23
		)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.CategoryID, p.Name, p.Brand, p.Model, p.SerialNumber,
		p.PurchaseDate, p.PurchasePrice, p.Currency,
		p.RetailerName, p.RetailerPhone, p.RetailerEmail, p.RetailerWebsite,
		p.WarrantyMonths, p.EUStatutoryMonths, p.Notes,
		p.IsTransferred, p.TransferDate, p.TransferBuyerName,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", p.ID.String()).
			Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", p.ID.String()).
		Msg("product created successfully")

	return nil
}

// Update rewrites the mutable fields of an existing owned product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products SET
			category_id = $3, name = $4, brand = $5, model = $6, serial_number = $7,
			purchase_date = $8, purchase_price = $9, currency = $10,
			retailer_name = $11, retailer_phone = $12, retailer_email = $13, retailer_website = $14,
			warranty_months = $15, eu_statutory_months = $16, notes = $17,
			is_transferred = $18, transfer_date = $19, transfer_buyer_name = $20,
			is_active = $21, updated_at = $22
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID,
		p.CategoryID, p.Name, p.Brand, p.Model, p.SerialNumber,
		p.PurchaseDate, p.PurchasePrice, p.Currency,
		p.RetailerName, p.RetailerPhone, p.RetailerEmail, p.RetailerWebsite,
		p.WarrantyMonths, p.EUStatutoryMonths, p.Notes,
		p.IsTransferred, p.TransferDate, p.TransferBuyerName,
		p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", p.ID.String()).
			Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", p.ID.String()).Msg("product not found for update")
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product owned by the user.
func (r *productRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.String()).
			Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Str("product_id", id.String()).
		Msg("product deleted successfully")

	return nil
}

// SetAttachmentKey stores the object-store key for one attachment kind.
func (r *productRepository) SetAttachmentKey(ctx context.Context, userID, id uuid.UUID, kind model.AttachmentKind, key string) error {
	var column string
	switch kind {
	case model.AttachmentReceipt:
		column = "receipt_key"
	case model.AttachmentManual:
		column = "manual_key"
	case model.AttachmentImage:
		column = "image_key"
	default:
		return fmt.Errorf("unknown attachment kind: %s", kind)
	}

	// The column name comes from the switch above, never from user input.
	query := fmt.Sprintf(`UPDATE products SET %s = $3, updated_at = now() WHERE id = $1 AND user_id = $2`, column)

	tag, err := r.pool.Exec(ctx, query, id, userID, key)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.String()).
			Str("kind", string(kind)).
			Msg("failed to set attachment key")
		return fmt.Errorf("failed to set attachment key: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}
