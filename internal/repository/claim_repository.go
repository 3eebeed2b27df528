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

const claimColumns = `id, product_id, user_id, title, description, status, resolution, created_at, updated_at`

// claimRepository implements the ClaimRepository interface using PostgreSQL.
type claimRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewClaimRepository creates a new PostgreSQL-backed claim repository.
func NewClaimRepository(pool *pgxpool.Pool, logger zerolog.Logger) ClaimRepository {
	return &claimRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "claim").Logger(),
	}
}

func scanClaim(row pgx.Row, c *model.ClaimLog) error {
	return row.Scan(
		&c.ID, &c.ProductID, &c.UserID, &c.Title, &c.Description,
		&c.Status, &c.Resolution, &c.CreatedAt, &c.UpdatedAt,
	)
}

// ListByProduct retrieves the claims raised against one owned product, newest first.
func (r *claimRepository) ListByProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.ClaimLog, error) {
	query := `
		SELECT ` + claimColumns + `
		FROM claim_logs
		WHERE product_id = $1 AND user_id = $2
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, productID, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", productID.String()).
			Msg("failed to query claims")
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()

	var claims []model.ClaimLog
	for rows.Next() {
		var c model.ClaimLog
		if err := scanClaim(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan claim row")
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating claim rows")
		return nil, fmt.Errorf("error iterating claims: %w", err)
	}

	return claims, nil
}

// GetByID retrieves a single owned claim.
func (r *claimRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.ClaimLog, error) {
	query := `
		SELECT ` + claimColumns + `
		FROM claim_logs
		WHERE id = $1 AND user_id = $2
	`

	var c model.ClaimLog
	err := scanClaim(r.pool.QueryRow(ctx, query, id, userID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("claim_id", id.String()).Msg("claim not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("claim_id", id.String()).Msg("failed to query claim")
		return nil, fmt.Errorf("failed to query claim: %w", err)
	}

	return &c, nil
}

// Create inserts a new claim.
func (r *claimRepository) Create(ctx context.Context, c *model.ClaimLog) error {
	query := `
		INSERT INTO claim_logs (id, product_id, user_id, title, description, status, resolution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.ProductID, c.UserID, c.Title, c.Description,
		c.Status, c.Resolution, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("claim_id", c.ID.String()).
			Msg("failed to create claim")
		return fmt.Errorf("failed to create claim: %w", err)
	}

	r.logger.Debug().
		Str("claim_id", c.ID.String()).
		Str("product_id", c.ProductID.String()).
		Msg("claim created successfully")

	return nil
}

// Update rewrites the mutable fields of an owned claim.
func (r *claimRepository) Update(ctx context.Context, c *model.ClaimLog) error {
	query := `
		UPDATE claim_logs SET
			title = $3, description = $4, status = $5, resolution = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.Title, c.Description, c.Status, c.Resolution, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("claim_id", c.ID.String()).
			Msg("failed to update claim")
		return fmt.Errorf("failed to update claim: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrClaimNotFound
	}

	return nil
}
