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

// profileRepository implements the ProfileRepository interface using PostgreSQL.
type profileRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProfileRepository {
	return &profileRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "profile").Logger(),
	}
}

// Get retrieves the profile for the user.
func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT user_id, full_name, currency, language, notification_days, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p model.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Currency, &p.Language,
		&p.NotificationDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID.String()).Msg("profile not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query profile")
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &p, nil
}

// Upsert creates or replaces the profile for p.UserID.
func (r *profileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, currency, language, notification_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			currency = EXCLUDED.currency,
			language = EXCLUDED.language,
			notification_days = EXCLUDED.notification_days,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.UserID, p.FullName, p.Currency, p.Language,
		p.NotificationDays, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", p.UserID.String()).
			Msg("failed to upsert profile")
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}
