package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/repository"
)

// profileService implements ProfileService.
type profileService struct {
	profileRepo     repository.ProfileRepository
	defaultCurrency string
	defaultLanguage string
	logger          zerolog.Logger
	now             func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, defaultCurrency, defaultLanguage string, logger zerolog.Logger) ProfileService {
	return &profileService{
		profileRepo:     profileRepo,
		defaultCurrency: defaultCurrency,
		defaultLanguage: defaultLanguage,
		logger:          logger.With().Str("service", "profile").Logger(),
		now:             time.Now,
	}
}

// Get retrieves the user's profile, falling back to defaults when the user
// has not saved one yet.
func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile == nil {
		now := s.now().UTC()
		profile = &model.Profile{
			UserID:           userID,
			Currency:         s.defaultCurrency,
			Language:         s.defaultLanguage,
			NotificationDays: []int32{30, 7, 1},
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}

	return profile, nil
}

// Update stores the user's profile.
func (s *profileService) Update(ctx context.Context, userID uuid.UUID, in *model.ProfileInput) (*model.Profile, error) {
	now := s.now().UTC()

	currency := in.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	language := in.Language
	if language == "" {
		language = s.defaultLanguage
	}
	notificationDays := in.NotificationDays
	if len(notificationDays) == 0 {
		notificationDays = []int32{30, 7, 1}
	}

	profile := model.Profile{
		UserID:           userID,
		FullName:         in.FullName,
		Currency:         currency,
		Language:         language,
		NotificationDays: notificationDays,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.profileRepo.Upsert(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("profile saved")
	return &profile, nil
}
