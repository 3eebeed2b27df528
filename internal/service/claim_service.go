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

// claimService implements ClaimService.
type claimService struct {
	claimRepo   repository.ClaimRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewClaimService creates a new claim service.
func NewClaimService(claimRepo repository.ClaimRepository, productRepo repository.ProductRepository, logger zerolog.Logger) ClaimService {
	return &claimService{
		claimRepo:   claimRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "claim").Logger(),
		now:         time.Now,
	}
}

// ListByProduct retrieves the claims raised against one owned product.
func (s *claimService) ListByProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.ClaimLog, error) {
	if err := s.requireProduct(ctx, userID, productID); err != nil {
		return nil, err
	}

	claims, err := s.claimRepo.ListByProduct(ctx, userID, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to list claims")
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

// Create opens a new claim against an owned product.
func (s *claimService) Create(ctx context.Context, userID, productID uuid.UUID, in *model.ClaimInput) (*model.ClaimLog, error) {
	if in.Title == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Claim title is required")
	}

	if err := s.requireProduct(ctx, userID, productID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	claim := model.ClaimLog{
		ID:          uuid.New(),
		ProductID:   productID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.ClaimPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.claimRepo.Create(ctx, &claim); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	s.logger.Info().
		Str("claim_id", claim.ID.String()).
		Str("product_id", productID.String()).
		Msg("claim created")

	return &claim, nil
}

// Update amends an owned claim. Nil fields in the input are left unchanged.
func (s *claimService) Update(ctx context.Context, userID, id uuid.UUID, in *model.ClaimUpdateInput) (*model.ClaimLog, error) {
	claim, err := s.claimRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	if claim == nil {
		return nil, model.ErrClaimNotFound
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "Claim title must not be empty")
		}
		claim.Title = *in.Title
	}
	if in.Description != nil {
		claim.Description = in.Description
	}
	if in.Status != nil {
		status := model.ClaimStatus(*in.Status)
		if !status.Valid() {
			return nil, model.ErrInvalidClaimStatus
		}
		claim.Status = status
	}
	if in.Resolution != nil {
		claim.Resolution = in.Resolution
	}
	claim.UpdatedAt = s.now().UTC()

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("claim_id", claim.ID.String()).
		Str("status", string(claim.Status)).
		Msg("claim updated")

	return claim, nil
}

// requireProduct verifies the product exists and belongs to the user.
func (s *claimService) requireProduct(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	return nil
}
