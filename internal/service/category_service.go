package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"warranty-vault/internal/model"
	"warranty-vault/internal/repository"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves every category.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}
