package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/gastos-app/gastos_backend/internal/middleware"
)

// categoryService provides category operations.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// Ensure categoryService implements the portssvc.CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory persists a new category. Categories default to expense.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsExpense:   true,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: time.Now().UTC()},
	}
	if req.IsExpense != nil {
		category.IsExpense = *req.IsExpense
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("failed to save category", "error", err, "category_id", category.CategoryID)
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

// GetCategoryByID retrieves a single category owned by userID.
func (s *categoryService) GetCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return category, nil
}

// ListCategories retrieves a filtered page of the user's categories.
func (s *categoryService) ListCategories(ctx context.Context, userID string, filter portsrepo.CategoryListFilter) ([]domain.Category, int, error) {
	categories, total, err := s.categoryRepo.ListCategories(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// UpdateCategory applies a partial update.
func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsExpense != nil {
		category.IsExpense = *req.IsExpense
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = &now

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("failed to update category", "error", err, "category_id", categoryID)
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}
	return category, nil
}

// DeactivateCategory marks a category inactive. Existing transactions keep
// their category link.
func (s *categoryService) DeactivateCategory(ctx context.Context, userID, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID); err != nil {
		return fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	if err := s.categoryRepo.DeactivateCategory(ctx, userID, categoryID, time.Now().UTC()); err != nil {
		logger.Error("failed to deactivate category", "error", err, "category_id", categoryID)
		return fmt.Errorf("failed to deactivate category %s: %w", categoryID, err)
	}
	return nil
}
