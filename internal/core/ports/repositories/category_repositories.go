package repositories

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
)

// CategoryListFilter narrows ListCategories results.
type CategoryListFilter struct {
	IsExpense *bool
	IsActive  *bool
	Limit     int
	Offset    int
}

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a category owned by userID.
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves a filtered page of the user's categories plus
	// the total match count.
	ListCategories(ctx context.Context, userID string, filter CategoryListFilter) ([]domain.Category, int, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeactivateCategory marks a category as inactive.
	DeactivateCategory(ctx context.Context, userID, categoryID string, now time.Time) error
}

// CategoryRepository combines all category-related repository interfaces.
type CategoryRepository interface {
	CategoryReader
	CategoryWriter
}
