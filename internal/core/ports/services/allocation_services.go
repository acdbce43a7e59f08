package services

import (
	"context"

	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/dto"
)

// AllocationSvcFacade defines allocation operations exposed to handlers.
type AllocationSvcFacade interface {
	CreateAllocation(ctx context.Context, userID string, req dto.CreateAllocationRequest) (*domain.Allocation, error)
	GetAllocationByID(ctx context.Context, userID, allocationID string) (*domain.Allocation, error)
	ListAllocations(ctx context.Context, userID string, filter portsrepo.AllocationListFilter) ([]domain.Allocation, int, error)
	UpdateAllocation(ctx context.Context, userID, allocationID string, req dto.UpdateAllocationRequest) (*domain.Allocation, error)
	DeactivateAllocation(ctx context.Context, userID, allocationID string) error

	// GetProgress reports target/current progress, monthly progress and days
	// remaining for one allocation.
	GetProgress(ctx context.Context, userID, allocationID string) (*dto.AllocationProgressResponse, error)

	// GetGoalsSummary aggregates all active goal allocations.
	GetGoalsSummary(ctx context.Context, userID string) (*dto.GoalsSummaryResponse, error)
}

// CategorySvcFacade defines category operations exposed to handlers.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, filter portsrepo.CategoryListFilter) ([]domain.Category, int, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeactivateCategory(ctx context.Context, userID, categoryID string) error
}

// BudgetEntrySvcFacade defines recurring budget entry operations exposed to
// handlers.
type BudgetEntrySvcFacade interface {
	CreateBudgetEntry(ctx context.Context, userID string, req dto.CreateBudgetEntryRequest) (*domain.BudgetEntry, error)
	GetBudgetEntryByID(ctx context.Context, userID, budgetEntryID string) (*domain.BudgetEntry, error)
	ListBudgetEntries(ctx context.Context, userID string, filter portsrepo.BudgetEntryListFilter) ([]domain.BudgetEntry, int, error)
	UpdateBudgetEntry(ctx context.Context, userID, budgetEntryID string, req dto.UpdateBudgetEntryRequest) (*domain.BudgetEntry, error)
	DeleteBudgetEntry(ctx context.Context, userID, budgetEntryID string) error
}
