package repositories

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AllocationListFilter narrows ListAllocations results.
type AllocationListFilter struct {
	AccountID      *string
	AllocationType *domain.AllocationType
	IsActive       *bool
	Limit          int
	Offset         int
}

// AllocationReader defines read operations for allocation data.
type AllocationReader interface {
	// FindAllocationByID retrieves an allocation owned by userID.
	FindAllocationByID(ctx context.Context, userID, allocationID string) (*domain.Allocation, error)

	// ListAllocations retrieves a filtered page of the user's allocations plus
	// the total match count.
	ListAllocations(ctx context.Context, userID string, filter AllocationListFilter) ([]domain.Allocation, int, error)

	// ListBudgetAllocations retrieves all active budget-type allocations owned
	// by userID. Used for category-based transaction matching.
	ListBudgetAllocations(ctx context.Context, userID string) ([]domain.Allocation, error)
}

// AllocationWriter defines write operations for allocation data.
type AllocationWriter interface {
	// SaveAllocation persists a new allocation.
	SaveAllocation(ctx context.Context, allocation domain.Allocation) error

	// UpdateAllocation updates an existing allocation's details.
	UpdateAllocation(ctx context.Context, allocation domain.Allocation) error

	// DeactivateAllocation marks an allocation as inactive.
	DeactivateAllocation(ctx context.Context, userID, allocationID string, now time.Time) error
}

// AllocationLedgerSupport defines operations the transaction repository uses
// to mutate budget progress atomically within its own database transaction.
type AllocationLedgerSupport interface {
	// ApplyBudgetImpactsInTx locks each impacted allocation, rolls its budget
	// period to the impact's reference date and adds the delta to its
	// progress. Impacts are applied in slice order.
	ApplyBudgetImpactsInTx(ctx context.Context, tx pgx.Tx, impacts []domain.BudgetImpact, now time.Time) error
}

// AllocationRepository combines all allocation-related repository interfaces.
type AllocationRepository interface {
	AllocationReader
	AllocationWriter
	AllocationLedgerSupport
}
