package repositories

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
)

// BudgetEntryListFilter narrows ListBudgetEntries results. Before/After
// filter on next_occurrence.
type BudgetEntryListFilter struct {
	EntryType *domain.BudgetEntryType
	IsActive  *bool
	Before    *time.Time
	After     *time.Time
	Limit     int
	Offset    int
}

// BudgetEntryReader defines read operations for budget entry data.
type BudgetEntryReader interface {
	// FindBudgetEntryByID retrieves a budget entry owned by userID.
	FindBudgetEntryByID(ctx context.Context, userID, budgetEntryID string) (*domain.BudgetEntry, error)

	// ListBudgetEntries retrieves a filtered page of the user's entries,
	// ordered by next occurrence, plus the total match count.
	ListBudgetEntries(ctx context.Context, userID string, filter BudgetEntryListFilter) ([]domain.BudgetEntry, int, error)
}

// BudgetEntryWriter defines write operations for budget entry data.
type BudgetEntryWriter interface {
	// SaveBudgetEntry persists a new budget entry.
	SaveBudgetEntry(ctx context.Context, entry domain.BudgetEntry) error

	// UpdateBudgetEntry updates an existing budget entry.
	UpdateBudgetEntry(ctx context.Context, entry domain.BudgetEntry) error

	// DeleteBudgetEntry removes a budget entry. Transactions keep their
	// back-reference value but it dangles; templates are cheap to delete.
	DeleteBudgetEntry(ctx context.Context, userID, budgetEntryID string) error
}

// BudgetEntryRepository combines all budget-entry repository interfaces.
type BudgetEntryRepository interface {
	BudgetEntryReader
	BudgetEntryWriter
}
