package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetEntry mirrors the budget_entries table.
type BudgetEntry struct {
	BudgetEntryID string
	UserID        string
	EntryType     string
	Name          string
	Description   string
	Amount        decimal.Decimal
	Currency      string
	Cadence       string

	NextOccurrence time.Time
	LeadTimeDays   int
	EndMode        string
	EndDate        *time.Time
	MaxOccurrences *int

	AccountID    *string
	CategoryID   *string
	AllocationID *string

	IsAutopay bool
	IsActive  bool
	AuditFields
}
