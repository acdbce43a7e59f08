package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation mirrors the allocations table. Configuration is a jsonb column.
type Allocation struct {
	AllocationID   string
	UserID         string
	AccountID      string
	Name           string
	AllocationType string
	Description    string
	TargetAmount   decimal.Decimal
	CurrentAmount  decimal.Decimal
	MonthlyTarget  decimal.Decimal
	Currency       string
	TargetDate     *time.Time

	PeriodFrequency *string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time

	Configuration map[string]any

	IsActive bool
	AuditFields
}
