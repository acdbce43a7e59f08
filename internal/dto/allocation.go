package dto

import (
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAllocationRequest defines the JSON body for creating an allocation.
type CreateAllocationRequest struct {
	AccountID       string           `json:"accountID" binding:"required,uuid"`
	Name            string           `json:"name" binding:"required,max=100"`
	AllocationType  string           `json:"allocationType" binding:"required,oneof=savings budget goal"`
	Description     string           `json:"description" binding:"omitempty,max=500"`
	TargetAmount    *decimal.Decimal `json:"targetAmount"`
	MonthlyTarget   *decimal.Decimal `json:"monthlyTarget"`
	Currency        string           `json:"currency" binding:"omitempty,len=3,uppercase"`
	TargetDate      *time.Time       `json:"targetDate"`
	PeriodFrequency string           `json:"periodFrequency" binding:"omitempty,oneof=daily weekly monthly quarterly"`
	Configuration   map[string]any   `json:"configuration"`
}

// UpdateAllocationRequest defines the JSON body for a partial allocation
// update. CurrentAmount is not writable for budget allocations; the ledger
// owns it.
type UpdateAllocationRequest struct {
	AccountID       *string          `json:"accountID" binding:"omitempty,uuid"`
	Name            *string          `json:"name" binding:"omitempty,max=100"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	TargetAmount    *decimal.Decimal `json:"targetAmount"`
	CurrentAmount   *decimal.Decimal `json:"currentAmount"` // savings/goal manual adjustment
	MonthlyTarget   *decimal.Decimal `json:"monthlyTarget"`
	TargetDate      *time.Time       `json:"targetDate"`
	PeriodFrequency *string          `json:"periodFrequency" binding:"omitempty,oneof=daily weekly monthly quarterly"`
	Configuration   map[string]any   `json:"configuration"`
	IsActive        *bool            `json:"isActive"`
}

// AllocationResponse is the API representation of an allocation.
type AllocationResponse struct {
	AllocationID    string          `json:"allocationID"`
	AccountID       string          `json:"accountID"`
	Name            string          `json:"name"`
	AllocationType  string          `json:"allocationType"`
	Description     string          `json:"description,omitempty"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CurrentAmount   decimal.Decimal `json:"currentAmount"`
	MonthlyTarget   decimal.Decimal `json:"monthlyTarget"`
	Currency        string          `json:"currency"`
	TargetDate      *time.Time      `json:"targetDate,omitempty"`
	PeriodFrequency string          `json:"periodFrequency,omitempty"`
	PeriodStart     *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd       *time.Time      `json:"periodEnd,omitempty"`
	Configuration   map[string]any  `json:"configuration,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// ListAllocationsResponse is a paginated allocation listing.
type ListAllocationsResponse struct {
	Items   []AllocationResponse `json:"items"`
	Total   int                  `json:"total"`
	HasMore bool                 `json:"hasMore"`
}

// AllocationProgressResponse reports progress details for one allocation.
type AllocationProgressResponse struct {
	AllocationID       string          `json:"allocationID"`
	CurrentAmount      decimal.Decimal `json:"currentAmount"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	ProgressPercentage decimal.Decimal `json:"progressPercentage"`
	MonthlyTarget      decimal.Decimal `json:"monthlyTarget"`
	MonthlyProgress    decimal.Decimal `json:"monthlyProgress"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	TargetDate         *time.Time      `json:"targetDate,omitempty"`
	DaysRemaining      *int            `json:"daysRemaining,omitempty"`
}

// GoalSummary is one goal inside the goals summary.
type GoalSummary struct {
	AllocationID       string          `json:"allocationID"`
	Name               string          `json:"name"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	CurrentAmount      decimal.Decimal `json:"currentAmount"`
	ProgressPercentage decimal.Decimal `json:"progressPercentage"`
	TargetDate         *time.Time      `json:"targetDate,omitempty"`
}

// GoalsSummaryResponse aggregates all active goal allocations.
type GoalsSummaryResponse struct {
	TotalGoals              int             `json:"totalGoals"`
	TotalTargetAmount       decimal.Decimal `json:"totalTargetAmount"`
	TotalCurrentAmount      decimal.Decimal `json:"totalCurrentAmount"`
	TotalProgressPercentage decimal.Decimal `json:"totalProgressPercentage"`
	Goals                   []GoalSummary   `json:"goals"`
}

// ToAllocationResponse converts a domain Allocation to its API
// representation.
func ToAllocationResponse(a *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:    a.AllocationID,
		AccountID:       a.AccountID,
		Name:            a.Name,
		AllocationType:  string(a.AllocationType),
		Description:     a.Description,
		TargetAmount:    a.TargetAmount,
		CurrentAmount:   a.CurrentAmount,
		MonthlyTarget:   a.MonthlyTarget,
		Currency:        string(a.Currency),
		TargetDate:      a.TargetDate,
		PeriodFrequency: string(a.PeriodFrequency),
		PeriodStart:     a.PeriodStart,
		PeriodEnd:       a.PeriodEnd,
		Configuration:   a.Configuration,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAllocationResponses converts a slice of domain Allocations.
func ToAllocationResponses(allocations []domain.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, len(allocations))
	for i := range allocations {
		out[i] = ToAllocationResponse(&allocations[i])
	}
	return out
}
