package dto

import (
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetEntryRequest defines the JSON body for creating a recurring
// budget entry.
type CreateBudgetEntryRequest struct {
	EntryType      string          `json:"entryType" binding:"required,oneof=income expense"`
	Name           string          `json:"name" binding:"required,max=150"`
	Description    string          `json:"description" binding:"omitempty,max=500"`
	Amount         decimal.Decimal `json:"amount" binding:"required,gte=0"`
	Currency       string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	Cadence        string          `json:"cadence" binding:"omitempty,oneof=monthly quarterly semi_annual annual"`
	NextOccurrence time.Time       `json:"nextOccurrence" binding:"required"`
	LeadTimeDays   int             `json:"leadTimeDays" binding:"omitempty,min=0,max=365"`
	EndMode        string          `json:"endMode" binding:"omitempty,oneof=indefinite on_date after_occurrences"`
	EndDate        *time.Time      `json:"endDate"`
	MaxOccurrences *int            `json:"maxOccurrences" binding:"omitempty,min=1"`
	AccountID      *string         `json:"accountID" binding:"omitempty,uuid"`
	CategoryID     *string         `json:"categoryID" binding:"omitempty,uuid"`
	AllocationID   *string         `json:"allocationID" binding:"omitempty,uuid"`
	IsAutopay      bool            `json:"isAutopay"`
}

// UpdateBudgetEntryRequest defines the JSON body for a partial budget entry
// update. Empty-string link ids clear the link.
type UpdateBudgetEntryRequest struct {
	EntryType      *string          `json:"entryType" binding:"omitempty,oneof=income expense"`
	Name           *string          `json:"name" binding:"omitempty,max=150"`
	Description    *string          `json:"description" binding:"omitempty,max=500"`
	Amount         *decimal.Decimal `json:"amount"`
	Cadence        *string          `json:"cadence" binding:"omitempty,oneof=monthly quarterly semi_annual annual"`
	NextOccurrence *time.Time       `json:"nextOccurrence"`
	LeadTimeDays   *int             `json:"leadTimeDays" binding:"omitempty,min=0,max=365"`
	EndMode        *string          `json:"endMode" binding:"omitempty,oneof=indefinite on_date after_occurrences"`
	EndDate        *time.Time       `json:"endDate"`
	MaxOccurrences *int             `json:"maxOccurrences" binding:"omitempty,min=1"`
	AccountID      *string          `json:"accountID"`
	CategoryID     *string          `json:"categoryID"`
	AllocationID   *string          `json:"allocationID"`
	IsAutopay      *bool            `json:"isAutopay"`
	IsActive       *bool            `json:"isActive"`
}

// BudgetEntryResponse is the API representation of a budget entry.
type BudgetEntryResponse struct {
	BudgetEntryID  string          `json:"budgetEntryID"`
	EntryType      string          `json:"entryType"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Cadence        string          `json:"cadence"`
	NextOccurrence time.Time       `json:"nextOccurrence"`
	LeadTimeDays   int             `json:"leadTimeDays"`
	EndMode        string          `json:"endMode"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	MaxOccurrences *int            `json:"maxOccurrences,omitempty"`
	AccountID      *string         `json:"accountID,omitempty"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	AllocationID   *string         `json:"allocationID,omitempty"`
	IsAutopay      bool            `json:"isAutopay"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

// ListBudgetEntriesResponse is a paginated budget entry listing.
type ListBudgetEntriesResponse struct {
	Items   []BudgetEntryResponse `json:"items"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

// ToBudgetEntryResponse converts a domain BudgetEntry to its API
// representation.
func ToBudgetEntryResponse(e *domain.BudgetEntry) BudgetEntryResponse {
	return BudgetEntryResponse{
		BudgetEntryID:  e.BudgetEntryID,
		EntryType:      string(e.EntryType),
		Name:           e.Name,
		Description:    e.Description,
		Amount:         e.Amount,
		Currency:       string(e.Currency),
		Cadence:        string(e.Cadence),
		NextOccurrence: e.NextOccurrence,
		LeadTimeDays:   e.LeadTimeDays,
		EndMode:        string(e.EndMode),
		EndDate:        e.EndDate,
		MaxOccurrences: e.MaxOccurrences,
		AccountID:      e.AccountID,
		CategoryID:     e.CategoryID,
		AllocationID:   e.AllocationID,
		IsAutopay:      e.IsAutopay,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ToBudgetEntryResponses converts a slice of domain BudgetEntries.
func ToBudgetEntryResponses(entries []domain.BudgetEntry) []BudgetEntryResponse {
	out := make([]BudgetEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToBudgetEntryResponse(&entries[i])
	}
	return out
}
