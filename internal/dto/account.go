package dto

import (
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Name            string           `json:"name" binding:"required,max=100"`
	AccountType     string           `json:"accountType" binding:"required,oneof=cash e_wallet savings checking credit"`
	Currency        string           `json:"currency" binding:"omitempty,len=3,uppercase"`
	Description     string           `json:"description" binding:"omitempty,max=500"`
	InitialBalance  *decimal.Decimal `json:"initialBalance"` // Opening balance; defaults to zero
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	DueDateDay      *int             `json:"dueDateDay" binding:"omitempty,min=1,max=31"`
	BillingCycleDay *int             `json:"billingCycleDay" binding:"omitempty,min=1,max=31"`
}

// UpdateAccountRequest defines the JSON body for a partial account update.
// Balance is never writable here; only posted transactions move it.
type UpdateAccountRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=100"`
	AccountType     *string          `json:"accountType" binding:"omitempty,oneof=cash e_wallet savings checking credit"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	DueDateDay      *int             `json:"dueDateDay" binding:"omitempty,min=1,max=31"`
	BillingCycleDay *int             `json:"billingCycleDay" binding:"omitempty,min=1,max=31"`
	IsActive        *bool            `json:"isActive"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID       string           `json:"accountID"`
	Name            string           `json:"name"`
	AccountType     string           `json:"accountType"`
	Balance         decimal.Decimal  `json:"balance"`
	Currency        string           `json:"currency"`
	Description     string           `json:"description,omitempty"`
	CreditLimit     *decimal.Decimal `json:"creditLimit,omitempty"`
	DueDateDay      *int             `json:"dueDateDay,omitempty"`
	BillingCycleDay *int             `json:"billingCycleDay,omitempty"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
}

// ListAccountsResponse is a paginated account listing.
type ListAccountsResponse struct {
	Items   []AccountResponse `json:"items"`
	Total   int               `json:"total"`
	HasMore bool              `json:"hasMore"`
}

// BalancePoint is one step of an account's replayed balance history.
type BalancePoint struct {
	Date          time.Time       `json:"date"`
	Balance       decimal.Decimal `json:"balance"`
	TransactionID string          `json:"transactionID"`
	Change        decimal.Decimal `json:"change"`
}

// BalanceHistoryResponse reports the stored balance next to the balance
// recomputed by replaying every posted transaction; the two must agree for a
// consistent ledger.
type BalanceHistoryResponse struct {
	AccountID         string          `json:"accountID"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	CalculatedBalance decimal.Decimal `json:"calculatedBalance"`
	BalanceHistory    []BalancePoint  `json:"balanceHistory"`
}

// ToAccountResponse converts a domain Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		Balance:         a.Balance,
		Currency:        string(a.Currency),
		Description:     a.Description,
		CreditLimit:     a.CreditLimit,
		DueDateDay:      a.DueDateDay,
		BillingCycleDay: a.BillingCycleDay,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain Accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
