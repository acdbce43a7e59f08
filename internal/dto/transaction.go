package dto

import (
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the JSON body for creating a transaction.
// Currency fields left empty are defaulted from the involved account.
type CreateTransactionRequest struct {
	AccountID       string          `json:"accountID" binding:"required,uuid"`
	CategoryID      *string         `json:"categoryID" binding:"omitempty,uuid"`
	AllocationID    *string         `json:"allocationID" binding:"omitempty,uuid"`
	BudgetEntryID   *string         `json:"budgetEntryID" binding:"omitempty,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gte=0"`
	Currency        string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	Description     string          `json:"description" binding:"omitempty,max=500"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=debit credit transfer"`

	TransferFromAccountID *string          `json:"transferFromAccountID" binding:"omitempty,uuid"`
	TransferToAccountID   *string          `json:"transferToAccountID" binding:"omitempty,uuid"`
	TransferFee           *decimal.Decimal `json:"transferFee"`

	ProjectedAmount   *decimal.Decimal `json:"projectedAmount"`
	ProjectedCurrency *string          `json:"projectedCurrency" binding:"omitempty,len=3,uppercase"`
	OriginalAmount    *decimal.Decimal `json:"originalAmount"`
	OriginalCurrency  *string          `json:"originalCurrency" binding:"omitempty,len=3,uppercase"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate"`

	TransactionDate time.Time  `json:"transactionDate" binding:"required"`
	PostingDate     *time.Time `json:"postingDate"`

	IsPosted     *bool `json:"isPosted"` // Defaults to true
	IsReconciled bool  `json:"isReconciled"`
}

// UpdateTransactionRequest defines the JSON body for a partial transaction
// update. Absent fields keep their value; empty-string link ids clear the
// link (clearing budgetEntryID also clears the derived recurrence fields).
type UpdateTransactionRequest struct {
	AccountID       *string          `json:"accountID" binding:"omitempty,uuid"`
	CategoryID      *string          `json:"categoryID"`
	AllocationID    *string          `json:"allocationID"`
	BudgetEntryID   *string          `json:"budgetEntryID"`
	Amount          *decimal.Decimal `json:"amount"`
	Currency        *string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	TransactionType *string          `json:"transactionType" binding:"omitempty,oneof=debit credit transfer"`

	TransferFromAccountID *string          `json:"transferFromAccountID"`
	TransferToAccountID   *string          `json:"transferToAccountID"`
	TransferFee           *decimal.Decimal `json:"transferFee"`

	ProjectedAmount   *decimal.Decimal `json:"projectedAmount"`
	ProjectedCurrency *string          `json:"projectedCurrency" binding:"omitempty,len=3,uppercase"`
	OriginalAmount    *decimal.Decimal `json:"originalAmount"`
	OriginalCurrency  *string          `json:"originalCurrency" binding:"omitempty,len=3,uppercase"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate"`

	TransactionDate *time.Time `json:"transactionDate"`
	PostingDate     *time.Time `json:"postingDate"`

	IsPosted     *bool `json:"isPosted"`
	IsReconciled *bool `json:"isReconciled"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	CategoryID      *string         `json:"categoryID,omitempty"`
	AllocationID    *string         `json:"allocationID,omitempty"`
	BudgetEntryID   *string         `json:"budgetEntryID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description,omitempty"`
	TransactionType string          `json:"transactionType"`

	TransferFromAccountID *string         `json:"transferFromAccountID,omitempty"`
	TransferToAccountID   *string         `json:"transferToAccountID,omitempty"`
	TransferFee           decimal.Decimal `json:"transferFee"`

	ProjectedAmount   *decimal.Decimal `json:"projectedAmount,omitempty"`
	ProjectedCurrency *string          `json:"projectedCurrency,omitempty"`
	OriginalAmount    *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrency  *string          `json:"originalCurrency,omitempty"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate,omitempty"`

	TransactionDate time.Time  `json:"transactionDate"`
	PostingDate     *time.Time `json:"postingDate,omitempty"`

	ReceiptURL string `json:"receiptURL,omitempty"`
	InvoiceURL string `json:"invoiceURL,omitempty"`

	IsPosted            bool       `json:"isPosted"`
	IsReconciled        bool       `json:"isReconciled"`
	IsRecurring         bool       `json:"isRecurring"`
	RecurrenceFrequency *string    `json:"recurrenceFrequency,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// ListTransactionsResponse is a paginated transaction listing.
type ListTransactionsResponse struct {
	Items   []TransactionResponse `json:"items"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

// CategoryBreakdown splits a summary bucket into income and expenses.
type CategoryBreakdown struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// TransactionSummaryResponse reports totals over a date range. Transfers are
// excluded from the category breakdown.
type TransactionSummaryResponse struct {
	StartDate         time.Time                    `json:"startDate"`
	EndDate           time.Time                    `json:"endDate"`
	TotalIncome       decimal.Decimal              `json:"totalIncome"`
	TotalExpenses     decimal.Decimal              `json:"totalExpenses"`
	NetFlow           decimal.Decimal              `json:"netFlow"`
	TransactionCount  int                          `json:"transactionCount"`
	CategoryBreakdown map[string]CategoryBreakdown `json:"categoryBreakdown"`
}

// ToTransactionResponse converts a domain Transaction to its API
// representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         t.TransactionID,
		AccountID:             t.AccountID,
		CategoryID:            t.CategoryID,
		AllocationID:          t.AllocationID,
		BudgetEntryID:         t.BudgetEntryID,
		Amount:                t.Amount,
		Currency:              string(t.Currency),
		Description:           t.Description,
		TransactionType:       string(t.TransactionType),
		TransferFromAccountID: t.TransferFromAccountID,
		TransferToAccountID:   t.TransferToAccountID,
		TransferFee:           t.TransferFee,
		ProjectedAmount:       t.ProjectedAmount,
		ProjectedCurrency:     currencyPtrToString(t.ProjectedCurrency),
		OriginalAmount:        t.OriginalAmount,
		OriginalCurrency:      currencyPtrToString(t.OriginalCurrency),
		ExchangeRate:          t.ExchangeRate,
		TransactionDate:       t.TransactionDate,
		PostingDate:           t.PostingDate,
		ReceiptURL:            t.ReceiptURL,
		InvoiceURL:            t.InvoiceURL,
		IsPosted:              t.IsPosted,
		IsReconciled:          t.IsReconciled,
		IsRecurring:           t.IsRecurring,
		RecurrenceFrequency:   recurrencePtrToString(t.RecurrenceFrequency),
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

func currencyPtrToString(c *domain.CurrencyCode) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

func recurrencePtrToString(r *domain.RecurrenceFrequency) *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}
