package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID   string
	UserID          string
	AccountID       string
	CategoryID      *string
	AllocationID    *string
	BudgetEntryID   *string
	Amount          decimal.Decimal
	Currency        string
	Description     string
	TransactionType string

	TransferFromAccountID *string
	TransferToAccountID   *string
	TransferFee           decimal.Decimal

	ProjectedAmount   *decimal.Decimal
	ProjectedCurrency *string
	OriginalAmount    *decimal.Decimal
	OriginalCurrency  *string
	ExchangeRate      *decimal.Decimal

	TransactionDate time.Time
	PostingDate     *time.Time

	ReceiptURL *string
	InvoiceURL *string

	IsPosted     bool
	IsReconciled bool

	IsRecurring         bool
	RecurrenceFrequency *string

	AuditFields
}
