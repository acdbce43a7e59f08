package models

import "github.com/shopspring/decimal"

// Account mirrors the accounts table.
type Account struct {
	AccountID   string
	UserID      string
	Name        string
	AccountType string
	Balance     decimal.Decimal
	Currency    string
	Description string

	CreditLimit     *decimal.Decimal
	DueDateDay      *int
	BillingCycleDay *int

	IsActive bool
	AuditFields
}
