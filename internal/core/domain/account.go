package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the kind of account a balance lives in.
type AccountType string

const (
	AccountCash     AccountType = "cash"
	AccountEWallet  AccountType = "e_wallet"
	AccountSavings  AccountType = "savings"
	AccountChecking AccountType = "checking"
	AccountCredit   AccountType = "credit"
)

// Account represents a financial account owned by a single user.
// Balance is mutated exclusively by the transaction service; it always equals
// the sum of all posted transaction effects touching this account.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // Owner; never shared
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"` // Signed; credit accounts go negative
	Currency    CurrencyCode    `json:"currency"`
	Description string          `json:"description"`

	// Credit card specific fields; nil for non-credit accounts.
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	DueDateDay      *int             `json:"dueDateDay"`      // Day of month
	BillingCycleDay *int             `json:"billingCycleDay"` // Day of month

	IsActive bool `json:"isActive"`
	AuditFields
}
