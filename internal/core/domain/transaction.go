package domain

import (
	"fmt"
	"time"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates how a transaction moves money.
type TransactionType string

const (
	Debit    TransactionType = "debit"
	Credit   TransactionType = "credit"
	Transfer TransactionType = "transfer"
)

// Transaction is a single ledger event against one account (or an
// account pair for transfers). Posted transactions have been applied to
// account balances and budget allocation progress; unposted ones are inert.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`        // Owner
	AccountID       string          `json:"accountID"`     // Primary account
	CategoryID      *string         `json:"categoryID"`
	AllocationID    *string         `json:"allocationID"`
	BudgetEntryID   *string         `json:"budgetEntryID"`
	Amount          decimal.Decimal `json:"amount"` // Non-negative
	Currency        CurrencyCode    `json:"currency"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transactionType"`

	// Transfer fields; source always equals AccountID.
	TransferFromAccountID *string         `json:"transferFromAccountID"`
	TransferToAccountID   *string         `json:"transferToAccountID"`
	TransferFee           decimal.Decimal `json:"transferFee"` // Charged to the source account

	// Informational multi-currency bookkeeping; never used to recompute
	// balances.
	ProjectedAmount   *decimal.Decimal `json:"projectedAmount"`
	ProjectedCurrency *CurrencyCode    `json:"projectedCurrency"`
	OriginalAmount    *decimal.Decimal `json:"originalAmount"`
	OriginalCurrency  *CurrencyCode    `json:"originalCurrency"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate"`

	TransactionDate time.Time  `json:"transactionDate"`
	PostingDate     *time.Time `json:"postingDate"` // Credit card posting date

	ReceiptURL string `json:"receiptURL"`
	InvoiceURL string `json:"invoiceURL"`

	IsPosted     bool `json:"isPosted"` // Gates balance/budget application
	IsReconciled bool `json:"isReconciled"`

	// Derived from the linked budget entry; never set directly by clients.
	IsRecurring         bool                 `json:"isRecurring"`
	RecurrenceFrequency *RecurrenceFrequency `json:"recurrenceFrequency"`

	AuditFields
}

// Validate checks structural rules that hold regardless of posting state.
func (t Transaction) Validate() error {
	switch t.TransactionType {
	case Debit, Credit, Transfer:
	default:
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.TransactionType)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
	}
	if t.TransactionType == Transfer {
		if t.TransferFromAccountID == nil || t.TransferToAccountID == nil {
			return fmt.Errorf("%w: transfer transactions require source and destination accounts", apperrors.ErrValidation)
		}
		if *t.TransferFromAccountID == *t.TransferToAccountID {
			return fmt.Errorf("%w: transfer accounts must be different", apperrors.ErrValidation)
		}
		if t.AccountID != *t.TransferFromAccountID {
			return fmt.Errorf("%w: account must match transfer source account", apperrors.ErrValidation)
		}
	}
	return nil
}

// BalanceEffects returns the signed balance change each account receives when
// this transaction posts. Reversal negates the same map. The transaction must
// already pass Validate.
func (t Transaction) BalanceEffects() (map[string]decimal.Decimal, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch t.TransactionType {
	case Credit:
		return map[string]decimal.Decimal{t.AccountID: t.Amount}, nil
	case Debit:
		return map[string]decimal.Decimal{t.AccountID: t.Amount.Neg()}, nil
	default: // transfer
		return map[string]decimal.Decimal{
			*t.TransferFromAccountID: t.Amount.Add(t.TransferFee).Neg(),
			*t.TransferToAccountID:   t.Amount,
		}, nil
	}
}

// BudgetDelta is the signed amount this transaction contributes to budget
// allocation consumption: debits increase consumption, credits refund it,
// transfers never touch budgets.
func (t Transaction) BudgetDelta() decimal.Decimal {
	switch t.TransactionType {
	case Debit:
		return t.Amount
	case Credit:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// TouchesAccount reports whether the account participates in this
// transaction as primary, transfer source or transfer destination.
func (t Transaction) TouchesAccount(accountID string) bool {
	if t.AccountID == accountID {
		return true
	}
	if t.TransferFromAccountID != nil && *t.TransferFromAccountID == accountID {
		return true
	}
	if t.TransferToAccountID != nil && *t.TransferToAccountID == accountID {
		return true
	}
	return false
}

// EffectOn is the signed balance change this transaction applies to one
// account, zero when the transaction is unposted or does not touch it. Used
// by balance-history replay.
func (t Transaction) EffectOn(accountID string) decimal.Decimal {
	if !t.IsPosted {
		return decimal.Zero
	}
	switch t.TransactionType {
	case Credit:
		if t.AccountID == accountID {
			return t.Amount
		}
	case Debit:
		if t.AccountID == accountID {
			return t.Amount.Neg()
		}
	case Transfer:
		if t.TransferFromAccountID != nil && *t.TransferFromAccountID == accountID {
			return t.Amount.Add(t.TransferFee).Neg()
		}
		if t.TransferToAccountID != nil && *t.TransferToAccountID == accountID {
			return t.Amount
		}
	}
	return decimal.Zero
}
