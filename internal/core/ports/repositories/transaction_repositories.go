package repositories

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionListFilter narrows ListTransactions results. AccountID matches
// the primary account or either side of a transfer.
type TransactionListFilter struct {
	AccountID       *string
	CategoryID      *string
	AllocationID    *string
	TransactionType *domain.TransactionType
	StartDate       *time.Time
	EndDate         *time.Time
	IsReconciled    *bool
	Limit           int
	Offset          int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of the user's transactions,
	// newest first, plus the total match count.
	ListTransactions(ctx context.Context, userID string, filter TransactionListFilter) ([]domain.Transaction, int, error)

	// ListPostedByAccount retrieves every posted transaction touching the
	// account (as primary, transfer source or transfer destination) in
	// chronological order. Used for balance-history replay.
	ListPostedByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// SumByAllocationAndType totals posted transactions of one type linked to
	// an allocation within [from, to). Used for monthly progress.
	SumByAllocationAndType(ctx context.Context, allocationID string, txnType domain.TransactionType, from, to time.Time) (decimal.Decimal, error)
}

// TransactionLedgerWriter persists ledger mutations. Every method commits the
// transaction row change, all balance changes and all budget impacts as one
// atomic database transaction, locking touched accounts and allocations for
// update; on any failure nothing is persisted.
type TransactionLedgerWriter interface {
	// CreateLedgerEntry inserts the transaction and applies its effects.
	CreateLedgerEntry(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error

	// UpdateLedgerEntry rewrites the transaction row and applies the combined
	// reversal+reapplication effects.
	UpdateLedgerEntry(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error

	// DeleteLedgerEntry removes the transaction row and applies the reversal
	// effects.
	DeleteLedgerEntry(ctx context.Context, userID, transactionID string, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error

	// SetReceiptURL records the stored receipt location for a transaction.
	SetReceiptURL(ctx context.Context, userID, transactionID, receiptURL string, now time.Time) error
}

// TransactionRepository combines all transaction-related repository
// interfaces.
type TransactionRepository interface {
	TransactionReader
	TransactionLedgerWriter
}
