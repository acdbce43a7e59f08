package repositories

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountListFilter narrows ListAccounts results.
type AccountListFilter struct {
	AccountType *domain.AccountType
	IsActive    *bool
	Limit       int
	Offset      int
}

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID. Accounts owned by
	// other users are reported as not found.
	FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts owned by userID, keyed by id.
	// Missing or foreign-owned ids are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a filtered page of the user's accounts plus the
	// total match count.
	ListAccounts(ctx context.Context, userID string, filter AccountListFilter) ([]domain.Account, int, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details. Balance is not
	// writable through this method.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, userID, accountID string, now time.Time) error
}

// AccountLedgerSupport defines operations the transaction repository uses to
// mutate balances atomically within its own database transaction.
type AccountLedgerSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adds each signed delta to the matching locked
	// account's balance.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountLedgerSupport
}
