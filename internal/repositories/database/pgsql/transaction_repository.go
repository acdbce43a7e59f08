package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/models"
	"github.com/gastos-app/gastos_backend/internal/utils/mapping"
)

const transactionColumns = `transaction_id, user_id, account_id, category_id, allocation_id, budget_entry_id,
	amount, currency, description, transaction_type,
	transfer_from_account_id, transfer_to_account_id, transfer_fee,
	projected_amount, projected_currency, original_amount, original_currency, exchange_rate,
	transaction_date, posting_date, receipt_url, invoice_url,
	is_posted, is_reconciled, is_recurring, recurrence_frequency, created_at, updated_at`

// PgxTransactionRepository persists transactions in PostgreSQL. The ledger
// writer methods apply the transaction row, all account balance changes and
// all budget impacts inside one database transaction with row locks, so a
// failure leaves every table untouched.
type PgxTransactionRepository struct {
	BaseRepository
	accountRepo    portsrepo.AccountLedgerSupport
	allocationRepo portsrepo.AllocationLedgerSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountLedgerSupport, allocationRepo portsrepo.AllocationLedgerSupport) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		allocationRepo: allocationRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.AllocationID,
		&m.BudgetEntryID,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.TransactionType,
		&m.TransferFromAccountID,
		&m.TransferToAccountID,
		&m.TransferFee,
		&m.ProjectedAmount,
		&m.ProjectedCurrency,
		&m.OriginalAmount,
		&m.OriginalCurrency,
		&m.ExchangeRate,
		&m.TransactionDate,
		&m.PostingDate,
		&m.ReceiptURL,
		&m.InvoiceURL,
		&m.IsPosted,
		&m.IsReconciled,
		&m.IsRecurring,
		&m.RecurrenceFrequency,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction owned by userID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves a filtered page of the user's transactions,
// newest first, plus the total match count. An account filter matches the
// primary account or either side of a transfer.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		n := len(args)
		where += fmt.Sprintf(" AND (account_id = $%d OR transfer_from_account_id = $%d OR transfer_to_account_id = $%d)", n, n, n)
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.AllocationID != nil {
		args = append(args, *filter.AllocationID)
		where += fmt.Sprintf(" AND allocation_id = $%d", len(args))
	}
	if filter.TransactionType != nil {
		args = append(args, string(*filter.TransactionType))
		where += fmt.Sprintf(" AND transaction_type = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}
	if filter.IsReconciled != nil {
		args = append(args, *filter.IsReconciled)
		where += fmt.Sprintf(" AND is_reconciled = $%d", len(args))
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions ` + where + ` ORDER BY transaction_date DESC, created_at DESC, transaction_id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, total, nil
}

// ListPostedByAccount retrieves every posted transaction touching the account
// in chronological order, for balance-history replay.
func (r *PgxTransactionRepository) ListPostedByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE is_posted = TRUE
		  AND (account_id = $1 OR transfer_from_account_id = $1 OR transfer_to_account_id = $1)
		ORDER BY transaction_date, created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// SumByAllocationAndType totals posted transactions of one type linked to an
// allocation within [from, to).
func (r *PgxTransactionRepository) SumByAllocationAndType(ctx context.Context, allocationID string, txnType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE allocation_id = $1 AND transaction_type = $2 AND is_posted = TRUE
		  AND transaction_date >= $3 AND transaction_date < $4;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, allocationID, string(txnType), from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions for allocation %s: %w", allocationID, err)
	}
	return sum, nil
}

// CreateLedgerEntry inserts the transaction and applies its effects
// atomically.
func (r *PgxTransactionRepository) CreateLedgerEntry(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28);
	`
	_, err = tx.Exec(ctx, query, transactionArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := r.applyEffects(ctx, tx, txn.CreatedAt, balanceChanges, impacts); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateLedgerEntry rewrites the transaction row and applies the combined
// reversal and reapplication effects atomically.
func (r *PgxTransactionRepository) UpdateLedgerEntry(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $3, category_id = $4, allocation_id = $5, budget_entry_id = $6,
			amount = $7, currency = $8, description = $9, transaction_type = $10,
			transfer_from_account_id = $11, transfer_to_account_id = $12, transfer_fee = $13,
			projected_amount = $14, projected_currency = $15, original_amount = $16,
			original_currency = $17, exchange_rate = $18, transaction_date = $19, posting_date = $20,
			is_posted = $21, is_reconciled = $22, is_recurring = $23, recurrence_frequency = $24,
			updated_at = $25
		WHERE transaction_id = $1 AND user_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.AccountID, m.CategoryID, m.AllocationID, m.BudgetEntryID,
		m.Amount, m.Currency, m.Description, m.TransactionType,
		m.TransferFromAccountID, m.TransferToAccountID, m.TransferFee,
		m.ProjectedAmount, m.ProjectedCurrency, m.OriginalAmount,
		m.OriginalCurrency, m.ExchangeRate, m.TransactionDate, m.PostingDate,
		m.IsPosted, m.IsReconciled, m.IsRecurring, m.RecurrenceFrequency,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	if m.UpdatedAt != nil {
		now = *m.UpdatedAt
	}
	if err := r.applyEffects(ctx, tx, now, balanceChanges, impacts); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteLedgerEntry removes the transaction row and applies the reversal
// effects atomically.
func (r *PgxTransactionRepository) DeleteLedgerEntry(ctx context.Context, userID, transactionID string, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}

	if err := r.applyEffects(ctx, tx, time.Now().UTC(), balanceChanges, impacts); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SetReceiptURL records the stored receipt location for a transaction.
func (r *PgxTransactionRepository) SetReceiptURL(ctx context.Context, userID, transactionID, receiptURL string, now time.Time) error {
	query := `UPDATE transactions SET receipt_url = $3, updated_at = $4 WHERE transaction_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, transactionID, userID, receiptURL, now)
	if err != nil {
		return fmt.Errorf("failed to set receipt url on transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

// applyEffects locks the touched accounts then applies balance changes and
// budget impacts inside the caller's database transaction.
func (r *PgxTransactionRepository) applyEffects(ctx context.Context, tx pgx.Tx, now time.Time, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for accountID := range balanceChanges {
			accountIDs = append(accountIDs, accountID)
		}
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, now); err != nil {
			return err
		}
	}
	if err := r.allocationRepo.ApplyBudgetImpactsInTx(ctx, tx, impacts, now); err != nil {
		return err
	}
	return nil
}

// transactionArgs lines the model's fields up with transactionColumns.
func transactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID, m.UserID, m.AccountID, m.CategoryID, m.AllocationID, m.BudgetEntryID,
		m.Amount, m.Currency, m.Description, m.TransactionType,
		m.TransferFromAccountID, m.TransferToAccountID, m.TransferFee,
		m.ProjectedAmount, m.ProjectedCurrency, m.OriginalAmount, m.OriginalCurrency, m.ExchangeRate,
		m.TransactionDate, m.PostingDate, m.ReceiptURL, m.InvoiceURL,
		m.IsPosted, m.IsReconciled, m.IsRecurring, m.RecurrenceFrequency, m.CreatedAt, m.UpdatedAt,
	}
}
