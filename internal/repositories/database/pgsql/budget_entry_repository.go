package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/models"
	"github.com/gastos-app/gastos_backend/internal/utils/mapping"
)

const budgetEntryColumns = `budget_entry_id, user_id, entry_type, name, description, amount, currency, cadence,
	next_occurrence, lead_time_days, end_mode, end_date, max_occurrences,
	account_id, category_id, allocation_id, is_autopay, is_active, created_at, updated_at`

// PgxBudgetEntryRepository persists budget entries in PostgreSQL.
type PgxBudgetEntryRepository struct {
	BaseRepository
}

// newPgxBudgetEntryRepository creates a new repository for budget entry data.
func newPgxBudgetEntryRepository(pool *pgxpool.Pool) *PgxBudgetEntryRepository {
	return &PgxBudgetEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetEntryRepository implements portsrepo.BudgetEntryRepository
var _ portsrepo.BudgetEntryRepository = (*PgxBudgetEntryRepository)(nil)

func scanBudgetEntry(row pgx.Row) (models.BudgetEntry, error) {
	var m models.BudgetEntry
	err := row.Scan(
		&m.BudgetEntryID,
		&m.UserID,
		&m.EntryType,
		&m.Name,
		&m.Description,
		&m.Amount,
		&m.Currency,
		&m.Cadence,
		&m.NextOccurrence,
		&m.LeadTimeDays,
		&m.EndMode,
		&m.EndDate,
		&m.MaxOccurrences,
		&m.AccountID,
		&m.CategoryID,
		&m.AllocationID,
		&m.IsAutopay,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindBudgetEntryByID retrieves a budget entry owned by userID.
func (r *PgxBudgetEntryRepository) FindBudgetEntryByID(ctx context.Context, userID, budgetEntryID string) (*domain.BudgetEntry, error) {
	query := `SELECT ` + budgetEntryColumns + ` FROM budget_entries WHERE budget_entry_id = $1 AND user_id = $2;`
	m, err := scanBudgetEntry(r.Pool.QueryRow(ctx, query, budgetEntryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("budget entry %s: %w", budgetEntryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query budget entry %s: %w", budgetEntryID, err)
	}
	d := mapping.ToDomainBudgetEntry(m)
	return &d, nil
}

// ListBudgetEntries retrieves a filtered page of the user's entries, ordered
// by next occurrence, plus the total match count.
func (r *PgxBudgetEntryRepository) ListBudgetEntries(ctx context.Context, userID string, filter portsrepo.BudgetEntryListFilter) ([]domain.BudgetEntry, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if filter.EntryType != nil {
		args = append(args, string(*filter.EntryType))
		where += fmt.Sprintf(" AND entry_type = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	if filter.Before != nil {
		args = append(args, *filter.Before)
		where += fmt.Sprintf(" AND next_occurrence <= $%d", len(args))
	}
	if filter.After != nil {
		args = append(args, *filter.After)
		where += fmt.Sprintf(" AND next_occurrence >= $%d", len(args))
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM budget_entries `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count budget entries: %w", err)
	}

	query := `SELECT ` + budgetEntryColumns + ` FROM budget_entries ` + where + ` ORDER BY next_occurrence, budget_entry_id`
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
		return nil, 0, fmt.Errorf("failed to query budget entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.BudgetEntry
	for rows.Next() {
		m, err := scanBudgetEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan budget entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainBudgetEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating budget entry rows: %w", err)
	}
	return entries, total, nil
}

// SaveBudgetEntry persists a new budget entry.
func (r *PgxBudgetEntryRepository) SaveBudgetEntry(ctx context.Context, entry domain.BudgetEntry) error {
	m := mapping.ToModelBudgetEntry(entry)
	query := `
		INSERT INTO budget_entries (` + budgetEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetEntryID, m.UserID, m.EntryType, m.Name, m.Description, m.Amount, m.Currency, m.Cadence,
		m.NextOccurrence, m.LeadTimeDays, m.EndMode, m.EndDate, m.MaxOccurrences,
		m.AccountID, m.CategoryID, m.AllocationID, m.IsAutopay, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget entry %s: %w", m.BudgetEntryID, err)
	}
	return nil
}

// UpdateBudgetEntry updates an existing budget entry.
func (r *PgxBudgetEntryRepository) UpdateBudgetEntry(ctx context.Context, entry domain.BudgetEntry) error {
	m := mapping.ToModelBudgetEntry(entry)
	query := `
		UPDATE budget_entries
		SET entry_type = $3, name = $4, description = $5, amount = $6, currency = $7, cadence = $8,
			next_occurrence = $9, lead_time_days = $10, end_mode = $11, end_date = $12, max_occurrences = $13,
			account_id = $14, category_id = $15, allocation_id = $16, is_autopay = $17, is_active = $18,
			updated_at = $19
		WHERE budget_entry_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetEntryID, m.UserID, m.EntryType, m.Name, m.Description, m.Amount, m.Currency, m.Cadence,
		m.NextOccurrence, m.LeadTimeDays, m.EndMode, m.EndDate, m.MaxOccurrences,
		m.AccountID, m.CategoryID, m.AllocationID, m.IsAutopay, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget entry %s: %w", m.BudgetEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget entry %s: %w", m.BudgetEntryID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteBudgetEntry removes a budget entry.
func (r *PgxBudgetEntryRepository) DeleteBudgetEntry(ctx context.Context, userID, budgetEntryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budget_entries WHERE budget_entry_id = $1 AND user_id = $2;`, budgetEntryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget entry %s: %w", budgetEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget entry %s: %w", budgetEntryID, apperrors.ErrNotFound)
	}
	return nil
}
