package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/models"
	"github.com/gastos-app/gastos_backend/internal/utils/mapping"
)

const allocationColumns = `allocation_id, user_id, account_id, name, allocation_type, description,
	target_amount, current_amount, monthly_target, currency, target_date,
	period_frequency, period_start, period_end, configuration, is_active, created_at, updated_at`

// PgxAllocationRepository persists allocations in PostgreSQL.
type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for allocation data.
func newPgxAllocationRepository(pool *pgxpool.Pool) *PgxAllocationRepository {
	return &PgxAllocationRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAllocationRepository implements portsrepo.AllocationRepository
var _ portsrepo.AllocationRepository = (*PgxAllocationRepository)(nil)

func scanAllocation(row pgx.Row) (models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.UserID,
		&m.AccountID,
		&m.Name,
		&m.AllocationType,
		&m.Description,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.MonthlyTarget,
		&m.Currency,
		&m.TargetDate,
		&m.PeriodFrequency,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Configuration,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveAllocation persists a new allocation.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := mapping.ToModelAllocation(allocation)
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AllocationID, m.UserID, m.AccountID, m.Name, m.AllocationType, m.Description,
		m.TargetAmount, m.CurrentAmount, m.MonthlyTarget, m.Currency, m.TargetDate,
		m.PeriodFrequency, m.PeriodStart, m.PeriodEnd, m.Configuration, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert allocation %s: %w", m.AllocationID, err)
	}
	return nil
}

// FindAllocationByID retrieves an allocation owned by userID.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, userID, allocationID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = $1 AND user_id = $2;`
	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("allocation %s: %w", allocationID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query allocation %s: %w", allocationID, err)
	}
	d := mapping.ToDomainAllocation(m)
	return &d, nil
}

// ListAllocations retrieves a filtered page of the user's allocations plus
// the total match count.
func (r *PgxAllocationRepository) ListAllocations(ctx context.Context, userID string, filter portsrepo.AllocationListFilter) ([]domain.Allocation, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		where += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.AllocationType != nil {
		args = append(args, string(*filter.AllocationType))
		where += fmt.Sprintf(" AND allocation_type = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM allocations `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count allocations: %w", err)
	}

	query := `SELECT ` + allocationColumns + ` FROM allocations ` + where + ` ORDER BY created_at DESC, allocation_id`
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
		return nil, 0, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, mapping.ToDomainAllocation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return allocations, total, nil
}

// ListBudgetAllocations retrieves all active budget-type allocations owned by
// userID, for category-based transaction matching.
func (r *PgxAllocationRepository) ListBudgetAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE user_id = $1 AND allocation_type = $2 AND is_active = TRUE
		ORDER BY created_at, allocation_id;`
	rows, err := r.Pool.Query(ctx, query, userID, string(domain.AllocationBudget))
	if err != nil {
		return nil, fmt.Errorf("failed to query budget allocations: %w", err)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, mapping.ToDomainAllocation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return allocations, nil
}

// UpdateAllocation updates an existing allocation's details.
func (r *PgxAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := mapping.ToModelAllocation(allocation)
	query := `
		UPDATE allocations
		SET account_id = $3, name = $4, description = $5, target_amount = $6, current_amount = $7,
			monthly_target = $8, target_date = $9, period_frequency = $10, period_start = $11,
			period_end = $12, configuration = $13, is_active = $14, updated_at = $15
		WHERE allocation_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AllocationID, m.UserID, m.AccountID, m.Name, m.Description, m.TargetAmount, m.CurrentAmount,
		m.MonthlyTarget, m.TargetDate, m.PeriodFrequency, m.PeriodStart,
		m.PeriodEnd, m.Configuration, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", m.AllocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s: %w", m.AllocationID, apperrors.ErrNotFound)
	}
	return nil
}

// DeactivateAllocation marks an allocation as inactive.
func (r *PgxAllocationRepository) DeactivateAllocation(ctx context.Context, userID, allocationID string, now time.Time) error {
	query := `UPDATE allocations SET is_active = FALSE, updated_at = $3 WHERE allocation_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, allocationID, userID, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate allocation %s: %w", allocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s: %w", allocationID, apperrors.ErrNotFound)
	}
	return nil
}

// ApplyBudgetImpactsInTx locks each impacted allocation, rolls its budget
// period so it brackets the impact's reference date and adds the delta to its
// consumption. Impacts are applied in slice order, so a reversal and its
// replacement may target the same allocation within one call.
func (r *PgxAllocationRepository) ApplyBudgetImpactsInTx(ctx context.Context, tx pgx.Tx, impacts []domain.BudgetImpact, now time.Time) error {
	if len(impacts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(impacts))
	seen := map[string]bool{}
	for _, impact := range impacts {
		if !seen[impact.AllocationID] {
			seen[impact.AllocationID] = true
			ids = append(ids, impact.AllocationID)
		}
	}

	lockQuery := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to lock allocations: %w", err)
	}
	locked := make(map[string]domain.Allocation)
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked allocation row: %w", err)
		}
		locked[m.AllocationID] = mapping.ToDomainAllocation(m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked allocation rows: %w", err)
	}
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return fmt.Errorf("allocation %s: %w", id, apperrors.ErrNotFound)
		}
	}

	for _, impact := range impacts {
		allocation := locked[impact.AllocationID]
		allocation.EnsureBudgetPeriod(impact.ReferenceDate)
		allocation.CurrentAmount = allocation.CurrentAmount.Add(impact.Delta)
		locked[impact.AllocationID] = allocation
	}

	updateQuery := `
		UPDATE allocations
		SET current_amount = $2, period_start = $3, period_end = $4, updated_at = $5
		WHERE allocation_id = $1;
	`
	for _, id := range ids {
		allocation := locked[id]
		if _, err := tx.Exec(ctx, updateQuery, id, allocation.CurrentAmount, allocation.PeriodStart, allocation.PeriodEnd, now); err != nil {
			return fmt.Errorf("failed to apply budget impact to allocation %s: %w", id, err)
		}
	}
	return nil
}
