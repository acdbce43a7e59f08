package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/gastos-app/gastos_backend/internal/middleware"
)

var hundred = decimal.NewFromInt(100)

// allocationService provides allocation operations. Budget allocations get
// their period window and consumption mutated exclusively by the transaction
// service; everything else is plain CRUD.
type allocationService struct {
	allocationRepo  portsrepo.AllocationRepository
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(allocationRepo portsrepo.AllocationRepository, accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionReader) portssvc.AllocationSvcFacade {
	return &allocationService{
		allocationRepo:  allocationRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure allocationService implements the portssvc.AllocationSvcFacade interface
var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// CreateAllocation persists a new allocation against one of the user's
// accounts. Budget allocations default to a monthly period; the period
// window itself initialises lazily on the first budget impact.
func (s *allocationService) CreateAllocation(ctx context.Context, userID string, req dto.CreateAllocationRequest) (*domain.Allocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	account, err := s.accountRepo.FindAccountByID(ctx, userID, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}

	currency := domain.CurrencyCode(req.Currency)
	if currency == "" {
		currency = account.Currency
	}

	allocation := domain.Allocation{
		AllocationID:    uuid.NewString(),
		UserID:          userID,
		AccountID:       account.AccountID,
		Name:            req.Name,
		AllocationType:  domain.AllocationType(req.AllocationType),
		Description:     req.Description,
		TargetAmount:    decimal.Zero,
		CurrentAmount:   decimal.Zero,
		MonthlyTarget:   decimal.Zero,
		Currency:        currency,
		TargetDate:      req.TargetDate,
		PeriodFrequency: domain.PeriodFrequency(req.PeriodFrequency),
		Configuration:   req.Configuration,
		IsActive:        true,
		AuditFields:     domain.AuditFields{CreatedAt: now},
	}
	if req.TargetAmount != nil {
		allocation.TargetAmount = *req.TargetAmount
	}
	if req.MonthlyTarget != nil {
		allocation.MonthlyTarget = *req.MonthlyTarget
	}
	if allocation.IsBudget() && allocation.PeriodFrequency == "" {
		allocation.PeriodFrequency = domain.PeriodMonthly
	}

	if err := s.allocationRepo.SaveAllocation(ctx, allocation); err != nil {
		logger.Error("failed to save allocation", "error", err, "allocation_id", allocation.AllocationID)
		return nil, fmt.Errorf("failed to save allocation: %w", err)
	}

	logger.Info("allocation created", "allocation_id", allocation.AllocationID, "type", allocation.AllocationType)
	return &allocation, nil
}

// GetAllocationByID retrieves a single allocation owned by userID.
func (s *allocationService) GetAllocationByID(ctx context.Context, userID, allocationID string) (*domain.Allocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}
	return allocation, nil
}

// ListAllocations retrieves a filtered page of the user's allocations.
func (s *allocationService) ListAllocations(ctx context.Context, userID string, filter portsrepo.AllocationListFilter) ([]domain.Allocation, int, error) {
	allocations, total, err := s.allocationRepo.ListAllocations(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, total, nil
}

// UpdateAllocation applies a partial update. CurrentAmount is only writable
// for savings and goal allocations; for budgets the ledger owns it.
func (s *allocationService) UpdateAllocation(ctx context.Context, userID, allocationID string, req dto.UpdateAllocationRequest) (*domain.Allocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	allocation, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}

	if req.AccountID != nil && *req.AccountID != allocation.AccountID {
		if _, err := s.accountRepo.FindAccountByID(ctx, userID, *req.AccountID); err != nil {
			return nil, fmt.Errorf("failed to find account %s: %w", *req.AccountID, err)
		}
		allocation.AccountID = *req.AccountID
	}
	if req.Name != nil {
		allocation.Name = *req.Name
	}
	if req.Description != nil {
		allocation.Description = *req.Description
	}
	if req.TargetAmount != nil {
		allocation.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if allocation.IsBudget() {
			return nil, fmt.Errorf("%w: budget consumption is derived from transactions and cannot be set", apperrors.ErrValidation)
		}
		allocation.CurrentAmount = *req.CurrentAmount
	}
	if req.MonthlyTarget != nil {
		allocation.MonthlyTarget = *req.MonthlyTarget
	}
	if req.TargetDate != nil {
		allocation.TargetDate = req.TargetDate
	}
	if req.PeriodFrequency != nil {
		freq := domain.PeriodFrequency(*req.PeriodFrequency)
		if freq != allocation.PeriodFrequency {
			allocation.PeriodFrequency = freq
			// A new cadence invalidates the old window; the next budget
			// impact re-derives it.
			allocation.PeriodStart = nil
			allocation.PeriodEnd = nil
			if allocation.IsBudget() {
				allocation.CurrentAmount = decimal.Zero
			}
		}
	}
	if req.Configuration != nil {
		allocation.Configuration = req.Configuration
	}
	if req.IsActive != nil {
		allocation.IsActive = *req.IsActive
	}
	allocation.UpdatedAt = &now

	if err := s.allocationRepo.UpdateAllocation(ctx, *allocation); err != nil {
		logger.Error("failed to update allocation", "error", err, "allocation_id", allocationID)
		return nil, fmt.Errorf("failed to update allocation %s: %w", allocationID, err)
	}
	return allocation, nil
}

// DeactivateAllocation marks an allocation inactive, removing it from budget
// matching.
func (s *allocationService) DeactivateAllocation(ctx context.Context, userID, allocationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID); err != nil {
		return fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}
	if err := s.allocationRepo.DeactivateAllocation(ctx, userID, allocationID, time.Now().UTC()); err != nil {
		logger.Error("failed to deactivate allocation", "error", err, "allocation_id", allocationID)
		return fmt.Errorf("failed to deactivate allocation %s: %w", allocationID, err)
	}

	logger.Info("allocation deactivated", "allocation_id", allocationID)
	return nil
}

// GetProgress reports progress details for one allocation. Monthly progress
// sums this calendar month's posted credit transactions linked to the
// allocation.
func (s *allocationService) GetProgress(ctx context.Context, userID, allocationID string) (*dto.AllocationProgressResponse, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}

	now := time.Now().UTC()
	monthStart := domain.PeriodStartFor(domain.PeriodMonthly, now)
	monthEnd := domain.ShiftPeriod(domain.PeriodMonthly, monthStart, 1)
	monthlyProgress, err := s.transactionRepo.SumByAllocationAndType(ctx, allocationID, domain.Credit, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly progress for allocation %s: %w", allocationID, err)
	}

	resp := &dto.AllocationProgressResponse{
		AllocationID:       allocation.AllocationID,
		CurrentAmount:      allocation.CurrentAmount,
		TargetAmount:       allocation.TargetAmount,
		ProgressPercentage: progressPercentage(allocation.CurrentAmount, allocation.TargetAmount),
		MonthlyTarget:      allocation.MonthlyTarget,
		MonthlyProgress:    monthlyProgress,
		RemainingAmount:    allocation.TargetAmount.Sub(allocation.CurrentAmount),
		TargetDate:         allocation.TargetDate,
	}
	if allocation.TargetDate != nil {
		days := int(allocation.TargetDate.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		resp.DaysRemaining = &days
	}
	return resp, nil
}

// GetGoalsSummary aggregates all active goal allocations.
func (s *allocationService) GetGoalsSummary(ctx context.Context, userID string) (*dto.GoalsSummaryResponse, error) {
	goalType := domain.AllocationGoal
	active := true
	goals, _, err := s.allocationRepo.ListAllocations(ctx, userID, portsrepo.AllocationListFilter{
		AllocationType: &goalType,
		IsActive:       &active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list goal allocations: %w", err)
	}

	summary := &dto.GoalsSummaryResponse{
		TotalGoals:         len(goals),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
		Goals:              make([]dto.GoalSummary, 0, len(goals)),
	}
	for _, g := range goals {
		summary.TotalTargetAmount = summary.TotalTargetAmount.Add(g.TargetAmount)
		summary.TotalCurrentAmount = summary.TotalCurrentAmount.Add(g.CurrentAmount)
		summary.Goals = append(summary.Goals, dto.GoalSummary{
			AllocationID:       g.AllocationID,
			Name:               g.Name,
			TargetAmount:       g.TargetAmount,
			CurrentAmount:      g.CurrentAmount,
			ProgressPercentage: progressPercentage(g.CurrentAmount, g.TargetAmount),
			TargetDate:         g.TargetDate,
		})
	}
	summary.TotalProgressPercentage = progressPercentage(summary.TotalCurrentAmount, summary.TotalTargetAmount)
	return summary, nil
}

// progressPercentage is current/target as a percentage rounded to two
// places; a zero target reports zero rather than dividing by it.
func progressPercentage(current, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return current.Div(target).Mul(hundred).Round(2)
}
