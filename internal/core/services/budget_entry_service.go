package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/gastos-app/gastos_backend/internal/middleware"
)

// budgetEntryService provides recurring budget entry operations. Entries are
// templates; they never move money themselves.
type budgetEntryService struct {
	budgetEntryRepo portsrepo.BudgetEntryRepository
	accountRepo     portsrepo.AccountReader
	categoryRepo    portsrepo.CategoryReader
	allocationRepo  portsrepo.AllocationReader
	userRepo        portsrepo.UserReader
}

// NewBudgetEntryService creates a new BudgetEntryService.
func NewBudgetEntryService(
	budgetEntryRepo portsrepo.BudgetEntryRepository,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	allocationRepo portsrepo.AllocationReader,
	userRepo portsrepo.UserReader,
) portssvc.BudgetEntrySvcFacade {
	return &budgetEntryService{
		budgetEntryRepo: budgetEntryRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		allocationRepo:  allocationRepo,
		userRepo:        userRepo,
	}
}

// Ensure budgetEntryService implements the portssvc.BudgetEntrySvcFacade interface
var _ portssvc.BudgetEntrySvcFacade = (*budgetEntryService)(nil)

// CreateBudgetEntry persists a new recurring entry. Cadence defaults to
// monthly and currency falls back to the linked account's currency, then to
// the user's default.
func (s *budgetEntryService) CreateBudgetEntry(ctx context.Context, userID string, req dto.CreateBudgetEntryRequest) (*domain.BudgetEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	entry := domain.BudgetEntry{
		BudgetEntryID:  uuid.NewString(),
		UserID:         userID,
		EntryType:      domain.BudgetEntryType(req.EntryType),
		Name:           req.Name,
		Description:    req.Description,
		Amount:         req.Amount,
		Currency:       domain.CurrencyCode(req.Currency),
		Cadence:        domain.RecurrenceFrequency(req.Cadence),
		NextOccurrence: req.NextOccurrence.UTC(),
		LeadTimeDays:   req.LeadTimeDays,
		EndMode:        domain.EndMode(req.EndMode),
		EndDate:        req.EndDate,
		MaxOccurrences: req.MaxOccurrences,
		AccountID:      req.AccountID,
		CategoryID:     req.CategoryID,
		AllocationID:   req.AllocationID,
		IsAutopay:      req.IsAutopay,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now},
	}
	if entry.Cadence == "" {
		entry.Cadence = domain.RecurMonthly
	}
	if entry.EndMode == "" {
		entry.EndMode = domain.EndIndefinite
	}
	if err := validateEndMode(entry); err != nil {
		return nil, err
	}

	account, err := s.resolveEntryLinks(ctx, entry)
	if err != nil {
		return nil, err
	}
	if entry.Currency == "" {
		if account != nil {
			entry.Currency = account.Currency
		} else {
			user, err := s.userRepo.FindUserByID(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
			}
			entry.Currency = user.DefaultCurrency
			if entry.Currency == "" {
				entry.Currency = domain.PHP
			}
		}
	}

	if err := s.budgetEntryRepo.SaveBudgetEntry(ctx, entry); err != nil {
		logger.Error("failed to save budget entry", "error", err, "budget_entry_id", entry.BudgetEntryID)
		return nil, fmt.Errorf("failed to save budget entry: %w", err)
	}

	logger.Info("budget entry created", "budget_entry_id", entry.BudgetEntryID, "cadence", entry.Cadence)
	return &entry, nil
}

// GetBudgetEntryByID retrieves a single budget entry owned by userID.
func (s *budgetEntryService) GetBudgetEntryByID(ctx context.Context, userID, budgetEntryID string) (*domain.BudgetEntry, error) {
	entry, err := s.budgetEntryRepo.FindBudgetEntryByID(ctx, userID, budgetEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget entry %s: %w", budgetEntryID, err)
	}
	return entry, nil
}

// ListBudgetEntries retrieves a filtered page of the user's entries.
func (s *budgetEntryService) ListBudgetEntries(ctx context.Context, userID string, filter portsrepo.BudgetEntryListFilter) ([]domain.BudgetEntry, int, error) {
	entries, total, err := s.budgetEntryRepo.ListBudgetEntries(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list budget entries: %w", err)
	}
	return entries, total, nil
}

// UpdateBudgetEntry applies a partial update. Empty-string link ids clear the
// link. Transactions already derived from this entry keep the recurrence
// fields they were created with.
func (s *budgetEntryService) UpdateBudgetEntry(ctx context.Context, userID, budgetEntryID string, req dto.UpdateBudgetEntryRequest) (*domain.BudgetEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	entry, err := s.budgetEntryRepo.FindBudgetEntryByID(ctx, userID, budgetEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget entry %s: %w", budgetEntryID, err)
	}

	if req.EntryType != nil {
		entry.EntryType = domain.BudgetEntryType(*req.EntryType)
	}
	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Cadence != nil {
		entry.Cadence = domain.RecurrenceFrequency(*req.Cadence)
	}
	if req.NextOccurrence != nil {
		entry.NextOccurrence = req.NextOccurrence.UTC()
	}
	if req.LeadTimeDays != nil {
		entry.LeadTimeDays = *req.LeadTimeDays
	}
	if req.EndMode != nil {
		entry.EndMode = domain.EndMode(*req.EndMode)
	}
	if req.EndDate != nil {
		entry.EndDate = req.EndDate
	}
	if req.MaxOccurrences != nil {
		entry.MaxOccurrences = req.MaxOccurrences
	}
	if req.AccountID != nil {
		entry.AccountID = optionalID(*req.AccountID)
	}
	if req.CategoryID != nil {
		entry.CategoryID = optionalID(*req.CategoryID)
	}
	if req.AllocationID != nil {
		entry.AllocationID = optionalID(*req.AllocationID)
	}
	if req.IsAutopay != nil {
		entry.IsAutopay = *req.IsAutopay
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	entry.UpdatedAt = &now

	if err := validateEndMode(*entry); err != nil {
		return nil, err
	}
	if _, err := s.resolveEntryLinks(ctx, *entry); err != nil {
		return nil, err
	}

	if err := s.budgetEntryRepo.UpdateBudgetEntry(ctx, *entry); err != nil {
		logger.Error("failed to update budget entry", "error", err, "budget_entry_id", budgetEntryID)
		return nil, fmt.Errorf("failed to update budget entry %s: %w", budgetEntryID, err)
	}
	return entry, nil
}

// DeleteBudgetEntry removes an entry. Linked transactions are untouched.
func (s *budgetEntryService) DeleteBudgetEntry(ctx context.Context, userID, budgetEntryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.budgetEntryRepo.FindBudgetEntryByID(ctx, userID, budgetEntryID); err != nil {
		return fmt.Errorf("failed to find budget entry %s: %w", budgetEntryID, err)
	}
	if err := s.budgetEntryRepo.DeleteBudgetEntry(ctx, userID, budgetEntryID); err != nil {
		logger.Error("failed to delete budget entry", "error", err, "budget_entry_id", budgetEntryID)
		return fmt.Errorf("failed to delete budget entry %s: %w", budgetEntryID, err)
	}

	logger.Info("budget entry deleted", "budget_entry_id", budgetEntryID)
	return nil
}

// resolveEntryLinks verifies the optional account, category and allocation
// references belong to the user, returning the account when linked.
func (s *budgetEntryService) resolveEntryLinks(ctx context.Context, entry domain.BudgetEntry) (*domain.Account, error) {
	var account *domain.Account
	if entry.AccountID != nil {
		a, err := s.accountRepo.FindAccountByID(ctx, entry.UserID, *entry.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve account %s: %w", *entry.AccountID, err)
		}
		account = a
	}
	if entry.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, entry.UserID, *entry.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to resolve category %s: %w", *entry.CategoryID, err)
		}
	}
	if entry.AllocationID != nil {
		if _, err := s.allocationRepo.FindAllocationByID(ctx, entry.UserID, *entry.AllocationID); err != nil {
			return nil, fmt.Errorf("failed to resolve allocation %s: %w", *entry.AllocationID, err)
		}
	}
	return account, nil
}

// validateEndMode checks that the end mode's companion field is present.
func validateEndMode(entry domain.BudgetEntry) error {
	switch entry.EndMode {
	case domain.EndIndefinite:
		return nil
	case domain.EndOnDate:
		if entry.EndDate == nil {
			return fmt.Errorf("%w: end date is required when ending on a date", apperrors.ErrValidation)
		}
	case domain.EndAfterOccurrences:
		if entry.MaxOccurrences == nil {
			return fmt.Errorf("%w: max occurrences is required when ending after a count", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown end mode %q", apperrors.ErrValidation, entry.EndMode)
	}
	return nil
}
