package services

import (
	"context"
	"errors"
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

// transactionService is the ledger mutation engine. Every create, update and
// delete computes the full set of balance changes and budget impacts up
// front, then hands them to the transaction repository for a single atomic
// commit. Account balances are never assigned; they only ever receive signed
// deltas, so an update is always "reverse the old effects, apply the new".
type transactionService struct {
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountReader
	categoryRepo    portsrepo.CategoryReader
	allocationRepo  portsrepo.AllocationReader
	budgetEntryRepo portsrepo.BudgetEntryReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepository,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	allocationRepo portsrepo.AllocationReader,
	budgetEntryRepo portsrepo.BudgetEntryReader,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		allocationRepo:  allocationRepo,
		budgetEntryRepo: budgetEntryRepo,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates the request, applies currency defaults from the
// involved accounts, derives recurrence from a linked budget entry and
// commits the row together with its balance and budget effects.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	txn := domain.Transaction{
		TransactionID:         uuid.NewString(),
		UserID:                userID,
		AccountID:             req.AccountID,
		CategoryID:            req.CategoryID,
		AllocationID:          req.AllocationID,
		BudgetEntryID:         req.BudgetEntryID,
		Amount:                req.Amount,
		Currency:              domain.CurrencyCode(req.Currency),
		Description:           req.Description,
		TransactionType:       domain.TransactionType(req.TransactionType),
		TransferFromAccountID: req.TransferFromAccountID,
		TransferToAccountID:   req.TransferToAccountID,
		ProjectedAmount:       req.ProjectedAmount,
		OriginalAmount:        req.OriginalAmount,
		ExchangeRate:          req.ExchangeRate,
		TransactionDate:       req.TransactionDate.UTC(),
		PostingDate:           req.PostingDate,
		IsPosted:              true,
		IsReconciled:          req.IsReconciled,
		AuditFields:           domain.AuditFields{CreatedAt: now},
	}
	if req.TransferFee != nil {
		txn.TransferFee = *req.TransferFee
	}
	if req.ProjectedCurrency != nil {
		c := domain.CurrencyCode(*req.ProjectedCurrency)
		txn.ProjectedCurrency = &c
	}
	if req.OriginalCurrency != nil {
		c := domain.CurrencyCode(*req.OriginalCurrency)
		txn.OriginalCurrency = &c
	}
	if req.IsPosted != nil {
		txn.IsPosted = *req.IsPosted
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveAccountsAndCurrency(ctx, &txn); err != nil {
		return nil, err
	}
	if err := s.resolveLinks(ctx, &txn); err != nil {
		return nil, err
	}

	// Unposted transactions are recorded without touching any balance or
	// budget until they post.
	var balanceChanges map[string]decimal.Decimal
	var impacts []domain.BudgetImpact
	if txn.IsPosted {
		var err error
		balanceChanges, impacts, err = s.postingEffects(ctx, txn, false)
		if err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.CreateLedgerEntry(ctx, txn, balanceChanges, impacts); err != nil {
		logger.Error("failed to create transaction", "error", err, "transaction_id", txn.TransactionID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logger.Info("transaction created",
		"transaction_id", txn.TransactionID,
		"type", txn.TransactionType,
		"posted", txn.IsPosted,
	)
	return &txn, nil
}

// GetTransactionByID retrieves a single transaction owned by userID.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of the user's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, int, error) {
	txns, total, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}

// UpdateTransaction rewrites a transaction. When either the old or the new
// state is posted, the old posted effects are reversed and the new posted
// effects applied in the same database transaction, so balances and budget
// progress stay consistent no matter which fields changed.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	old, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	updated := *old
	if err := s.applyTransactionUpdates(ctx, &updated, req); err != nil {
		return nil, err
	}
	// Transfers keep the invariant that the primary account is the source.
	if updated.TransactionType == domain.Transfer && updated.TransferFromAccountID != nil {
		updated.AccountID = *updated.TransferFromAccountID
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveAccountsAndCurrency(ctx, &updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = &now

	balanceChanges := map[string]decimal.Decimal{}
	var impacts []domain.BudgetImpact
	if old.IsPosted {
		oldChanges, oldImpacts, err := s.postingEffects(ctx, *old, true)
		if err != nil {
			return nil, err
		}
		mergeEffects(balanceChanges, oldChanges)
		impacts = append(impacts, oldImpacts...)
	}
	if updated.IsPosted {
		newChanges, newImpacts, err := s.postingEffects(ctx, updated, false)
		if err != nil {
			return nil, err
		}
		mergeEffects(balanceChanges, newChanges)
		impacts = append(impacts, newImpacts...)
	}

	if err := s.transactionRepo.UpdateLedgerEntry(ctx, updated, balanceChanges, impacts); err != nil {
		logger.Error("failed to update transaction", "error", err, "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	logger.Info("transaction updated", "transaction_id", transactionID)
	return &updated, nil
}

// DeleteTransaction removes a transaction, reversing its posted effects in
// the same commit.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	balanceChanges := map[string]decimal.Decimal{}
	var impacts []domain.BudgetImpact
	if txn.IsPosted {
		balanceChanges, impacts, err = s.postingEffects(ctx, *txn, true)
		if err != nil {
			return err
		}
	}

	if err := s.transactionRepo.DeleteLedgerEntry(ctx, userID, transactionID, balanceChanges, impacts); err != nil {
		logger.Error("failed to delete transaction", "error", err, "transaction_id", transactionID)
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	logger.Info("transaction deleted", "transaction_id", transactionID)
	return nil
}

// AttachReceipt records the stored location of an uploaded receipt.
func (s *transactionService) AttachReceipt(ctx context.Context, userID, transactionID, receiptURL string) error {
	if _, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID); err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if err := s.transactionRepo.SetReceiptURL(ctx, userID, transactionID, receiptURL, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to attach receipt to transaction %s: %w", transactionID, err)
	}
	return nil
}

// GetPeriodSummary totals posted transactions over [start, end] with a
// per-category breakdown keyed by category name. Transfers move money between
// the user's own accounts and are excluded.
func (s *transactionService) GetPeriodSummary(ctx context.Context, userID string, start, end time.Time, accountID *string) (*dto.TransactionSummaryResponse, error) {
	filter := portsrepo.TransactionListFilter{
		AccountID: accountID,
		StartDate: &start,
		EndDate:   &end,
	}
	txns, _, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for summary: %w", err)
	}

	categoryNames, err := s.categoryNamesByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &dto.TransactionSummaryResponse{
		StartDate:         start,
		EndDate:           end,
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		NetFlow:           decimal.Zero,
		CategoryBreakdown: map[string]dto.CategoryBreakdown{},
	}
	for _, txn := range txns {
		if !txn.IsPosted || txn.TransactionType == domain.Transfer {
			continue
		}
		summary.TransactionCount++

		bucket := "uncategorized"
		if txn.CategoryID != nil {
			if name, ok := categoryNames[*txn.CategoryID]; ok {
				bucket = name
			}
		}
		breakdown := summary.CategoryBreakdown[bucket]
		switch txn.TransactionType {
		case domain.Credit:
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
			breakdown.Income = breakdown.Income.Add(txn.Amount)
		case domain.Debit:
			summary.TotalExpenses = summary.TotalExpenses.Add(txn.Amount)
			breakdown.Expenses = breakdown.Expenses.Add(txn.Amount)
		}
		summary.CategoryBreakdown[bucket] = breakdown
	}
	summary.NetFlow = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary, nil
}

// resolveAccountsAndCurrency verifies every referenced account belongs to the
// user and fills empty currency fields from the accounts: transfers default
// to the destination account's currency, everything else to the primary
// account's. The informational projected/original currencies default the
// same way, but only when the matching amount is present.
func (s *transactionService) resolveAccountsAndCurrency(ctx context.Context, txn *domain.Transaction) error {
	ids := []string{txn.AccountID}
	if txn.TransactionType == domain.Transfer {
		ids = append(ids, *txn.TransferFromAccountID, *txn.TransferToAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, txn.UserID, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	defaultCurrency := accounts[txn.AccountID].Currency
	if txn.TransactionType == domain.Transfer {
		defaultCurrency = accounts[*txn.TransferToAccountID].Currency
	}
	if txn.Currency == "" {
		txn.Currency = defaultCurrency
	}
	if txn.ProjectedAmount != nil && txn.ProjectedCurrency == nil {
		c := defaultCurrency
		txn.ProjectedCurrency = &c
	}
	if txn.OriginalAmount != nil && txn.OriginalCurrency == nil {
		c := defaultCurrency
		txn.OriginalCurrency = &c
	}
	return nil
}

// resolveLinks verifies the optional category, allocation and budget entry
// references and derives the recurrence fields from the budget entry link.
func (s *transactionService) resolveLinks(ctx context.Context, txn *domain.Transaction) error {
	if txn.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, txn.UserID, *txn.CategoryID); err != nil {
			return fmt.Errorf("failed to resolve category %s: %w", *txn.CategoryID, err)
		}
	}
	if txn.AllocationID != nil {
		if _, err := s.allocationRepo.FindAllocationByID(ctx, txn.UserID, *txn.AllocationID); err != nil {
			return fmt.Errorf("failed to resolve allocation %s: %w", *txn.AllocationID, err)
		}
	}
	txn.IsRecurring = false
	txn.RecurrenceFrequency = nil
	if txn.BudgetEntryID != nil {
		entry, err := s.budgetEntryRepo.FindBudgetEntryByID(ctx, txn.UserID, *txn.BudgetEntryID)
		if err != nil {
			return fmt.Errorf("failed to resolve budget entry %s: %w", *txn.BudgetEntryID, err)
		}
		txn.IsRecurring = true
		cadence := entry.Cadence
		txn.RecurrenceFrequency = &cadence
	}
	return nil
}

// applyTransactionUpdates copies request fields onto the transaction. Pointer
// fields are only applied when present; empty-string link ids clear the link.
func (s *transactionService) applyTransactionUpdates(ctx context.Context, txn *domain.Transaction, req dto.UpdateTransactionRequest) error {
	if req.AccountID != nil {
		txn.AccountID = *req.AccountID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Currency != nil {
		txn.Currency = domain.CurrencyCode(*req.Currency)
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.TransactionType != nil {
		txn.TransactionType = domain.TransactionType(*req.TransactionType)
	}
	if req.TransferFromAccountID != nil {
		txn.TransferFromAccountID = optionalID(*req.TransferFromAccountID)
	}
	if req.TransferToAccountID != nil {
		txn.TransferToAccountID = optionalID(*req.TransferToAccountID)
	}
	if req.TransferFee != nil {
		txn.TransferFee = *req.TransferFee
	}
	if txn.TransactionType != domain.Transfer {
		txn.TransferFromAccountID = nil
		txn.TransferToAccountID = nil
		txn.TransferFee = decimal.Zero
	}
	if req.ProjectedAmount != nil {
		txn.ProjectedAmount = req.ProjectedAmount
	}
	if req.ProjectedCurrency != nil {
		c := domain.CurrencyCode(*req.ProjectedCurrency)
		txn.ProjectedCurrency = &c
	}
	if req.OriginalAmount != nil {
		txn.OriginalAmount = req.OriginalAmount
	}
	if req.OriginalCurrency != nil {
		c := domain.CurrencyCode(*req.OriginalCurrency)
		txn.OriginalCurrency = &c
	}
	if req.ExchangeRate != nil {
		txn.ExchangeRate = req.ExchangeRate
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = req.TransactionDate.UTC()
	}
	if req.PostingDate != nil {
		txn.PostingDate = req.PostingDate
	}
	if req.IsPosted != nil {
		txn.IsPosted = *req.IsPosted
	}
	if req.IsReconciled != nil {
		txn.IsReconciled = *req.IsReconciled
	}

	if req.CategoryID != nil {
		txn.CategoryID = optionalID(*req.CategoryID)
		if txn.CategoryID != nil {
			if _, err := s.categoryRepo.FindCategoryByID(ctx, txn.UserID, *txn.CategoryID); err != nil {
				return fmt.Errorf("failed to resolve category %s: %w", *txn.CategoryID, err)
			}
		}
	}
	if req.AllocationID != nil {
		txn.AllocationID = optionalID(*req.AllocationID)
		if txn.AllocationID != nil {
			if _, err := s.allocationRepo.FindAllocationByID(ctx, txn.UserID, *txn.AllocationID); err != nil {
				return fmt.Errorf("failed to resolve allocation %s: %w", *txn.AllocationID, err)
			}
		}
	}
	if req.BudgetEntryID != nil {
		txn.BudgetEntryID = optionalID(*req.BudgetEntryID)
		txn.IsRecurring = false
		txn.RecurrenceFrequency = nil
		if txn.BudgetEntryID != nil {
			entry, err := s.budgetEntryRepo.FindBudgetEntryByID(ctx, txn.UserID, *txn.BudgetEntryID)
			if err != nil {
				return fmt.Errorf("failed to resolve budget entry %s: %w", *txn.BudgetEntryID, err)
			}
			txn.IsRecurring = true
			cadence := entry.Cadence
			txn.RecurrenceFrequency = &cadence
		}
	}
	return nil
}

// postingEffects computes the balance changes and budget impacts of posting
// this transaction. With reverse set, every sign is flipped and the impacts
// describe undoing a previously posted state; the reference date stays the
// transaction's own date so the reversal lands in the window that absorbed
// the original posting (or whichever window has since rolled over it).
func (s *transactionService) postingEffects(ctx context.Context, txn domain.Transaction, reverse bool) (map[string]decimal.Decimal, []domain.BudgetImpact, error) {
	effects, err := txn.BalanceEffects()
	if err != nil {
		return nil, nil, err
	}
	if reverse {
		for id, delta := range effects {
			effects[id] = delta.Neg()
		}
	}

	impacts, err := s.budgetImpacts(ctx, txn, reverse)
	if err != nil {
		return nil, nil, err
	}
	return effects, impacts, nil
}

// budgetImpacts resolves which budget allocations this transaction feeds: the
// explicitly linked allocation when it is budget-typed, plus every active
// budget allocation whose configuration lists the transaction's category.
// Each matched allocation receives the full delta once.
func (s *transactionService) budgetImpacts(ctx context.Context, txn domain.Transaction, reverse bool) ([]domain.BudgetImpact, error) {
	delta := txn.BudgetDelta()
	if delta.IsZero() {
		return nil, nil
	}
	if reverse {
		delta = delta.Neg()
	}

	matched := make([]string, 0, 2)
	seen := map[string]bool{}
	if txn.AllocationID != nil {
		alloc, err := s.allocationRepo.FindAllocationByID(ctx, txn.UserID, *txn.AllocationID)
		switch {
		case err != nil && reverse && errors.Is(err, apperrors.ErrNotFound):
			// The linked allocation was removed after the original posting;
			// there is nothing left to reverse against it.
		case err != nil:
			return nil, fmt.Errorf("failed to resolve allocation %s: %w", *txn.AllocationID, err)
		case alloc.IsBudget():
			matched = append(matched, alloc.AllocationID)
			seen[alloc.AllocationID] = true
		}
	}
	if txn.CategoryID != nil {
		budgets, err := s.allocationRepo.ListBudgetAllocations(ctx, txn.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list budget allocations: %w", err)
		}
		for _, b := range budgets {
			if seen[b.AllocationID] || !b.MatchesCategory(*txn.CategoryID) {
				continue
			}
			matched = append(matched, b.AllocationID)
			seen[b.AllocationID] = true
		}
	}

	impacts := make([]domain.BudgetImpact, 0, len(matched))
	for _, id := range matched {
		impacts = append(impacts, domain.BudgetImpact{
			AllocationID:  id,
			Delta:         delta,
			ReferenceDate: txn.TransactionDate,
		})
	}
	return impacts, nil
}

// categoryNamesByID loads every category of the user keyed by id.
func (s *transactionService) categoryNamesByID(ctx context.Context, userID string) (map[string]string, error) {
	categories, _, err := s.categoryRepo.ListCategories(ctx, userID, portsrepo.CategoryListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}
	return names, nil
}

// mergeEffects folds src into dst, summing deltas per account.
func mergeEffects(dst map[string]decimal.Decimal, src map[string]decimal.Decimal) {
	for id, delta := range src {
		dst[id] = dst[id].Add(delta)
	}
}

// optionalID converts an empty string into a cleared link.
func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
