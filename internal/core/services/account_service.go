package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/gastos-app/gastos_backend/internal/middleware"
)

// accountService provides account operations.
type accountService struct {
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionReader
	userRepo        portsrepo.UserReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, transactionRepo portsrepo.TransactionReader, userRepo portsrepo.UserReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. An empty currency defaults to the
// user's default currency, and a non-zero initial balance seeds Balance
// directly; from then on only posted transactions move it.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	currency := domain.CurrencyCode(req.Currency)
	if currency == "" {
		user, err := s.userRepo.FindUserByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
		}
		currency = user.DefaultCurrency
		if currency == "" {
			currency = domain.PHP
		}
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		Balance:         decimal.Zero,
		Currency:        currency,
		Description:     req.Description,
		CreditLimit:     req.CreditLimit,
		DueDateDay:      req.DueDateDay,
		BillingCycleDay: req.BillingCycleDay,
		IsActive:        true,
		AuditFields:     domain.AuditFields{CreatedAt: now},
	}
	if req.InitialBalance != nil {
		account.Balance = *req.InitialBalance
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("failed to save account", "error", err, "account_id", account.AccountID)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("account created", "account_id", account.AccountID, "type", account.AccountType)
	return &account, nil
}

// GetAccountByID retrieves a single account owned by userID.
func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a filtered page of the user's accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string, filter portsrepo.AccountListFilter) ([]domain.Account, int, error) {
	accounts, total, err := s.accountRepo.ListAccounts(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, total, nil
}

// UpdateAccount applies a partial update. Balance is not touchable here.
func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		account.AccountType = domain.AccountType(*req.AccountType)
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.CreditLimit != nil {
		account.CreditLimit = req.CreditLimit
	}
	if req.DueDateDay != nil {
		account.DueDateDay = req.DueDateDay
	}
	if req.BillingCycleDay != nil {
		account.BillingCycleDay = req.BillingCycleDay
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.UpdatedAt = &now

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("failed to update account", "error", err, "account_id", accountID)
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. History stays queryable.
func (s *accountService) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, userID, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.accountRepo.DeactivateAccount(ctx, userID, accountID, time.Now().UTC()); err != nil {
		logger.Error("failed to deactivate account", "error", err, "account_id", accountID)
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("account deactivated", "account_id", accountID)
	return nil
}

// GetBalanceHistory replays every posted transaction touching the account in
// chronological order and returns the running balance next to the stored
// balance. A difference between the two signals ledger drift, typically from
// a manually seeded opening balance.
func (s *accountService) GetBalanceHistory(ctx context.Context, userID, accountID string) (*dto.BalanceHistoryResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	txns, err := s.transactionRepo.ListPostedByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for account %s: %w", accountID, err)
	}

	running := decimal.Zero
	history := make([]dto.BalancePoint, 0, len(txns))
	for _, txn := range txns {
		effect := txn.EffectOn(accountID)
		if effect.IsZero() {
			continue
		}
		running = running.Add(effect)
		history = append(history, dto.BalancePoint{
			Date:          txn.TransactionDate,
			Balance:       running,
			TransactionID: txn.TransactionID,
			Change:        effect,
		})
	}

	return &dto.BalanceHistoryResponse{
		AccountID:         accountID,
		CurrentBalance:    account.Balance,
		CalculatedBalance: running,
		BalanceHistory:    history,
	}, nil
}
