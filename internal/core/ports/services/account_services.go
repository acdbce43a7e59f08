package services

import (
	"context"

	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/dto"
)

// AccountSvcFacade defines account operations exposed to handlers. Every
// operation is scoped to the authenticated user; other users' accounts are
// reported as not found.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string, filter portsrepo.AccountListFilter) ([]domain.Account, int, error)
	UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, userID, accountID string) error

	// GetBalanceHistory replays every posted transaction touching the account
	// and returns the running balance sequence next to the stored balance.
	GetBalanceHistory(ctx context.Context, userID, accountID string) (*dto.BalanceHistoryResponse, error)
}
