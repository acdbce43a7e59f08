package services

import (
	"context"
	"time"

	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/dto"
)

// TransactionSvcFacade is the ledger mutation engine's public surface. All
// mutations keep account balances and budget allocation progress consistent
// with the set of posted transactions, committing atomically.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, int, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// AttachReceipt records the stored location of an uploaded receipt.
	AttachReceipt(ctx context.Context, userID, transactionID, receiptURL string) error

	// GetPeriodSummary totals posted transactions over [start, end] with a
	// per-category breakdown.
	GetPeriodSummary(ctx context.Context, userID string, start, end time.Time, accountID *string) (*dto.TransactionSummaryResponse, error)
}
