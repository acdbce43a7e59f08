package pgsql

import (
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	allocationRepo := newPgxAllocationRepository(dbPool)
	budgetEntryRepo := newPgxBudgetEntryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo, allocationRepo)
	emailTokenRepo := newPgxEmailTokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		AllocationRepo:  allocationRepo,
		BudgetEntryRepo: budgetEntryRepo,
		TransactionRepo: transactionRepo,
		EmailTokenRepo:  emailTokenRepo,
	}
}
