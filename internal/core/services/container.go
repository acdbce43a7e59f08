package services

import (
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/platform/config"
)

// NewServiceContainer wires every service facade from the repository
// provider and configuration.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config, emailSender portssvc.EmailSender) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:               userSvc,
		Auth:               NewAuthService(cfg, repos.UserRepo, repos.EmailTokenRepo, emailSender),
		Token:              NewTokenService(cfg, userSvc),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
		Account:            NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.UserRepo),
		Category:           NewCategoryService(repos.CategoryRepo),
		Allocation:         NewAllocationService(repos.AllocationRepo, repos.AccountRepo, repos.TransactionRepo),
		BudgetEntry:        NewBudgetEntryService(repos.BudgetEntryRepo, repos.AccountRepo, repos.CategoryRepo, repos.AllocationRepo, repos.UserRepo),
		Transaction:        NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, repos.AllocationRepo, repos.BudgetEntryRepo),
	}
}
