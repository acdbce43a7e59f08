package repositories

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	UserRepo        UserRepository
	AccountRepo     AccountRepository
	CategoryRepo    CategoryRepository
	AllocationRepo  AllocationRepository
	BudgetEntryRepo BudgetEntryRepository
	TransactionRepo TransactionRepository
	EmailTokenRepo  EmailTokenRepository
}
