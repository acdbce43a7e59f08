package services

// ServiceContainer bundles every service facade the handlers need.
type ServiceContainer struct {
	User               UserSvcFacade
	Auth               AuthSvcFacade
	Token              TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Account            AccountSvcFacade
	Category           CategorySvcFacade
	Allocation         AllocationSvcFacade
	BudgetEntry        BudgetEntrySvcFacade
	Transaction        TransactionSvcFacade
}
