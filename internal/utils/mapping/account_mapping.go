package mapping

import (
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/models"
)

// ToModelAccount converts a domain Account to its model form.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		UserID:          d.UserID,
		Name:            d.Name,
		AccountType:     string(d.AccountType),
		Balance:         d.Balance,
		Currency:        string(d.Currency),
		Description:     d.Description,
		CreditLimit:     d.CreditLimit,
		DueDateDay:      d.DueDateDay,
		BillingCycleDay: d.BillingCycleDay,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to its domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Balance:         m.Balance,
		Currency:        domain.CurrencyCode(m.Currency),
		Description:     m.Description,
		CreditLimit:     m.CreditLimit,
		DueDateDay:      m.DueDateDay,
		BillingCycleDay: m.BillingCycleDay,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
