package mapping

import (
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/models"
)

// ToModelBudgetEntry converts a domain BudgetEntry to its model form.
func ToModelBudgetEntry(d domain.BudgetEntry) models.BudgetEntry {
	return models.BudgetEntry{
		BudgetEntryID:  d.BudgetEntryID,
		UserID:         d.UserID,
		EntryType:      string(d.EntryType),
		Name:           d.Name,
		Description:    d.Description,
		Amount:         d.Amount,
		Currency:       string(d.Currency),
		Cadence:        string(d.Cadence),
		NextOccurrence: d.NextOccurrence,
		LeadTimeDays:   d.LeadTimeDays,
		EndMode:        string(d.EndMode),
		EndDate:        d.EndDate,
		MaxOccurrences: d.MaxOccurrences,
		AccountID:      d.AccountID,
		CategoryID:     d.CategoryID,
		AllocationID:   d.AllocationID,
		IsAutopay:      d.IsAutopay,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetEntry converts a model BudgetEntry to its domain form.
func ToDomainBudgetEntry(m models.BudgetEntry) domain.BudgetEntry {
	return domain.BudgetEntry{
		BudgetEntryID:  m.BudgetEntryID,
		UserID:         m.UserID,
		EntryType:      domain.BudgetEntryType(m.EntryType),
		Name:           m.Name,
		Description:    m.Description,
		Amount:         m.Amount,
		Currency:       domain.CurrencyCode(m.Currency),
		Cadence:        domain.RecurrenceFrequency(m.Cadence),
		NextOccurrence: m.NextOccurrence,
		LeadTimeDays:   m.LeadTimeDays,
		EndMode:        domain.EndMode(m.EndMode),
		EndDate:        m.EndDate,
		MaxOccurrences: m.MaxOccurrences,
		AccountID:      m.AccountID,
		CategoryID:     m.CategoryID,
		AllocationID:   m.AllocationID,
		IsAutopay:      m.IsAutopay,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
