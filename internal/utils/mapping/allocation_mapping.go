package mapping

import (
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/models"
)

// ToModelAllocation converts a domain Allocation to its model form.
func ToModelAllocation(d domain.Allocation) models.Allocation {
	m := models.Allocation{
		AllocationID:   d.AllocationID,
		UserID:         d.UserID,
		AccountID:      d.AccountID,
		Name:           d.Name,
		AllocationType: string(d.AllocationType),
		Description:    d.Description,
		TargetAmount:   d.TargetAmount,
		CurrentAmount:  d.CurrentAmount,
		MonthlyTarget:  d.MonthlyTarget,
		Currency:       string(d.Currency),
		TargetDate:     d.TargetDate,
		PeriodStart:    d.PeriodStart,
		PeriodEnd:      d.PeriodEnd,
		Configuration:  d.Configuration,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.PeriodFrequency != "" {
		freq := string(d.PeriodFrequency)
		m.PeriodFrequency = &freq
	}
	return m
}

// ToDomainAllocation converts a model Allocation to its domain form.
func ToDomainAllocation(m models.Allocation) domain.Allocation {
	d := domain.Allocation{
		AllocationID:   m.AllocationID,
		UserID:         m.UserID,
		AccountID:      m.AccountID,
		Name:           m.Name,
		AllocationType: domain.AllocationType(m.AllocationType),
		Description:    m.Description,
		TargetAmount:   m.TargetAmount,
		CurrentAmount:  m.CurrentAmount,
		MonthlyTarget:  m.MonthlyTarget,
		Currency:       domain.CurrencyCode(m.Currency),
		TargetDate:     m.TargetDate,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		Configuration:  m.Configuration,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.PeriodFrequency != nil {
		d.PeriodFrequency = domain.PeriodFrequency(*m.PeriodFrequency)
	}
	return d
}
