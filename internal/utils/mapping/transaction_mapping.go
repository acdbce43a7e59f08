package mapping

import (
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to its model form.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:         d.TransactionID,
		UserID:                d.UserID,
		AccountID:             d.AccountID,
		CategoryID:            d.CategoryID,
		AllocationID:          d.AllocationID,
		BudgetEntryID:         d.BudgetEntryID,
		Amount:                d.Amount,
		Currency:              string(d.Currency),
		Description:           d.Description,
		TransactionType:       string(d.TransactionType),
		TransferFromAccountID: d.TransferFromAccountID,
		TransferToAccountID:   d.TransferToAccountID,
		TransferFee:           d.TransferFee,
		ProjectedAmount:       d.ProjectedAmount,
		OriginalAmount:        d.OriginalAmount,
		ExchangeRate:          d.ExchangeRate,
		TransactionDate:       d.TransactionDate,
		PostingDate:           d.PostingDate,
		IsPosted:              d.IsPosted,
		IsReconciled:          d.IsReconciled,
		IsRecurring:           d.IsRecurring,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
	if d.ProjectedCurrency != nil {
		c := string(*d.ProjectedCurrency)
		m.ProjectedCurrency = &c
	}
	if d.OriginalCurrency != nil {
		c := string(*d.OriginalCurrency)
		m.OriginalCurrency = &c
	}
	if d.ReceiptURL != "" {
		url := d.ReceiptURL
		m.ReceiptURL = &url
	}
	if d.InvoiceURL != "" {
		url := d.InvoiceURL
		m.InvoiceURL = &url
	}
	if d.RecurrenceFrequency != nil {
		freq := string(*d.RecurrenceFrequency)
		m.RecurrenceFrequency = &freq
	}
	return m
}

// ToDomainTransaction converts a model Transaction to its domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:         m.TransactionID,
		UserID:                m.UserID,
		AccountID:             m.AccountID,
		CategoryID:            m.CategoryID,
		AllocationID:          m.AllocationID,
		BudgetEntryID:         m.BudgetEntryID,
		Amount:                m.Amount,
		Currency:              domain.CurrencyCode(m.Currency),
		Description:           m.Description,
		TransactionType:       domain.TransactionType(m.TransactionType),
		TransferFromAccountID: m.TransferFromAccountID,
		TransferToAccountID:   m.TransferToAccountID,
		TransferFee:           m.TransferFee,
		ProjectedAmount:       m.ProjectedAmount,
		OriginalAmount:        m.OriginalAmount,
		ExchangeRate:          m.ExchangeRate,
		TransactionDate:       m.TransactionDate,
		PostingDate:           m.PostingDate,
		IsPosted:              m.IsPosted,
		IsReconciled:          m.IsReconciled,
		IsRecurring:           m.IsRecurring,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
	if m.ProjectedCurrency != nil {
		c := domain.CurrencyCode(*m.ProjectedCurrency)
		d.ProjectedCurrency = &c
	}
	if m.OriginalCurrency != nil {
		c := domain.CurrencyCode(*m.OriginalCurrency)
		d.OriginalCurrency = &c
	}
	if m.ReceiptURL != nil {
		d.ReceiptURL = *m.ReceiptURL
	}
	if m.InvoiceURL != nil {
		d.InvoiceURL = *m.InvoiceURL
	}
	if m.RecurrenceFrequency != nil {
		freq := domain.RecurrenceFrequency(*m.RecurrenceFrequency)
		d.RecurrenceFrequency = &freq
	}
	return d
}
