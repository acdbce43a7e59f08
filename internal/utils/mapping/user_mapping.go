package mapping

import (
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/models"
)

// ToModelUser converts a domain User to its model form.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:                 d.UserID,
		Email:                  d.Email,
		PasswordHash:           d.PasswordHash,
		FirstName:              d.FirstName,
		LastName:               d.LastName,
		IsActive:               d.IsActive,
		IsVerified:             d.IsVerified,
		DefaultCurrency:        string(d.DefaultCurrency),
		LastLoginAt:            d.LastLoginAt,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
	if d.RefreshTokenHash != "" {
		hash := d.RefreshTokenHash
		m.RefreshTokenHash = &hash
	}
	return m
}

// ToDomainUser converts a model User to its domain form.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:                 m.UserID,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		FirstName:              m.FirstName,
		LastName:               m.LastName,
		IsActive:               m.IsActive,
		IsVerified:             m.IsVerified,
		DefaultCurrency:        domain.CurrencyCode(m.DefaultCurrency),
		LastLoginAt:            m.LastLoginAt,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
	if m.RefreshTokenHash != nil {
		d.RefreshTokenHash = *m.RefreshTokenHash
	}
	return d
}
