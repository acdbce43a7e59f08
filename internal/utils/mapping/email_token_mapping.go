package mapping

import (
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/models"
)

// ToModelEmailToken converts a domain EmailToken to its model form.
func ToModelEmailToken(d domain.EmailToken) models.EmailToken {
	return models.EmailToken{
		EmailTokenID: d.EmailTokenID,
		UserID:       d.UserID,
		Purpose:      string(d.Purpose),
		TokenHash:    d.TokenHash,
		ExpiresAt:    d.ExpiresAt,
		UsedAt:       d.UsedAt,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainEmailToken converts a model EmailToken to its domain form.
func ToDomainEmailToken(m models.EmailToken) domain.EmailToken {
	return domain.EmailToken{
		EmailTokenID: m.EmailTokenID,
		UserID:       m.UserID,
		Purpose:      domain.EmailTokenPurpose(m.Purpose),
		TokenHash:    m.TokenHash,
		ExpiresAt:    m.ExpiresAt,
		UsedAt:       m.UsedAt,
		CreatedAt:    m.CreatedAt,
	}
}
