package repositories

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
)

// EmailTokenRepository persists verification and password-reset tokens.
type EmailTokenRepository interface {
	// SaveEmailToken persists a new token.
	SaveEmailToken(ctx context.Context, token domain.EmailToken) error

	// FindUsableByHash retrieves an unused, unexpired token by hash and
	// purpose.
	FindUsableByHash(ctx context.Context, tokenHash string, purpose domain.EmailTokenPurpose, now time.Time) (*domain.EmailToken, error)

	// MarkUsed stamps the token as redeemed.
	MarkUsed(ctx context.Context, emailTokenID string, now time.Time) error

	// InvalidateForUser marks all of a user's outstanding tokens of one
	// purpose as used, so only the most recently issued token redeems.
	InvalidateForUser(ctx context.Context, userID string, purpose domain.EmailTokenPurpose, now time.Time) error
}
