package domain

import "time"

// EmailTokenPurpose distinguishes verification tokens from password reset
// tokens.
type EmailTokenPurpose string

const (
	TokenVerifyEmail   EmailTokenPurpose = "verify_email"
	TokenPasswordReset EmailTokenPurpose = "password_reset"
)

// EmailToken is a single-use, expiring token mailed to a user. Only the
// SHA256 hash of the raw token is persisted.
type EmailToken struct {
	EmailTokenID string            `json:"emailTokenID"` // Primary Key (UUID)
	UserID       string            `json:"userID"`
	Purpose      EmailTokenPurpose `json:"purpose"`
	TokenHash    string            `json:"-"`
	ExpiresAt    time.Time         `json:"expiresAt"`
	UsedAt       *time.Time        `json:"usedAt"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// IsUsable reports whether the token can still redeem at the given instant.
func (t EmailToken) IsUsable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
