package models

import "time"

// EmailToken mirrors the email_tokens table.
type EmailToken struct {
	EmailTokenID string
	UserID       string
	Purpose      string
	TokenHash    string
	ExpiresAt    time.Time
	UsedAt       *time.Time
	CreatedAt    time.Time
}
