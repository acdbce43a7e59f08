package models

import "time"

// User mirrors the users table.
type User struct {
	UserID          string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	IsActive        bool
	IsVerified      bool
	DefaultCurrency string
	LastLoginAt     *time.Time

	RefreshTokenHash       *string
	RefreshTokenExpiryTime *time.Time

	AuditFields
}
