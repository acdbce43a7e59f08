package domain

import "time"

// User represents an authenticated owner of accounts, categories,
// allocations, budget entries and transactions.
type User struct {
	UserID          string       `json:"userID"` // Primary Key (UUID)
	Email           string       `json:"email"`  // Unique
	PasswordHash    string       `json:"-"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	IsActive        bool         `json:"isActive"`
	IsVerified      bool         `json:"isVerified"` // Email verified
	DefaultCurrency CurrencyCode `json:"defaultCurrency"`
	LastLoginAt     *time.Time   `json:"lastLoginAt"`
	AuditFields

	// Refresh token details; only the SHA256 hash is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo
// endpoint during OAuth login.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}
