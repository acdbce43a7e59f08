package services

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade defines registration, login and email-token flows.
type AuthSvcFacade interface {
	// Register creates an unverified user and sends a verification email.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login validates credentials and stamps last login.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error)

	// VerifyEmail redeems a verification token.
	VerifyEmail(ctx context.Context, rawToken string) error

	// ResendVerification issues a fresh verification token for an unverified
	// user. Unknown emails are ignored silently.
	ResendVerification(ctx context.Context, email string) error

	// ForgotPassword issues a reset token. Unknown emails are ignored
	// silently so account existence is not probeable.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword redeems a reset token for a new password and revokes the
	// user's refresh token.
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken validates a refresh token string against a
	// user's stored token details and returns the user when valid.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth
// operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)

	// ValidateGoogleIDToken validates an ID token string from Google and
	// returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// EmailSender delivers transactional email. Implementations may be no-ops
// when delivery is not configured.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}
