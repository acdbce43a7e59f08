package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/gastos-app/gastos_backend/internal/middleware"
	"github.com/gastos-app/gastos_backend/internal/platform/config"
	"github.com/gastos-app/gastos_backend/internal/utils"
)

// authService implements registration, login and the email token flows.
// Raw email tokens only ever travel inside the email; the database sees
// their SHA256 hash.
type authService struct {
	cfg            *config.Config
	userRepo       portsrepo.UserRepository
	emailTokenRepo portsrepo.EmailTokenRepository
	emailSender    portssvc.EmailSender
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepository, emailTokenRepo portsrepo.EmailTokenRepository, emailSender portssvc.EmailSender) portssvc.AuthSvcFacade {
	return &authService{
		cfg:            cfg,
		userRepo:       userRepo,
		emailTokenRepo: emailTokenRepo,
		emailSender:    emailSender,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates an unverified user and mails a verification token.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	_, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:          uuid.NewString(),
		Email:           req.Email,
		PasswordHash:    passwordHash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		IsActive:        true,
		IsVerified:      false,
		DefaultCurrency: domain.CurrencyCode(req.DefaultCurrency),
		AuditFields:     domain.AuditFields{CreatedAt: now},
	}
	if user.DefaultCurrency == "" {
		user.DefaultCurrency = domain.PHP
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if err := s.issueEmailToken(ctx, user, domain.TokenVerifyEmail); err != nil {
		// Registration stands; the user can request a fresh token.
		logger.Error("failed to send verification email", "error", err, "user_id", user.UserID)
	}

	logger.Info("user registered", "user_id", user.UserID)
	return &user, nil
}

// Login validates credentials and stamps last login. Unknown emails and bad
// passwords both come back as unauthorized.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		logger.Warn("failed to stamp last login", "error", err, "user_id", user.UserID)
	}
	user.LastLoginAt = &now
	return user, nil
}

// VerifyEmail redeems a verification token.
func (s *authService) VerifyEmail(ctx context.Context, rawToken string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	token, err := s.emailTokenRepo.FindUsableByHash(ctx, utils.HashToken(rawToken), domain.TokenVerifyEmail, now)
	if err != nil {
		return fmt.Errorf("failed to redeem verification token: %w", err)
	}
	if err := s.userRepo.MarkVerified(ctx, token.UserID, now); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if err := s.emailTokenRepo.MarkUsed(ctx, token.EmailTokenID, now); err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}

	logger.Info("email verified", "user_id", token.UserID)
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// user. Unknown emails are ignored silently.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user by email: %w", err)
	}
	if user.IsVerified {
		return fmt.Errorf("%w: email already verified", apperrors.ErrConflict)
	}

	if err := s.issueEmailToken(ctx, *user, domain.TokenVerifyEmail); err != nil {
		logger.Error("failed to resend verification email", "error", err, "user_id", user.UserID)
		return fmt.Errorf("failed to resend verification email: %w", err)
	}
	return nil
}

// ForgotPassword issues a reset token. Unknown emails are ignored silently
// so account existence is not probeable.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := s.issueEmailToken(ctx, *user, domain.TokenPasswordReset); err != nil {
		logger.Error("failed to send password reset email", "error", err, "user_id", user.UserID)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// ResetPassword redeems a reset token for a new password and revokes the
// user's refresh token so stolen sessions die with the old password.
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	token, err := s.emailTokenRepo.FindUsableByHash(ctx, utils.HashToken(rawToken), domain.TokenPasswordReset, now)
	if err != nil {
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, token.UserID, passwordHash, now); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, token.UserID, "", nil, now); err != nil {
		logger.Warn("failed to revoke refresh token after password reset", "error", err, "user_id", token.UserID)
	}
	if err := s.emailTokenRepo.MarkUsed(ctx, token.EmailTokenID, now); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	logger.Info("password reset", "user_id", token.UserID)
	return nil
}

// issueEmailToken invalidates older tokens of the same purpose, stores a new
// hashed token and mails the raw token.
func (s *authService) issueEmailToken(ctx context.Context, user domain.User, purpose domain.EmailTokenPurpose) error {
	now := time.Now().UTC()

	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate email token: %w", err)
	}

	expiry := s.cfg.VerificationTokenExpiry
	if purpose == domain.TokenPasswordReset {
		expiry = s.cfg.PasswordResetTokenExpiry
	}

	if err := s.emailTokenRepo.InvalidateForUser(ctx, user.UserID, purpose, now); err != nil {
		return fmt.Errorf("failed to invalidate previous tokens: %w", err)
	}
	token := domain.EmailToken{
		EmailTokenID: uuid.NewString(),
		UserID:       user.UserID,
		Purpose:      purpose,
		TokenHash:    utils.HashToken(rawToken),
		ExpiresAt:    now.Add(expiry),
		CreatedAt:    now,
	}
	if err := s.emailTokenRepo.SaveEmailToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save email token: %w", err)
	}

	subject, body := emailContent(s.cfg.FrontendBaseURL, user.FirstName, purpose, rawToken)
	if err := s.emailSender.Send(ctx, []string{user.Email}, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// emailContent renders the subject and HTML body for an email token.
func emailContent(baseURL, firstName string, purpose domain.EmailTokenPurpose, rawToken string) (string, string) {
	greeting := "Hi"
	if firstName != "" {
		greeting = "Hi " + firstName
	}
	switch purpose {
	case domain.TokenPasswordReset:
		link := fmt.Sprintf("%s/reset-password?token=%s", baseURL, rawToken)
		return "Reset your password", fmt.Sprintf(
			"<p>%s,</p><p>You asked to reset your password. Click the link below to choose a new one. If this wasn't you, you can ignore this email.</p><p><a href=%q>Reset password</a></p>",
			greeting, link)
	default:
		link := fmt.Sprintf("%s/verify-email?token=%s", baseURL, rawToken)
		return "Verify your email", fmt.Sprintf(
			"<p>%s,</p><p>Welcome! Please confirm your email address to activate your account.</p><p><a href=%q>Verify email</a></p>",
			greeting, link)
	}
}
