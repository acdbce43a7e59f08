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
)

// userService provides user profile operations.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by id.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial profile update.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DefaultCurrency != nil {
		user.DefaultCurrency = domain.CurrencyCode(*req.DefaultCurrency)
	}
	user.UpdatedAt = &now

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateRefreshToken stores the hash and expiry of the user's active refresh
// token.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	now := time.Now().UTC()
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, &refreshTokenExpiryTime, now); err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	return nil
}

// ClearRefreshToken revokes the user's refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil, now); err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	return nil
}

// GetOrCreateOAuthUser finds the user matching the verified Google profile or
// provisions a new pre-verified user for it. Google has already verified the
// email, so no verification mail is sent.
func (s *userService) GetOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if info == nil || info.Email == "" {
		return nil, fmt.Errorf("%w: google profile has no email", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:          uuid.NewString(),
		Email:           info.Email,
		FirstName:       info.GivenName,
		LastName:        info.FamilyName,
		IsActive:        true,
		IsVerified:      true,
		DefaultCurrency: domain.PHP,
		AuditFields:     domain.AuditFields{CreatedAt: now},
	}
	if newUser.FirstName == "" {
		newUser.FirstName = info.Name
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("failed to provision oauth user", "error", err)
		return nil, fmt.Errorf("failed to provision oauth user: %w", err)
	}

	logger.Info("oauth user provisioned", "user_id", newUser.UserID)
	return &newUser, nil
}
