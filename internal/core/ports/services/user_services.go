package services

import (
	"context"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/gastos-app/gastos_backend/internal/dto"
)

// UserSvcFacade defines user profile operations.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// UpdateRefreshToken stores the hash and expiry of the user's active
	// refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken revokes the user's refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error

	// GetOrCreateOAuthUser finds the user matching the verified Google
	// profile or provisions a new pre-verified user for it.
	GetOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
}
