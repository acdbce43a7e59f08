package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	"github.com/gastos-app/gastos_backend/internal/models"
	"github.com/gastos-app/gastos_backend/internal/utils/mapping"
)

const emailTokenColumns = `email_token_id, user_id, purpose, token_hash, expires_at, used_at, created_at`

// PgxEmailTokenRepository persists email verification and password-reset
// tokens in PostgreSQL.
type PgxEmailTokenRepository struct {
	BaseRepository
}

// newPgxEmailTokenRepository creates a new repository for email token data.
func newPgxEmailTokenRepository(pool *pgxpool.Pool) *PgxEmailTokenRepository {
	return &PgxEmailTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEmailTokenRepository implements portsrepo.EmailTokenRepository
var _ portsrepo.EmailTokenRepository = (*PgxEmailTokenRepository)(nil)

func scanEmailToken(row pgx.Row) (models.EmailToken, error) {
	var m models.EmailToken
	err := row.Scan(
		&m.EmailTokenID,
		&m.UserID,
		&m.Purpose,
		&m.TokenHash,
		&m.ExpiresAt,
		&m.UsedAt,
		&m.CreatedAt,
	)
	return m, err
}

// SaveEmailToken persists a new token.
func (r *PgxEmailTokenRepository) SaveEmailToken(ctx context.Context, token domain.EmailToken) error {
	m := mapping.ToModelEmailToken(token)
	query := `
		INSERT INTO email_tokens (` + emailTokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmailTokenID, m.UserID, m.Purpose, m.TokenHash, m.ExpiresAt, m.UsedAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert email token %s: %w", m.EmailTokenID, err)
	}
	return nil
}

// FindUsableByHash retrieves an unused, unexpired token by hash and purpose.
func (r *PgxEmailTokenRepository) FindUsableByHash(ctx context.Context, tokenHash string, purpose domain.EmailTokenPurpose, now time.Time) (*domain.EmailToken, error) {
	query := `
		SELECT ` + emailTokenColumns + `
		FROM email_tokens
		WHERE token_hash = $1 AND purpose = $2 AND used_at IS NULL AND expires_at > $3;
	`
	m, err := scanEmailToken(r.Pool.QueryRow(ctx, query, tokenHash, string(purpose), now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("email token: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query email token: %w", err)
	}
	d := mapping.ToDomainEmailToken(m)
	return &d, nil
}

// MarkUsed stamps the token as redeemed.
func (r *PgxEmailTokenRepository) MarkUsed(ctx context.Context, emailTokenID string, now time.Time) error {
	query := `UPDATE email_tokens SET used_at = $2 WHERE email_token_id = $1 AND used_at IS NULL;`
	tag, err := r.Pool.Exec(ctx, query, emailTokenID, now)
	if err != nil {
		return fmt.Errorf("failed to mark email token %s used: %w", emailTokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("email token %s: %w", emailTokenID, apperrors.ErrNotFound)
	}
	return nil
}

// InvalidateForUser marks all of a user's outstanding tokens of one purpose
// as used, so only the most recently issued token redeems.
func (r *PgxEmailTokenRepository) InvalidateForUser(ctx context.Context, userID string, purpose domain.EmailTokenPurpose, now time.Time) error {
	query := `UPDATE email_tokens SET used_at = $3 WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL;`
	if _, err := r.Pool.Exec(ctx, query, userID, string(purpose), now); err != nil {
		return fmt.Errorf("failed to invalidate email tokens for user %s: %w", userID, err)
	}
	return nil
}
