package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/repository/base"
)

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(db base.DB) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(db)}
}

const sessionColumns = `telegram_id, user_id, email, role, display_name, access_token, refresh_token, expires_at, created_at, updated_at`

// Upsert links a Telegram account to a portal session, replacing any previous link
func (r *SessionRepository) Upsert(ctx context.Context, s *model.PortalSession) error {
	query := `
		INSERT INTO portal_sessions (telegram_id, user_id, email, role, display_name, access_token, refresh_token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (telegram_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			display_name = EXCLUDED.display_name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = now()
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		s.TelegramID,
		s.UserID,
		s.Email,
		s.Role,
		s.DisplayName,
		s.AccessToken,
		s.RefreshToken,
		s.ExpiresAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID returns nil, nil when the account is not linked
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.PortalSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM portal_sessions WHERE telegram_id = $1`

	s, err := scanSession(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}

	return s, nil
}

// UpdateTokens stores refreshed credentials
func (r *SessionRepository) UpdateTokens(ctx context.Context, s *model.PortalSession) error {
	query := `
		UPDATE portal_sessions
		SET access_token = $1, refresh_token = $2, expires_at = $3, updated_at = now()
		WHERE telegram_id = $4
	`

	affected, err := r.ExecAffected(ctx, query, s.AccessToken, s.RefreshToken, s.ExpiresAt, s.TelegramID)
	if err != nil {
		return fmt.Errorf("update session tokens: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session for telegram id %d not found", s.TelegramID)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM portal_sessions WHERE telegram_id = $1`, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListAll returns every linked account, used by the daily digest
func (r *SessionRepository) ListAll(ctx context.Context) ([]*model.PortalSession, error) {
	rows, err := r.Query(ctx, `SELECT `+sessionColumns+` FROM portal_sessions ORDER BY telegram_id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.PortalSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*model.PortalSession, error) {
	var s model.PortalSession
	err := row.Scan(
		&s.TelegramID,
		&s.UserID,
		&s.Email,
		&s.Role,
		&s.DisplayName,
		&s.AccessToken,
		&s.RefreshToken,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
