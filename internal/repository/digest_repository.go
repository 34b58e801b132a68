package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/counseling_portal/internal/repository/base"
	"github.com/google/uuid"
)

type DigestRepository struct {
	*base.Repository
}

func NewDigestRepository(db base.DB) *DigestRepository {
	return &DigestRepository{Repository: base.NewRepository(db)}
}

// Claim records the digest of date for a user. It returns false when the
// digest was already claimed, so a user never gets two digests a day.
func (r *DigestRepository) Claim(ctx context.Context, runID uuid.UUID, telegramID int64, date string, appointments int) (bool, error) {
	query := `
		INSERT INTO digest_deliveries (telegram_id, digest_date, run_id, appointments)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (telegram_id, digest_date) DO NOTHING
	`

	affected, err := r.ExecAffected(ctx, query, telegramID, date, runID.String(), appointments)
	if err != nil {
		return false, fmt.Errorf("claim digest: %w", err)
	}

	return affected == 1, nil
}

// Release removes a claim whose message could not be delivered so the next run retries it
func (r *DigestRepository) Release(ctx context.Context, telegramID int64, date string) error {
	query := `DELETE FROM digest_deliveries WHERE telegram_id = $1 AND digest_date = $2::date`
	if _, err := r.ExecAffected(ctx, query, telegramID, date); err != nil {
		return fmt.Errorf("release digest: %w", err)
	}
	return nil
}
