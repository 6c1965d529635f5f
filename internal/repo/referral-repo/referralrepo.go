package referralrepo

import (
	"context"

	"megaraffle/internal/domain"
	"megaraffle/internal/pg"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Insert credits a referral pair once. A duplicate (referrer, referee)
// pair loses the unique conflict and reports inserted == false.
func (r *Repository) Insert(ctx context.Context, referral *domain.Referral) (bool, error) {
	query := `
		INSERT INTO referrals (referrer_id, referee_id)
		VALUES ($1, $2)
		ON CONFLICT (referrer_id, referee_id) DO NOTHING
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, referral.ReferrerID, referral.RefereeID).
		Scan(&referral.ID, &referral.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		zap.L().Error("can't save referral", zap.Error(err))
		return false, err
	}
	return true, nil
}

// AddToCount adjusts a referral counter atomically and returns the
// resulting value. delta may be negative when a bonus is folded out.
func (r *Repository) AddToCount(ctx context.Context, userID, delta int) (int, error) {
	query := `
		UPDATE users
		SET referral_count = referral_count + $1
		WHERE id = $2
		RETURNING referral_count
	`
	var count int
	err := r.db.QueryRow(ctx, query, delta, userID).Scan(&count)
	if err != nil {
		zap.L().Error("can't update referral count", zap.Error(err))
		return 0, err
	}
	return count, nil
}
