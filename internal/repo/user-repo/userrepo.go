package userrepo

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

func (repo *Repository) FindByHandle(ctx context.Context, handle string) (*domain.User, error) {
	query := `
		SELECT id, external_handle, username, referral_count, created_at
		FROM users
		WHERE external_handle = $1
	`
	var user domain.User
	err := repo.db.QueryRow(ctx, query, handle).
		Scan(&user.ID, &user.ExternalHandle, &user.Username, &user.ReferralCount, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Create inserts a user row for a first-seen handle. A concurrent insert
// of the same handle loses the conflict and returns (nil, nil); the
// caller re-reads the surviving row.
func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (external_handle, username)
		VALUES ($1, $2)
		ON CONFLICT (external_handle) DO NOTHING
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.ExternalHandle, user.Username).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}
