package drawrepo

import (
	"context"
	"time"

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

func (r *Repository) FindActive(ctx context.Context) (*domain.Draw, error) {
	query := `
		SELECT id, title, prize, is_active, created_at, ended_at
		FROM draws
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, query)

	var draw domain.Draw
	err := row.Scan(&draw.ID, &draw.Title, &draw.Prize, &draw.IsActive, &draw.CreatedAt, &draw.EndedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find active draw", zap.Error(err))
		return nil, err
	}
	return &draw, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Draw, error) {
	query := `
		SELECT id, title, prize, is_active, created_at, ended_at
		FROM draws
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)

	var draw domain.Draw
	err := row.Scan(&draw.ID, &draw.Title, &draw.Prize, &draw.IsActive, &draw.CreatedAt, &draw.EndedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find draw", zap.Error(err))
		return nil, err
	}
	return &draw, nil
}

// Create opens a draw. The partial unique index on is_active makes a
// second concurrent open lose the conflict and return (nil, nil).
func (r *Repository) Create(ctx context.Context, draw *domain.Draw) (*domain.Draw, error) {
	query := `
		INSERT INTO draws (title, prize, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (is_active) WHERE is_active DO NOTHING
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, draw.Title, draw.Prize).Scan(&draw.ID, &draw.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't save draw", zap.Error(err))
		return nil, err
	}
	draw.IsActive = true
	return draw, nil
}

func (r *Repository) Close(ctx context.Context, id int, endedAt time.Time) (bool, error) {
	query := `
		UPDATE draws
		SET is_active = FALSE, ended_at = $2
		WHERE id = $1 AND is_active
	`
	tag, err := r.db.Exec(ctx, query, id, endedAt)
	if err != nil {
		zap.L().Error("can't close draw", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
