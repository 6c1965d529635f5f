package winnerrepo

import (
	"context"

	"megaraffle/internal/domain"
	"megaraffle/internal/pg"

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

func (r *Repository) Create(ctx context.Context, winner *domain.Winner) (*domain.Winner, error) {
	query := `
		INSERT INTO winners (draw_id, user_id, ticket_id, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, winner.DrawID, winner.UserID, winner.TicketID, winner.Position).
		Scan(&winner.ID, &winner.CreatedAt)
	if err != nil {
		zap.L().Error("can't save winner", zap.Error(err))
		return nil, err
	}
	return winner, nil
}

func (r *Repository) FindByDraw(ctx context.Context, drawID int) ([]domain.Winner, error) {
	query := `
		SELECT id, draw_id, user_id, ticket_id, position, created_at
		FROM winners
		WHERE draw_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, drawID)
	if err != nil {
		zap.L().Error("can't get winners", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var winners []domain.Winner
	for rows.Next() {
		var winner domain.Winner
		err := rows.Scan(&winner.ID, &winner.DrawID, &winner.UserID, &winner.TicketID, &winner.Position, &winner.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan winner row", zap.Error(err))
			return nil, err
		}
		winners = append(winners, winner)
	}
	return winners, nil
}
