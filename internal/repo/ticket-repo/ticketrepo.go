package ticketrepo

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

// CreateBatch inserts every ticket of one issuance. Callers run it inside
// the transaction that records the owning payment or referral bonus, so a
// ticket is never observable before its cause commits.
func (r *Repository) CreateBatch(ctx context.Context, tickets []domain.Ticket) error {
	query := `
		INSERT INTO tickets (user_id, draw_id, origin, payment_id)
		VALUES ($1, $2, $3, $4)
	`
	for _, ticket := range tickets {
		_, err := r.db.Exec(ctx, query, ticket.UserID, ticket.DrawID, ticket.Origin, ticket.PaymentID)
		if err != nil {
			zap.L().Error("can't save ticket", zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	query := `
		INSERT INTO tickets (user_id, draw_id, origin, payment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, ticket.UserID, ticket.DrawID, ticket.Origin, ticket.PaymentID).
		Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		zap.L().Error("can't save ticket", zap.Error(err))
		return nil, err
	}
	return ticket, nil
}

// FindByDraw returns the draw's tickets as of call time. Winner selection
// treats the returned slice as its immutable snapshot.
func (r *Repository) FindByDraw(ctx context.Context, drawID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, user_id, draw_id, origin, payment_id, created_at
		FROM tickets
		WHERE draw_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, drawID)
	if err != nil {
		zap.L().Error("can't get tickets", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		err := rows.Scan(&ticket.ID, &ticket.UserID, &ticket.DrawID, &ticket.Origin, &ticket.PaymentID, &ticket.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan ticket row", zap.Error(err))
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (r *Repository) CountByDraw(ctx context.Context, drawID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE draw_id = $1
	`
	var count int
	err := r.db.QueryRow(ctx, query, drawID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count tickets", zap.Error(err))
		return 0, err
	}
	return count, nil
}
