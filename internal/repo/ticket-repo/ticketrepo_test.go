package ticketrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"megaraffle/internal/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func TestRepository_CreateBatch(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := 11

	tickets := []domain.Ticket{
		{UserID: 7, DrawID: 3, Origin: domain.TicketOriginPurchase, PaymentID: &paymentID},
		{UserID: 7, DrawID: 3, Origin: domain.TicketOriginPurchase, PaymentID: &paymentID},
	}

	t.Run("Every ticket of the batch inserted", func(t *testing.T) {
		for range tickets {
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
				WithArgs(7, 3, domain.TicketOriginPurchase, &paymentID).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}

		err := repo.CreateBatch(context.Background(), tickets)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure stops the batch", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
			WithArgs(7, 3, domain.TicketOriginPurchase, &paymentID).
			WillReturnError(errors.New("database error"))

		err := repo.CreateBatch(context.Background(), tickets)
		assert.Error(t, err)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(99, now)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs(7, 3, domain.TicketOriginReferralBonus, (*int)(nil)).
		WillReturnRows(rows)

	ticket, err := repo.Create(context.Background(), &domain.Ticket{
		UserID: 7,
		DrawID: 3,
		Origin: domain.TicketOriginReferralBonus,
	})
	assert.NoError(t, err)
	assert.Equal(t, 99, ticket.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByDraw(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	paymentID := 11

	t.Run("Snapshot in insertion order", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "draw_id", "origin", "payment_id", "created_at"}).
			AddRow(1, 7, 3, domain.TicketOriginPurchase, &paymentID, now).
			AddRow(2, 8, 3, domain.TicketOriginReferralBonus, nil, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tickets")).
			WithArgs(3).
			WillReturnRows(rows)

		tickets, err := repo.FindByDraw(context.Background(), 3)
		assert.NoError(t, err)
		assert.Len(t, tickets, 2)
		assert.Equal(t, 1, tickets[0].ID)
		assert.Nil(t, tickets[1].PaymentID)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM tickets")).
			WithArgs(3).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindByDraw(context.Background(), 3)
		assert.Error(t, err)
	})
}

func TestRepository_CountByDraw(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"count"}).AddRow(6)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(3).
		WillReturnRows(rows)

	count, err := repo.CountByDraw(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 6, count)
}
