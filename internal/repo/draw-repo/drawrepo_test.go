package drawrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"megaraffle/internal/domain"

	"github.com/jackc/pgx/v5"
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

func TestRepository_FindActive(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Active draw exists", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "title", "prize", "is_active", "created_at", "ended_at"}).
			AddRow(3, "Weekly Draw", "iPhone", true, now, nil)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE is_active")).WillReturnRows(rows)

		draw, err := repo.FindActive(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, draw)
		assert.True(t, draw.IsActive)
		assert.Nil(t, draw.EndedAt)
	})

	t.Run("No active draw", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE is_active")).WillReturnError(pgx.ErrNoRows)

		draw, err := repo.FindActive(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, draw)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectNil bool
		expectErr bool
	}{
		{
			name: "Draw opened",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(3, now)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO draws")).
					WithArgs("Weekly Draw", "iPhone").
					WillReturnRows(rows)
			},
		},
		{
			name: "Another draw already active",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO draws")).
					WithArgs("Weekly Draw", "iPhone").
					WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO draws")).
					WithArgs("Weekly Draw", "iPhone").
					WillReturnError(errors.New("database error"))
			},
			expectNil: true,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			draw, err := repo.Create(context.Background(), &domain.Draw{Title: "Weekly Draw", Prize: "iPhone"})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, draw)
			} else if !tt.expectErr {
				assert.Equal(t, 3, draw.ID)
				assert.True(t, draw.IsActive)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Close(t *testing.T) {
	repo, mock := NewMock(t)
	endedAt := time.Now()

	t.Run("Active draw closed", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE draws")).
			WithArgs(3, endedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		closed, err := repo.Close(context.Background(), 3, endedAt)
		assert.NoError(t, err)
		assert.True(t, closed)
	})

	t.Run("Draw already closed", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE draws")).
			WithArgs(3, endedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		closed, err := repo.Close(context.Background(), 3, endedAt)
		assert.NoError(t, err)
		assert.False(t, closed)
	})
}
