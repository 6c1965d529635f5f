package referralrepo

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

func TestRepository_Insert(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name             string
		mockSetup        func()
		expectedInserted bool
		expectErr        bool
	}{
		{
			name: "New referral pair",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(5, now)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO referrals")).
					WithArgs(7, 8).
					WillReturnRows(rows)
			},
			expectedInserted: true,
		},
		{
			name: "Duplicate pair loses the conflict",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO referrals")).
					WithArgs(7, 8).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedInserted: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO referrals")).
					WithArgs(7, 8).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			inserted, err := repo.Insert(context.Background(), &domain.Referral{ReferrerID: 7, RefereeID: 8})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedInserted, inserted)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_AddToCount(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Increment returns new value", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"referral_count"}).AddRow(5)
		mock.ExpectQuery(regexp.QuoteMeta("SET referral_count = referral_count + $1")).
			WithArgs(1, 7).
			WillReturnRows(rows)

		count, err := repo.AddToCount(context.Background(), 7, 1)
		assert.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("Negative delta folds a bonus out", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"referral_count"}).AddRow(0)
		mock.ExpectQuery(regexp.QuoteMeta("SET referral_count = referral_count + $1")).
			WithArgs(-5, 7).
			WillReturnRows(rows)

		count, err := repo.AddToCount(context.Background(), 7, -5)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET referral_count = referral_count + $1")).
			WithArgs(1, 7).
			WillReturnError(errors.New("database error"))

		_, err := repo.AddToCount(context.Background(), 7, 1)
		assert.Error(t, err)
	})
}
