package operatorrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"megaraffle/internal/domain"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	repo := New(mockDB)
	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	tests := []struct {
		name        string
		login       string
		prepareMock func(mockDB pgxmock.PgxPoolIface)
		want        *domain.Operator
		wantErr     bool
	}{
		{
			name:  "Operator exists",
			login: "admin",
			prepareMock: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT id, login, password_hash FROM operators").
					WithArgs("admin").
					WillReturnRows(pgxmock.NewRows([]string{"id", "login", "password_hash"}).
						AddRow(1, "admin", "hashedpassword"))
			},
			want: &domain.Operator{ID: 1, Login: "admin", PasswordHash: "hashedpassword"},
		},
		{
			name:  "Operator not found",
			login: "ghost",
			prepareMock: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT id, login, password_hash FROM operators").
					WithArgs("ghost").
					WillReturnError(pgx.ErrNoRows)
			},
			want: nil,
		},
		{
			name:  "Database error",
			login: "admin",
			prepareMock: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT id, login, password_hash FROM operators").
					WithArgs("admin").
					WillReturnError(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := NewMock(t)
			tt.prepareMock(mockDB)

			got, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		operator    *domain.Operator
		prepareMock func(mockDB pgxmock.PgxPoolIface)
		wantID      int
		wantErr     bool
	}{
		{
			name:     "Operator created",
			operator: &domain.Operator{Login: "admin", PasswordHash: "hashedpassword"},
			prepareMock: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO operators")).
					WithArgs("admin", "hashedpassword").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(5))
			},
			wantID: 5,
		},
		{
			name:     "Database error",
			operator: &domain.Operator{Login: "admin", PasswordHash: "hashedpassword"},
			prepareMock: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO operators")).
					WithArgs("admin", "hashedpassword").
					WillReturnError(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := NewMock(t)
			tt.prepareMock(mockDB)

			got, err := repo.Create(context.Background(), tt.operator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}
