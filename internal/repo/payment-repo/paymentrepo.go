package paymentrepo

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

// Insert records a payment keyed by (provider, provider_ref). The unique
// constraint is the idempotency boundary: a replayed delivery loses the
// conflict and Insert reports inserted == false with no side effects.
func (r *Repository) Insert(ctx context.Context, payment *domain.Payment) (bool, error) {
	query := `
		INSERT INTO payments (provider, provider_ref, amount, currency, status, raw, external_handle, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (provider, provider_ref) DO NOTHING
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		payment.Provider, payment.ProviderRef, payment.Amount, payment.Currency,
		payment.Status, payment.Raw, payment.ExternalHandle, payment.UserID).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		zap.L().Error("can't save payment", zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Payment, error) {
	query := `
		SELECT id, provider, provider_ref, amount, currency, status, raw, external_handle, user_id, created_at
		FROM payments
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.Provider, &payment.ProviderRef, &payment.Amount,
		&payment.Currency, &payment.Status, &payment.Raw, &payment.ExternalHandle,
		&payment.UserID, &payment.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find payment by id", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) FindByReference(ctx context.Context, provider, providerRef string) (*domain.Payment, error) {
	query := `
		SELECT id, provider, provider_ref, amount, currency, status, raw, external_handle, user_id, created_at
		FROM payments
		WHERE provider = $1 AND provider_ref = $2
	`
	row := r.db.QueryRow(ctx, query, provider, providerRef)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.Provider, &payment.ProviderRef, &payment.Amount,
		&payment.Currency, &payment.Status, &payment.Raw, &payment.ExternalHandle,
		&payment.UserID, &payment.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) FindUnattributed(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	query := `
		SELECT id, provider, provider_ref, amount, currency, status, raw, external_handle, user_id, created_at
		FROM payments
		WHERE user_id IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get unattributed payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err := rows.Scan(&payment.ID, &payment.Provider, &payment.ProviderRef, &payment.Amount,
			&payment.Currency, &payment.Status, &payment.Raw, &payment.ExternalHandle,
			&payment.UserID, &payment.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// SetHandle records a handle on a still-pending payment so the
// re-attribution sweep can pick it up once a draw is accepting tickets.
func (r *Repository) SetHandle(ctx context.Context, paymentID int, handle string) (bool, error) {
	query := `
		UPDATE payments
		SET external_handle = $1
		WHERE id = $2 AND user_id IS NULL
	`
	tag, err := r.db.Exec(ctx, query, handle, paymentID)
	if err != nil {
		zap.L().Error("can't set payment handle", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Attribute binds a pending payment to a user. The user_id IS NULL guard
// keeps a concurrent sweep from attributing the same payment twice.
func (r *Repository) Attribute(ctx context.Context, paymentID, userID int) (bool, error) {
	query := `
		UPDATE payments
		SET user_id = $1
		WHERE id = $2 AND user_id IS NULL
	`
	tag, err := r.db.Exec(ctx, query, userID, paymentID)
	if err != nil {
		zap.L().Error("can't attribute payment", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
