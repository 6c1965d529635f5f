package domain

import "time"

const (
	// TicketOriginPurchase ticket bought through a confirmed payment.
	TicketOriginPurchase string = "purchase"
	// TicketOriginReferralBonus ticket earned through accumulated referrals.
	TicketOriginReferralBonus string = "referral-bonus"
)

type User struct {
	ID             int       `db:"id"`
	ExternalHandle string    `db:"external_handle"`
	Username       string    `db:"username"`
	ReferralCount  int       `db:"referral_count"`
	CreatedAt      time.Time `db:"created_at"`
}

type Operator struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Payment is append-only: inserted once per (provider, provider_ref),
// never updated except for late user attribution.
type Payment struct {
	ID             int       `db:"id"`
	Provider       string    `db:"provider"`
	ProviderRef    string    `db:"provider_ref"`
	Amount         int64     `db:"amount"`
	Currency       string    `db:"currency"`
	Status         string    `db:"status"`
	Raw            string    `db:"raw"`
	ExternalHandle string    `db:"external_handle"`
	UserID         *int      `db:"user_id"`
	CreatedAt      time.Time `db:"created_at"`
}

type Ticket struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	DrawID    int       `db:"draw_id"`
	Origin    string    `db:"origin"`
	PaymentID *int      `db:"payment_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Draw struct {
	ID        int        `db:"id"`
	Title     string     `db:"title"`
	Prize     string     `db:"prize"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	EndedAt   *time.Time `db:"ended_at"`
}

type Referral struct {
	ID         int       `db:"id"`
	ReferrerID int       `db:"referrer_id"`
	RefereeID  int       `db:"referee_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type Winner struct {
	ID        int       `db:"id"`
	DrawID    int       `db:"draw_id"`
	UserID    int       `db:"user_id"`
	TicketID  int       `db:"ticket_id"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}
