package repo

import (
	"megaraffle/internal/pg"
	drawrepo "megaraffle/internal/repo/draw-repo"
	operatorrepo "megaraffle/internal/repo/operator-repo"
	paymentrepo "megaraffle/internal/repo/payment-repo"
	referralrepo "megaraffle/internal/repo/referral-repo"
	ticketrepo "megaraffle/internal/repo/ticket-repo"
	userrepo "megaraffle/internal/repo/user-repo"
	winnerrepo "megaraffle/internal/repo/winner-repo"
)

type Repositories struct {
	UserRepo     *userrepo.Repository
	OperatorRepo *operatorrepo.Repository
	PaymentRepo  *paymentrepo.Repository
	TicketRepo   *ticketrepo.Repository
	DrawRepo     *drawrepo.Repository
	ReferralRepo *referralrepo.Repository
	WinnerRepo   *winnerrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		OperatorRepo: operatorrepo.New(conn),
		PaymentRepo:  paymentrepo.New(conn),
		TicketRepo:   ticketrepo.New(conn),
		DrawRepo:     drawrepo.New(conn),
		ReferralRepo: referralrepo.New(conn),
		WinnerRepo:   winnerrepo.New(conn),
	}
}
