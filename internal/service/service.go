package service

import (
	"math/rand"
	"time"

	"megaraffle/internal/config"
	"megaraffle/internal/pg"
	"megaraffle/internal/repo"
	"megaraffle/internal/service/authservice"
	"megaraffle/internal/service/drawservice"
	"megaraffle/internal/service/identityservice"
	"megaraffle/internal/service/reconciliationservice"
	"megaraffle/internal/service/referralservice"

	pkgauth "megaraffle/pkg/auth"
)

type Services struct {
	AuthService           *authservice.Service
	IdentityService       *identityservice.Service
	ReconciliationService *reconciliationservice.Service
	ReferralService       *referralservice.Service
	DrawService           *drawservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, cfg *config.Config, notifier referralservice.Notifier) *Services {
	identityService := identityservice.New(repo.UserRepo)
	reconciliationService := reconciliationservice.New(
		repo.PaymentRepo, repo.TicketRepo, repo.DrawRepo, identityService, txManager, cfg.TicketPrice)
	referralService := referralservice.New(
		repo.ReferralRepo, repo.TicketRepo, repo.DrawRepo, identityService, txManager, notifier, cfg.ReferralThreshold)
	drawService := drawservice.New(
		repo.DrawRepo, repo.TicketRepo, repo.WinnerRepo, txManager, rand.NewSource(time.Now().UnixNano()))
	authService := authservice.New(repo.OperatorRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:           authService,
		IdentityService:       identityService,
		ReconciliationService: reconciliationService,
		ReferralService:       referralService,
		DrawService:           drawService,
	}
}
