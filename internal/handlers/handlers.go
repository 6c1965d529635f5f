package handlers

import (
	"net/http"

	authhandlers "megaraffle/internal/handlers/auth"
	drawshandlers "megaraffle/internal/handlers/draws"
	paymentshandlers "megaraffle/internal/handlers/payments"
	referralshandlers "megaraffle/internal/handlers/referrals"
	webhookhandlers "megaraffle/internal/handlers/webhook"
	"megaraffle/internal/service"
	"megaraffle/pkg/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Paystack(w http.ResponseWriter, r *http.Request)
	Flutterwave(w http.ResponseWriter, r *http.Request)
}

type DrawHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
	SelectWinners(w http.ResponseWriter, r *http.Request)
	Winners(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Pending(w http.ResponseWriter, r *http.Request)
	Attribute(w http.ResponseWriter, r *http.Request)
	Lookup(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	WebhookHandler  WebhookHandler
	DrawHandler     DrawHandler
	ReferralHandler ReferralHandler
	PaymentHandler  PaymentHandler
}

func New(s *service.Services, webhookSecret, currency string) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		WebhookHandler:  webhookhandlers.New(s.ReconciliationService, webhookSecret, currency),
		DrawHandler:     drawshandlers.New(s.DrawService),
		ReferralHandler: referralshandlers.New(s.ReferralService),
		PaymentHandler:  paymentshandlers.New(s.ReconciliationService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/paystack", h.WebhookHandler.Paystack)
		r.Post("/flutterwave", h.WebhookHandler.Flutterwave)
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/operator/register", h.AuthHandler.Register)
		r.Post("/operator/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/draws", func(r chi.Router) {
				r.Post("/", h.DrawHandler.Open)
				r.Get("/active", h.DrawHandler.Active)
				r.Post("/{id}/close", h.DrawHandler.Close)
				r.Post("/{id}/winners", h.DrawHandler.SelectWinners)
				r.Get("/{id}/winners", h.DrawHandler.Winners)
			})
			r.Post("/referrals", h.ReferralHandler.Record)
			r.Route("/payments", func(r chi.Router) {
				r.Get("/unattributed", h.PaymentHandler.Pending)
				r.Get("/status", h.PaymentHandler.Lookup)
				r.Post("/{id}/attribute", h.PaymentHandler.Attribute)
			})
		})
	})

	return r
}
