package reconciliationservice

import (
	"context"
	"errors"

	"megaraffle/internal/domain"
	"megaraffle/internal/pg"

	"go.uber.org/zap"
)

type PaymentRepo interface {
	Insert(ctx context.Context, payment *domain.Payment) (bool, error)
	FindByID(ctx context.Context, id int) (*domain.Payment, error)
	FindByReference(ctx context.Context, provider, providerRef string) (*domain.Payment, error)
	FindUnattributed(ctx context.Context, limit uint32) ([]domain.Payment, error)
	Attribute(ctx context.Context, paymentID, userID int) (bool, error)
	SetHandle(ctx context.Context, paymentID int, handle string) (bool, error)
}

type TicketRepo interface {
	CreateBatch(ctx context.Context, tickets []domain.Ticket) error
}

type DrawRepo interface {
	FindActive(ctx context.Context) (*domain.Draw, error)
}

type Identity interface {
	ResolveOrCreate(ctx context.Context, handle, username string) (*domain.User, error)
}

// Status is the terminal, queryable outcome of one reconciliation call.
// Every recorded payment ends in exactly one of these.
type Status string

const (
	// StatusIssued tickets were created for the payment.
	StatusIssued Status = "issued"
	// StatusAlreadyProcessed the reference was reconciled before; no-op.
	StatusAlreadyProcessed Status = "already_processed"
	// StatusUnattributed payment recorded, no resolvable user; pending
	// out-of-band attribution.
	StatusUnattributed Status = "unattributed"
	// StatusNoTicketsIssued payment recorded, amount below ticket price.
	StatusNoTicketsIssued Status = "no_tickets_issued"
	// StatusNoActiveDraw payment recorded, issuance rejected: no draw is
	// accepting tickets. Terminal, not retryable.
	StatusNoActiveDraw Status = "no_active_draw"
)

// VerifiedPaymentEvent is a payment notification that already passed
// signature verification. Amount is in whole currency units.
type VerifiedPaymentEvent struct {
	Provider  string
	Reference string
	Amount    int64
	Currency  string
	Raw       string
	Handle    string
	Username  string
}

type Result struct {
	Status      Status
	TicketCount int
	Payment     *domain.Payment
}

type AttributionResult struct {
	Status      Status
	TicketCount int
}

var (
	ErrEmptyReference    = errors.New("provider reference is required")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrAlreadyAttributed = errors.New("payment already attributed")
	ErrNoActiveDraw      = errors.New("no active draw")
)

type Service struct {
	paymentRepo PaymentRepo
	ticketRepo  TicketRepo
	drawRepo    DrawRepo
	identity    Identity
	txManager   pg.TXManager
	ticketPrice int64
}

func New(paymentRepo PaymentRepo, ticketRepo TicketRepo, drawRepo DrawRepo, identity Identity, txManager pg.TXManager, ticketPrice int64) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		drawRepo:    drawRepo,
		identity:    identity,
		txManager:   txManager,
		ticketPrice: ticketPrice,
	}
}

// Reconcile converts a verified payment event into ledger state exactly
// once. The whole read-decide-write sequence runs in one transaction; the
// (provider, provider_ref) unique constraint arbitrates concurrent
// duplicate deliveries, so no interleaving yields two payment rows or two
// ticket batches for one reference.
func (s *Service) Reconcile(ctx context.Context, event VerifiedPaymentEvent) (*Result, error) {
	if event.Reference == "" {
		return nil, ErrEmptyReference
	}

	var result Result
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var user *domain.User
		if event.Handle != "" {
			var err error
			user, err = s.identity.ResolveOrCreate(ctx, event.Handle, event.Username)
			if err != nil {
				return err
			}
		}

		payment := &domain.Payment{
			Provider:       event.Provider,
			ProviderRef:    event.Reference,
			Amount:         event.Amount,
			Currency:       event.Currency,
			Status:         "success",
			Raw:            event.Raw,
			ExternalHandle: event.Handle,
		}
		if user != nil {
			payment.UserID = &user.ID
		}

		inserted, err := s.paymentRepo.Insert(ctx, payment)
		if err != nil {
			return err
		}
		if !inserted {
			zap.L().Info("payment already processed",
				zap.String("provider", event.Provider), zap.String("reference", event.Reference))
			result = Result{Status: StatusAlreadyProcessed}
			return nil
		}
		result.Payment = payment

		if user == nil {
			zap.L().Warn("payment has no resolvable user, recorded as pending",
				zap.String("reference", event.Reference))
			result.Status = StatusUnattributed
			return nil
		}

		// Entitlement is computed exactly once, here, at first record.
		ticketCount := int(event.Amount / s.ticketPrice)
		if ticketCount == 0 {
			zap.L().Info("payment below ticket price, no tickets issued",
				zap.String("reference", event.Reference), zap.Int64("amount", event.Amount))
			result.Status = StatusNoTicketsIssued
			return nil
		}

		draw, err := s.drawRepo.FindActive(ctx)
		if err != nil {
			return err
		}
		if draw == nil {
			zap.L().Warn("no active draw, payment recorded without tickets",
				zap.String("reference", event.Reference))
			result.Status = StatusNoActiveDraw
			return nil
		}

		if err := s.issueTickets(ctx, user.ID, draw.ID, payment.ID, ticketCount); err != nil {
			return err
		}

		result.Status = StatusIssued
		result.TicketCount = ticketCount
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AttributePending binds an unattributed payment to a user and issues the
// entitled ticket batch, atomically. Used by the operator API and the
// re-attribution worker. User binding only commits together with its
// ticket issuance; when no draw is accepting tickets the supplied handle
// is persisted on the still-pending row instead, so the next sweep
// finishes the job once a draw opens.
func (s *Service) AttributePending(ctx context.Context, paymentID int, handle string) (*AttributionResult, error) {
	var result AttributionResult
	var deferred bool
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.identity.ResolveOrCreate(ctx, handle, "")
		if err != nil {
			return err
		}

		payment, err := s.paymentRepo.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrPaymentNotFound
		}
		if payment.UserID != nil {
			return ErrAlreadyAttributed
		}

		ticketCount := int(payment.Amount / s.ticketPrice)
		var draw *domain.Draw
		if ticketCount > 0 {
			draw, err = s.drawRepo.FindActive(ctx)
			if err != nil {
				return err
			}
			if draw == nil {
				if _, err := s.paymentRepo.SetHandle(ctx, paymentID, handle); err != nil {
					return err
				}
				zap.L().Warn("no active draw, handle recorded on pending payment",
					zap.Int("paymentID", paymentID), zap.String("handle", handle))
				deferred = true
				return nil
			}
		}

		attributed, err := s.paymentRepo.Attribute(ctx, paymentID, user.ID)
		if err != nil {
			return err
		}
		if !attributed {
			return ErrAlreadyAttributed
		}

		if ticketCount == 0 {
			result = AttributionResult{Status: StatusNoTicketsIssued}
			return nil
		}

		if err := s.issueTickets(ctx, user.ID, draw.ID, payment.ID, ticketCount); err != nil {
			return err
		}

		result = AttributionResult{Status: StatusIssued, TicketCount: ticketCount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if deferred {
		return nil, ErrNoActiveDraw
	}
	return &result, nil
}

// PaymentByReference is the operator lookup for a recorded delivery.
func (s *Service) PaymentByReference(ctx context.Context, provider, reference string) (*domain.Payment, error) {
	if reference == "" {
		return nil, ErrEmptyReference
	}
	payment, err := s.paymentRepo.FindByReference(ctx, provider, reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *Service) PendingPayments(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindUnattributed(ctx, limit)
	if err != nil {
		zap.L().Error("failed to get pending payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) issueTickets(ctx context.Context, userID, drawID, paymentID, count int) error {
	tickets := make([]domain.Ticket, 0, count)
	for i := 0; i < count; i++ {
		tickets = append(tickets, domain.Ticket{
			UserID:    userID,
			DrawID:    drawID,
			Origin:    domain.TicketOriginPurchase,
			PaymentID: &paymentID,
		})
	}
	return s.ticketRepo.CreateBatch(ctx, tickets)
}
