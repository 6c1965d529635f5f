package reattribution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"megaraffle/internal/config"
	"megaraffle/internal/domain"
	"megaraffle/internal/service/reconciliationservice"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var pendingInFlight sync.Map

type Reconciler interface {
	PendingPayments(ctx context.Context, limit uint32) ([]domain.Payment, error)
	AttributePending(ctx context.Context, paymentID int, handle string) (*reconciliationservice.AttributionResult, error)
}

// Service periodically re-examines payments recorded without an owner.
// A payment carrying a handle is one an operator attributed while no
// draw accepted tickets; the sweep finishes those as soon as a draw
// opens. Handleless payments stay pending for the operator.
type Service struct {
	reconciler    Reconciler
	limit         uint32
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(cfg *config.Config, reconciler Reconciler) *Service {
	return &Service{
		reconciler:    reconciler,
		limit:         1000,
		workerPool:    NewWorkerPool(10),
		sweepInterval: time.Duration(cfg.SweepIntervalSec) * time.Second,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Re-attribution service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping re-attribution service")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	payments, err := s.reconciler.PendingPayments(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch pending payments", zap.Error(err))
		return
	}

	var handleless int
	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if payment.ExternalHandle == "" {
			handleless++
			continue
		}
		if _, loaded := pendingInFlight.LoadOrStore(payment.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer pendingInFlight.Delete(payment.ID)
				return s.handlePayment(ctx, payment)
			})
			if err != nil {
				pendingInFlight.Delete(payment.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing pending payments", zap.Error(err))
	}
	if handleless > 0 {
		zap.L().Info("Payments awaiting manual attribution", zap.Int("count", handleless))
	}
}

func (s *Service) handlePayment(ctx context.Context, payment domain.Payment) error {
	result, err := s.reconciler.AttributePending(ctx, payment.ID, payment.ExternalHandle)
	if err != nil {
		switch {
		case errors.Is(err, reconciliationservice.ErrAlreadyAttributed):
			return nil
		case errors.Is(err, reconciliationservice.ErrNoActiveDraw):
			// next sweep retries once a draw is accepting tickets
			return nil
		default:
			return fmt.Errorf("failed to re-attribute payment %d: %w", payment.ID, err)
		}
	}

	zap.L().Info("Pending payment attributed",
		zap.Int("paymentID", payment.ID),
		zap.String("reference", payment.ProviderRef),
		zap.Int("tickets", result.TicketCount),
	)
	return nil
}
