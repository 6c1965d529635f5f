package referralservice

import (
	"context"
	"errors"

	"megaraffle/internal/domain"
	"megaraffle/internal/pg"
	"megaraffle/pkg/clients"

	"go.uber.org/zap"
)

type ReferralRepo interface {
	Insert(ctx context.Context, referral *domain.Referral) (bool, error)
	AddToCount(ctx context.Context, userID, delta int) (int, error)
}

type TicketRepo interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
}

type DrawRepo interface {
	FindActive(ctx context.Context) (*domain.Draw, error)
}

type Identity interface {
	ResolveOrCreate(ctx context.Context, handle, username string) (*domain.User, error)
}

// Notifier receives the bonus-ticket trigger after the issuing
// transaction commits. Message delivery is not this service's concern.
type Notifier interface {
	NotifyBonusTicket(notification clients.BonusNotification)
}

var (
	ErrSelfReferral      = errors.New("self referral rejected")
	ErrDuplicateReferral = errors.New("referral already credited")
)

type Result struct {
	BonusIssued   int
	ReferralCount int
}

type Service struct {
	referralRepo ReferralRepo
	ticketRepo   TicketRepo
	drawRepo     DrawRepo
	identity     Identity
	txManager    pg.TXManager
	notifier     Notifier
	threshold    int
}

func New(referralRepo ReferralRepo, ticketRepo TicketRepo, drawRepo DrawRepo, identity Identity, txManager pg.TXManager, notifier Notifier, threshold int) *Service {
	return &Service{
		referralRepo: referralRepo,
		ticketRepo:   ticketRepo,
		drawRepo:     drawRepo,
		identity:     identity,
		txManager:    txManager,
		notifier:     notifier,
		threshold:    threshold,
	}
}

// RecordReferral credits one referral and folds every `threshold`
// accumulated referrals into one bonus ticket. The counter is decremented
// by the threshold per bonus, never zeroed, so carry-over referrals stay
// credited. The loop is general even though +1 per event crosses at most
// one threshold.
func (s *Service) RecordReferral(ctx context.Context, referrerHandle, refereeHandle string) (*Result, error) {
	if referrerHandle == refereeHandle {
		zap.L().Info("self referral rejected", zap.String("handle", referrerHandle))
		return nil, ErrSelfReferral
	}

	var result Result
	var notifications []clients.BonusNotification
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		referrer, err := s.identity.ResolveOrCreate(ctx, referrerHandle, "")
		if err != nil {
			return err
		}
		referee, err := s.identity.ResolveOrCreate(ctx, refereeHandle, "")
		if err != nil {
			return err
		}
		if referrer.ID == referee.ID {
			return ErrSelfReferral
		}

		inserted, err := s.referralRepo.Insert(ctx, &domain.Referral{
			ReferrerID: referrer.ID,
			RefereeID:  referee.ID,
		})
		if err != nil {
			return err
		}
		if !inserted {
			zap.L().Info("duplicate referral rejected",
				zap.String("referrer", referrerHandle), zap.String("referee", refereeHandle))
			return ErrDuplicateReferral
		}

		count, err := s.referralRepo.AddToCount(ctx, referrer.ID, 1)
		if err != nil {
			return err
		}

		for count >= s.threshold {
			draw, err := s.drawRepo.FindActive(ctx)
			if err != nil {
				return err
			}
			if draw == nil {
				// conversion deferred: the counter keeps accumulating
				// until a draw is accepting tickets again
				zap.L().Warn("no active draw, bonus conversion deferred",
					zap.String("referrer", referrerHandle), zap.Int("count", count))
				break
			}

			ticket, err := s.ticketRepo.Create(ctx, &domain.Ticket{
				UserID: referrer.ID,
				DrawID: draw.ID,
				Origin: domain.TicketOriginReferralBonus,
			})
			if err != nil {
				return err
			}

			count, err = s.referralRepo.AddToCount(ctx, referrer.ID, -s.threshold)
			if err != nil {
				return err
			}

			result.BonusIssued++
			notifications = append(notifications, clients.BonusNotification{
				UserID:         referrer.ID,
				ExternalHandle: referrer.ExternalHandle,
				TicketID:       ticket.ID,
				DrawID:         draw.ID,
			})
		}

		result.ReferralCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	// fire triggers only after the issuing transaction committed
	for _, n := range notifications {
		s.notifier.NotifyBonusTicket(n)
	}

	if result.BonusIssued > 0 {
		zap.L().Info("referral bonus issued",
			zap.String("referrer", referrerHandle), zap.Int("bonus", result.BonusIssued))
	}
	return &result, nil
}
