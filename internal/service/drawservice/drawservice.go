package drawservice

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"megaraffle/internal/domain"
	"megaraffle/internal/pg"

	"go.uber.org/zap"
)

type DrawRepo interface {
	FindActive(ctx context.Context) (*domain.Draw, error)
	FindByID(ctx context.Context, id int) (*domain.Draw, error)
	Create(ctx context.Context, draw *domain.Draw) (*domain.Draw, error)
	Close(ctx context.Context, id int, endedAt time.Time) (bool, error)
}

type TicketRepo interface {
	FindByDraw(ctx context.Context, drawID int) ([]domain.Ticket, error)
	CountByDraw(ctx context.Context, drawID int) (int, error)
}

type WinnerRepo interface {
	Create(ctx context.Context, winner *domain.Winner) (*domain.Winner, error)
	FindByDraw(ctx context.Context, drawID int) ([]domain.Winner, error)
}

var (
	ErrDrawAlreadyActive        = errors.New("a draw is already active")
	ErrDrawNotFound             = errors.New("draw not found")
	ErrDrawNotActive            = errors.New("draw is not active")
	ErrInvalidWinnerCount       = errors.New("winner count must be at least 1")
	ErrNoTickets                = errors.New("draw has no tickets")
	ErrInsufficientParticipants = errors.New("insufficient distinct participants")
)

type Service struct {
	drawRepo   DrawRepo
	ticketRepo TicketRepo
	winnerRepo WinnerRepo
	txManager  pg.TXManager

	mu  sync.Mutex
	rnd *rand.Rand
}

// New wires the draw service with an injectable randomness source so
// winner selection is reproducible under a fixed seed.
func New(drawRepo DrawRepo, ticketRepo TicketRepo, winnerRepo WinnerRepo, txManager pg.TXManager, src rand.Source) *Service {
	return &Service{
		drawRepo:   drawRepo,
		ticketRepo: ticketRepo,
		winnerRepo: winnerRepo,
		txManager:  txManager,
		rnd:        rand.New(src),
	}
}

func (s *Service) OpenDraw(ctx context.Context, title, prize string) (*domain.Draw, error) {
	if title == "" {
		title = "Manual Draw"
	}
	if prize == "" {
		prize = "Prize"
	}

	draw, err := s.drawRepo.Create(ctx, &domain.Draw{Title: title, Prize: prize})
	if err != nil {
		zap.L().Error("can't open draw", zap.Error(err))
		return nil, err
	}
	if draw == nil {
		return nil, ErrDrawAlreadyActive
	}
	zap.L().Info("draw opened", zap.Int("drawID", draw.ID), zap.String("title", title))
	return draw, nil
}

func (s *Service) CloseDraw(ctx context.Context, drawID int) error {
	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		return err
	}
	if draw == nil {
		return ErrDrawNotFound
	}

	closed, err := s.drawRepo.Close(ctx, drawID, time.Now())
	if err != nil {
		return err
	}
	if !closed {
		return ErrDrawNotActive
	}
	zap.L().Info("draw closed", zap.Int("drawID", drawID))
	return nil
}

func (s *Service) ActiveDraw(ctx context.Context) (*domain.Draw, error) {
	return s.drawRepo.FindActive(ctx)
}

func (s *Service) Winners(ctx context.Context, drawID int) ([]domain.Winner, error) {
	return s.winnerRepo.FindByDraw(ctx, drawID)
}

// TicketsIssued reports how many tickets the draw currently holds.
func (s *Service) TicketsIssued(ctx context.Context, drawID int) (int, error) {
	return s.ticketRepo.CountByDraw(ctx, drawID)
}

// SelectWinners draws `count` distinct winners from a snapshot of the
// draw's tickets taken at call time. Selection is uniform over tickets
// without replacement; a ticket whose owner already won a position is
// discarded, so odds per position stay proportional to tickets held while
// every winner is distinct. Finalizing the selection closes the draw.
//
// When fewer distinct participants exist than requested positions, the
// partial winner list is persisted and returned together with
// ErrInsufficientParticipants.
func (s *Service) SelectWinners(ctx context.Context, drawID, count int) ([]domain.Winner, error) {
	if count < 1 {
		return nil, ErrInvalidWinnerCount
	}

	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		return nil, err
	}
	if draw == nil {
		return nil, ErrDrawNotFound
	}

	var winners []domain.Winner
	var insufficient bool
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		// the snapshot: tickets created after this read never participate
		snapshot, err := s.ticketRepo.FindByDraw(ctx, drawID)
		if err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return ErrNoTickets
		}

		picks := s.pickDistinct(snapshot, count)
		insufficient = len(picks) < count

		for i, ticket := range picks {
			winner, err := s.winnerRepo.Create(ctx, &domain.Winner{
				DrawID:   drawID,
				UserID:   ticket.UserID,
				TicketID: ticket.ID,
				Position: i + 1,
			})
			if err != nil {
				return err
			}
			winners = append(winners, *winner)
		}

		if draw.IsActive {
			if _, err := s.drawRepo.Close(ctx, drawID, time.Now()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("winners selected", zap.Int("drawID", drawID), zap.Int("winners", len(winners)))
	if insufficient {
		return winners, ErrInsufficientParticipants
	}
	return winners, nil
}

// pickDistinct draws tickets uniformly without replacement, skipping
// tickets of users who already hold a position.
func (s *Service) pickDistinct(snapshot []domain.Ticket, count int) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := make([]domain.Ticket, len(snapshot))
	copy(pool, snapshot)

	won := make(map[int]bool, count)
	picks := make([]domain.Ticket, 0, count)

	for len(picks) < count && len(pool) > 0 {
		idx := s.rnd.Intn(len(pool))
		ticket := pool[idx]
		pool[idx] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		if won[ticket.UserID] {
			continue
		}
		won[ticket.UserID] = true
		picks = append(picks, ticket)
	}
	return picks
}
