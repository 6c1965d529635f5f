package drawservice

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"megaraffle/internal/domain"
	"megaraffle/internal/pg"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T, seed int64) (*Service, *MockDrawRepo, *MockTicketRepo, *MockWinnerRepo) {
	ctrl := gomock.NewController(t)
	drawRepo := NewMockDrawRepo(ctrl)
	ticketRepo := NewMockTicketRepo(ctrl)
	winnerRepo := NewMockWinnerRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()

	service := New(drawRepo, ticketRepo, winnerRepo, txManager, rand.NewSource(seed))
	defer ctrl.Finish()
	return service, drawRepo, ticketRepo, winnerRepo
}

func TestOpenDraw(t *testing.T) {
	service, drawRepo, _, _ := NewMock(t, 1)

	tests := []struct {
		name          string
		title         string
		prize         string
		prepareMock   func()
		expectedError error
	}{
		{
			name:  "Draw opened",
			title: "Weekly Draw",
			prize: "iPhone",
			prepareMock: func() {
				drawRepo.EXPECT().Create(gomock.Any(), &domain.Draw{Title: "Weekly Draw", Prize: "iPhone"}).
					DoAndReturn(func(ctx context.Context, draw *domain.Draw) (*domain.Draw, error) {
						draw.ID = 3
						draw.IsActive = true
						return draw, nil
					})
			},
		},
		{
			name: "Empty fields get defaults",
			prepareMock: func() {
				drawRepo.EXPECT().Create(gomock.Any(), &domain.Draw{Title: "Manual Draw", Prize: "Prize"}).
					DoAndReturn(func(ctx context.Context, draw *domain.Draw) (*domain.Draw, error) {
						draw.ID = 4
						return draw, nil
					})
			},
		},
		{
			name:  "Another draw already active",
			title: "Weekly Draw",
			prize: "iPhone",
			prepareMock: func() {
				drawRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrDrawAlreadyActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			draw, err := service.OpenDraw(context.Background(), tt.title, tt.prize)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, draw)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, draw)
			}
		})
	}
}

func TestCloseDraw(t *testing.T) {
	service, drawRepo, _, _ := NewMock(t, 1)

	tests := []struct {
		name          string
		drawID        int
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Draw closed",
			drawID: 3,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Draw{ID: 3, IsActive: true}, nil)
				drawRepo.EXPECT().Close(gomock.Any(), 3, gomock.Any()).Return(true, nil)
			},
		},
		{
			name:   "Unknown draw",
			drawID: 404,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 404).Return(nil, nil)
			},
			expectedError: ErrDrawNotFound,
		},
		{
			name:   "Draw already closed",
			drawID: 3,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Draw{ID: 3}, nil)
				drawRepo.EXPECT().Close(gomock.Any(), 3, gomock.Any()).Return(false, nil)
			},
			expectedError: ErrDrawNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.CloseDraw(context.Background(), tt.drawID)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func ticketsForUsers(counts map[int]int) []domain.Ticket {
	var tickets []domain.Ticket
	id := 0
	for userID := 1; userID <= len(counts); userID++ {
		for i := 0; i < counts[userID]; i++ {
			id++
			tickets = append(tickets, domain.Ticket{ID: id, UserID: userID, DrawID: 3})
		}
	}
	return tickets
}

func TestSelectWinners(t *testing.T) {
	service, drawRepo, ticketRepo, winnerRepo := NewMock(t, 1)

	snapshot := ticketsForUsers(map[int]int{1: 4, 2: 2, 3: 1, 4: 3})

	tests := []struct {
		name          string
		drawID        int
		count         int
		prepareMock   func()
		expectedLen   int
		expectedError error
	}{
		{
			name:   "Three distinct winners from four users",
			drawID: 3,
			count:  3,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Draw{ID: 3, IsActive: true}, nil)
				ticketRepo.EXPECT().FindByDraw(gomock.Any(), 3).Return(snapshot, nil)
				winnerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, winner *domain.Winner) (*domain.Winner, error) {
						return winner, nil
					}).Times(3)
				drawRepo.EXPECT().Close(gomock.Any(), 3, gomock.Any()).Return(true, nil)
			},
			expectedLen: 3,
		},
		{
			name:   "More positions than distinct participants",
			drawID: 3,
			count:  5,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Draw{ID: 3, IsActive: true}, nil)
				ticketRepo.EXPECT().FindByDraw(gomock.Any(), 3).Return(snapshot, nil)
				winnerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, winner *domain.Winner) (*domain.Winner, error) {
						return winner, nil
					}).Times(4)
				drawRepo.EXPECT().Close(gomock.Any(), 3, gomock.Any()).Return(true, nil)
			},
			expectedLen:   4,
			expectedError: ErrInsufficientParticipants,
		},
		{
			name:          "Winner count below one",
			drawID:        3,
			count:         0,
			prepareMock:   func() {},
			expectedError: ErrInvalidWinnerCount,
		},
		{
			name:   "Unknown draw",
			drawID: 404,
			count:  1,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 404).Return(nil, nil)
			},
			expectedError: ErrDrawNotFound,
		},
		{
			name:   "Draw without tickets",
			drawID: 3,
			count:  1,
			prepareMock: func() {
				drawRepo.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Draw{ID: 3, IsActive: true}, nil)
				ticketRepo.EXPECT().FindByDraw(gomock.Any(), 3).Return(nil, nil)
			},
			expectedError: ErrNoTickets,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			winners, err := service.SelectWinners(context.Background(), tt.drawID, tt.count)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				if !errors.Is(err, ErrInsufficientParticipants) {
					assert.Nil(t, winners)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.Len(t, winners, tt.expectedLen)
			seen := make(map[int]bool)
			for i, winner := range winners {
				assert.Equal(t, i+1, winner.Position)
				assert.False(t, seen[winner.UserID], "user %d won twice", winner.UserID)
				seen[winner.UserID] = true
			}
		})
	}
}

func TestTicketsIssued(t *testing.T) {
	service, _, ticketRepo, _ := NewMock(t, 1)

	ticketRepo.EXPECT().CountByDraw(gomock.Any(), 3).Return(120, nil)
	count, err := service.TicketsIssued(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 120, count)

	ticketRepo.EXPECT().CountByDraw(gomock.Any(), 3).Return(0, errors.New("database error"))
	_, err = service.TicketsIssued(context.Background(), 3)
	assert.Error(t, err)
}

// A ticket landing while a selection is underway must not gain
// eligibility; only the snapshot read at the start of the selection
// transaction participates.
func TestSelectWinnersSnapshotIsolation(t *testing.T) {
	service, drawRepo, ticketRepo, winnerRepo := NewMock(t, 7)

	const lateUserID = 99
	snapshot := ticketsForUsers(map[int]int{1: 2, 2: 3})

	drawRepo.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Draw{ID: 3, IsActive: true}, nil)
	ticketRepo.EXPECT().FindByDraw(gomock.Any(), 3).Return(snapshot, nil).Times(1)
	winnerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, winner *domain.Winner) (*domain.Winner, error) {
			// a concurrent purchase lands a ticket mid-selection
			snapshot = append(snapshot, domain.Ticket{ID: 1000, UserID: lateUserID, DrawID: 3})
			return winner, nil
		}).Times(2)
	drawRepo.EXPECT().Close(gomock.Any(), 3, gomock.Any()).Return(true, nil)

	winners, err := service.SelectWinners(context.Background(), 3, 2)
	assert.NoError(t, err)
	assert.Len(t, winners, 2)
	for _, winner := range winners {
		assert.NotEqual(t, lateUserID, winner.UserID, "ticket issued after the snapshot must not win")
		assert.NotEqual(t, 1000, winner.TicketID)
	}
}

func TestPickDistinctReproducible(t *testing.T) {
	snapshot := ticketsForUsers(map[int]int{1: 5, 2: 3, 3: 2, 4: 1, 5: 4})

	first, _, _, _ := NewMock(t, 42)
	second, _, _, _ := NewMock(t, 42)

	picksA := first.pickDistinct(snapshot, 3)
	picksB := second.pickDistinct(snapshot, 3)
	assert.Equal(t, picksA, picksB)

	third, _, _, _ := NewMock(t, 43)
	picksC := third.pickDistinct(snapshot, len(snapshot))
	assert.LessOrEqual(t, len(picksC), 5)
	seen := make(map[int]bool)
	for _, pick := range picksC {
		assert.False(t, seen[pick.UserID])
		seen[pick.UserID] = true
	}
}
