package identityservice

import (
	"context"
	"errors"

	"megaraffle/internal/domain"

	"go.uber.org/zap"
)

type Repo interface {
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

var ErrEmptyHandle = errors.New("external handle is required")

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// ResolveOrCreate returns the user owning the handle, creating the record
// on first sight. Two concurrent first sights race on the unique handle
// constraint; the loser re-reads the row the winner created.
func (s *Service) ResolveOrCreate(ctx context.Context, handle, username string) (*domain.User, error) {
	if handle == "" {
		return nil, ErrEmptyHandle
	}

	user, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = s.repo.Create(ctx, &domain.User{ExternalHandle: handle, Username: username})
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}
	if user != nil {
		zap.L().Info("user created on first sight", zap.String("handle", handle))
		return user, nil
	}

	user, err = s.repo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user vanished after create conflict")
	}
	return user, nil
}
