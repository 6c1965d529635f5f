package identityservice

import (
	"context"
	"errors"
	"testing"

	"megaraffle/internal/domain"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestResolveOrCreate(t *testing.T) {
	service, repo := NewMock(t)

	existing := &domain.User{ID: 7, ExternalHandle: "42", Username: "alice"}

	tests := []struct {
		name          string
		handle        string
		username      string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name:     "Known handle resolves",
			handle:   "42",
			username: "alice",
			prepareMock: func() {
				repo.EXPECT().FindByHandle(gomock.Any(), "42").Return(existing, nil)
			},
			expectedUser: existing,
		},
		{
			name:     "First sight creates the user",
			handle:   "43",
			username: "bob",
			prepareMock: func() {
				repo.EXPECT().FindByHandle(gomock.Any(), "43").Return(nil, nil)
				repo.EXPECT().Create(gomock.Any(), &domain.User{ExternalHandle: "43", Username: "bob"}).
					DoAndReturn(func(ctx context.Context, user *domain.User) (*domain.User, error) {
						user.ID = 8
						return user, nil
					})
			},
			expectedUser: &domain.User{ID: 8, ExternalHandle: "43", Username: "bob"},
		},
		{
			name:   "Lost create race re-reads the winner's row",
			handle: "44",
			prepareMock: func() {
				repo.EXPECT().FindByHandle(gomock.Any(), "44").Return(nil, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().FindByHandle(gomock.Any(), "44").
					Return(&domain.User{ID: 9, ExternalHandle: "44"}, nil)
			},
			expectedUser: &domain.User{ID: 9, ExternalHandle: "44"},
		},
		{
			name:          "Empty handle",
			handle:        "",
			prepareMock:   func() {},
			expectedError: ErrEmptyHandle,
		},
		{
			name:   "Storage error",
			handle: "42",
			prepareMock: func() {
				repo.EXPECT().FindByHandle(gomock.Any(), "42").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.ResolveOrCreate(context.Background(), tt.handle, tt.username)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}
