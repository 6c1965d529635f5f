package service

import (
	"testing"

	"megaraffle/internal/config"
	"megaraffle/internal/pg"
	"megaraffle/internal/repo"
	"megaraffle/pkg/clients"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	cfg := &config.Config{TicketPrice: 500, ReferralThreshold: 5}
	repos := repo.New(mockDB)
	txManager := pg.NewMockTXManager(ctrl)
	notifier := clients.NewNotifier("", clients.NewHTTPClient())

	services := New(repos, txManager, cfg, notifier)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.IdentityService)
	assert.NotNil(t, services.ReconciliationService)
	assert.NotNil(t, services.ReferralService)
	assert.NotNil(t, services.DrawService)
}
