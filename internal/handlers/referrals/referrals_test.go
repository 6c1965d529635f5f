package referrals

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"megaraffle/internal/dto"
	"megaraffle/internal/pg"
	"megaraffle/internal/service/referralservice"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*ReferralHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRecordHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody *dto.RecordReferralResponseDTO
	}{
		{
			name: "Referral recorded",
			body: `{"referrer_handle":"alice","referee_handle":"bob"}`,
			prepareMock: func() {
				service.EXPECT().RecordReferral(gomock.Any(), "alice", "bob").
					Return(&referralservice.Result{BonusIssued: 1, ReferralCount: 0}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.RecordReferralResponseDTO{BonusIssued: 1, ReferralCount: 0},
		},
		{
			name: "Self referral",
			body: `{"referrer_handle":"alice","referee_handle":"alice"}`,
			prepareMock: func() {
				service.EXPECT().RecordReferral(gomock.Any(), "alice", "alice").
					Return(nil, referralservice.ErrSelfReferral)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Duplicate referral",
			body: `{"referrer_handle":"alice","referee_handle":"bob"}`,
			prepareMock: func() {
				service.EXPECT().RecordReferral(gomock.Any(), "alice", "bob").
					Return(nil, referralservice.ErrDuplicateReferral)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Storage contention asks for a retry",
			body: `{"referrer_handle":"alice","referee_handle":"bob"}`,
			prepareMock: func() {
				service.EXPECT().RecordReferral(gomock.Any(), "alice", "bob").
					Return(nil, pg.ErrStorageContention)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name: "Unexpected error",
			body: `{"referrer_handle":"alice","referee_handle":"bob"}`,
			prepareMock: func() {
				service.EXPECT().RecordReferral(gomock.Any(), "alice", "bob").
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "Missing handles",
			body:         `{"referrer_handle":"alice"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			body:         `{"referrer_handle":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/referrals", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Record(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != nil {
				var body dto.RecordReferralResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, *tt.expectedBody, body)
			}
		})
	}
}
