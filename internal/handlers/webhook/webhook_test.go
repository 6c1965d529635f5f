package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"megaraffle/internal/dto"
	"megaraffle/internal/pg"
	"megaraffle/internal/service/reconciliationservice"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

const testSecret = "whsec-test"

func NewMock(t *testing.T) (*WebhookHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, testSecret, "NGN")
	defer ctrl.Finish()
	return handler, service
}

func sign(body string) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaystack(t *testing.T) {
	handler, service := NewMock(t)

	successBody := `{"event":"charge.success","data":{"status":"success","reference":"ref-001","amount":170000,"currency":"NGN","metadata":{"tg_user_id":42,"username":"alice"}}}`

	tests := []struct {
		name         string
		body         string
		signature    string
		prepareMock  func()
		expectedCode int
		expectedBody *dto.WebhookResponseDTO
	}{
		{
			name:      "Successful charge issues tickets",
			body:      successBody,
			signature: sign(successBody),
			prepareMock: func() {
				service.EXPECT().Reconcile(gomock.Any(), reconciliationservice.VerifiedPaymentEvent{
					Provider:  "paystack",
					Reference: "ref-001",
					Amount:    1700,
					Currency:  "NGN",
					Raw:       successBody,
					Handle:    "42",
					Username:  "alice",
				}).Return(&reconciliationservice.Result{
					Status:      reconciliationservice.StatusIssued,
					TicketCount: 3,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.WebhookResponseDTO{Received: true, Tickets: 3, Status: "issued"},
		},
		{
			name:         "Signature mismatch",
			body:         successBody,
			signature:    "deadbeef",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Non-success event is acknowledged without effects",
			body:         `{"event":"charge.failed","data":{"status":"failed","reference":"ref-002"}}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing reference is acknowledged",
			body:         `{"event":"charge.success","data":{"status":"success","amount":170000}}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Malformed payload",
			body:         `{"event":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "Storage contention asks for redelivery",
			body:      successBody,
			signature: sign(successBody),
			prepareMock: func() {
				service.EXPECT().Reconcile(gomock.Any(), gomock.Any()).
					Return(nil, pg.ErrStorageContention)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:      "Unexpected error",
			body:      successBody,
			signature: sign(successBody),
			prepareMock: func() {
				service.EXPECT().Reconcile(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(tt.body))
			signature := tt.signature
			if signature == "" {
				signature = sign(tt.body)
			}
			r.Header.Set(signatureHeader, signature)
			w := httptest.NewRecorder()

			handler.Paystack(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != nil {
				var body dto.WebhookResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, *tt.expectedBody, body)
			}
		})
	}
}

func TestFlutterwave(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful charge with txRef fallback",
			body: `{"data":{"status":"successful","txRef":"flw-001","amount":1700,"meta":{"tg_user_id":"42"}}}`,
			prepareMock: func() {
				service.EXPECT().Reconcile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, event reconciliationservice.VerifiedPaymentEvent) (*reconciliationservice.Result, error) {
						assert.Equal(t, "flutterwave", event.Provider)
						assert.Equal(t, "flw-001", event.Reference)
						assert.Equal(t, int64(1700), event.Amount)
						assert.Equal(t, "NGN", event.Currency)
						assert.Equal(t, "42", event.Handle)
						return &reconciliationservice.Result{Status: reconciliationservice.StatusIssued, TicketCount: 3}, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Failed charge is acknowledged",
			body:         `{"data":{"status":"failed","tx_ref":"flw-002","amount":1700}}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Payload without data",
			body:         `{"status":"completed"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Top-level failure verdict overrides data status",
			body:         `{"status":"failed","data":{"status":"successful","tx_ref":"flw-003","amount":1700}}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing reference is acknowledged",
			body:         `{"data":{"status":"successful","amount":1700}}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/webhook/flutterwave", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Flutterwave(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	assert.True(t, verifySignature(testSecret, body, sign(string(body))))
	assert.False(t, verifySignature(testSecret, body, "deadbeef"))
	assert.False(t, verifySignature("other-secret", body, sign(string(body))))
}
