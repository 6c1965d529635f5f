package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"megaraffle/internal/dto"
	"megaraffle/internal/pg"
	"megaraffle/internal/service/reconciliationservice"
	"megaraffle/pkg/utils"

	"go.uber.org/zap"
)

const signatureHeader = "x-paystack-signature"

type Service interface {
	Reconcile(ctx context.Context, event reconciliationservice.VerifiedPaymentEvent) (*reconciliationservice.Result, error)
}

type WebhookHandler struct {
	reconciliation Service
	secret         string
	currency       string
}

func New(reconciliation Service, secret, currency string) *WebhookHandler {
	return &WebhookHandler{
		reconciliation: reconciliation,
		secret:         secret,
		currency:       currency,
	}
}

// Paystack handles payment confirmations from Paystack. The HMAC-SHA512
// signature over the raw body is verified before anything is parsed; only
// charge.success events with a success status reach reconciliation,
// everything else is acknowledged without side effects.
func (h *WebhookHandler) Paystack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if h.secret != "" {
		if !verifySignature(h.secret, body, r.Header.Get(signatureHeader)) {
			zap.L().Warn("webhook signature mismatch", zap.String("provider", "paystack"))
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
			return
		}
	}

	var payload dto.PaystackWebhookDTO
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Event != "charge.success" || payload.Data.Status != "success" {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}
	if payload.Data.Reference == "" {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}

	currency := payload.Data.Currency
	if currency == "" {
		currency = h.currency
	}

	event := reconciliationservice.VerifiedPaymentEvent{
		Provider:  "paystack",
		Reference: payload.Data.Reference,
		Amount:    payload.Data.Amount / 100, // minor units on the wire
		Currency:  currency,
		Raw:       string(body),
		Handle:    string(payload.Data.Metadata.TgUserID),
		Username:  payload.Data.Metadata.Username,
	}
	h.reconcile(w, r, event)
}

// Flutterwave handles payment confirmations from Flutterwave. The
// provider sends the reference under several names and no signature;
// deliveries are accepted unverified and logged as such.
func (h *WebhookHandler) Flutterwave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	zap.L().Warn("unverified webhook delivery accepted", zap.String("provider", "flutterwave"))

	var payload dto.FlutterwaveWebhookDTO
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if payload.Data == nil {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}
	// some deliveries carry the verdict at the top level instead
	if payload.Status != "" && payload.Status != "successful" && payload.Status != "success" {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}

	data := payload.Data
	if data.Status != "successful" && data.Status != "success" {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}

	reference := data.TxRef
	if reference == "" {
		reference = data.TxRefAlt
	}
	if reference == "" {
		reference = data.Reference
	}
	if reference == "" {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}

	currency := data.Currency
	if currency == "" {
		currency = h.currency
	}

	event := reconciliationservice.VerifiedPaymentEvent{
		Provider:  "flutterwave",
		Reference: reference,
		Amount:    int64(data.Amount), // already in whole currency units
		Currency:  currency,
		Raw:       string(body),
		Handle:    string(data.Meta.TgUserID),
	}
	h.reconcile(w, r, event)
}

func (h *WebhookHandler) reconcile(w http.ResponseWriter, r *http.Request, event reconciliationservice.VerifiedPaymentEvent) {
	result, err := h.reconciliation.Reconcile(r.Context(), event)
	if err != nil {
		if errors.Is(err, pg.ErrStorageContention) {
			// retryable: the provider redelivers on non-2xx
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Temporary contention, retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{
		Received: true,
		Tickets:  result.TicketCount,
		Status:   string(result.Status),
	})
}

func verifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
