package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"megaraffle/internal/domain"
	"megaraffle/internal/dto"
	"megaraffle/internal/service/reconciliationservice"
	"megaraffle/pkg/utils"

	"github.com/go-chi/chi/v5"
)

const pendingLimit = 100

type Service interface {
	PendingPayments(ctx context.Context, limit uint32) ([]domain.Payment, error)
	AttributePending(ctx context.Context, paymentID int, handle string) (*reconciliationservice.AttributionResult, error)
	PaymentByReference(ctx context.Context, provider, reference string) (*domain.Payment, error)
}

type PaymentHandler struct {
	reconciliation Service
}

func New(reconciliation Service) *PaymentHandler {
	return &PaymentHandler{
		reconciliation: reconciliation,
	}
}

// Pending lists payments recorded without a resolvable user, awaiting
// out-of-band attribution.
func (h *PaymentHandler) Pending(w http.ResponseWriter, r *http.Request) {
	payments, err := h.reconciliation.PendingPayments(r.Context(), pendingLimit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(payments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.PendingPaymentDTO
	for _, payment := range payments {
		response = append(response, dto.PendingPaymentDTO{
			ID:             payment.ID,
			Provider:       payment.Provider,
			ProviderRef:    payment.ProviderRef,
			Amount:         payment.Amount,
			Currency:       payment.Currency,
			ExternalHandle: payment.ExternalHandle,
			CreatedAt:      payment.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Lookup answers what a provider delivery produced, keyed the same way
// the reconciliation idempotency constraint is.
func (h *PaymentHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	reference := r.URL.Query().Get("reference")
	if provider == "" || reference == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Provider and reference are required")
		return
	}

	payment, err := h.reconciliation.PaymentByReference(r.Context(), provider, reference)
	if err != nil {
		if errors.Is(err, reconciliationservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentStatusDTO{
		ID:             payment.ID,
		Provider:       payment.Provider,
		ProviderRef:    payment.ProviderRef,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		Status:         payment.Status,
		ExternalHandle: payment.ExternalHandle,
		UserID:         payment.UserID,
		CreatedAt:      payment.CreatedAt,
	})
}

func (h *PaymentHandler) Attribute(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment id")
		return
	}

	var req dto.AttributePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ExternalHandle == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "External handle is required")
		return
	}

	result, err := h.reconciliation.AttributePending(r.Context(), paymentID, req.ExternalHandle)
	if err != nil {
		switch {
		case errors.Is(err, reconciliationservice.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, reconciliationservice.ErrAlreadyAttributed):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, reconciliationservice.ErrNoActiveDraw):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AttributePaymentResponseDTO{
		Status:  string(result.Status),
		Tickets: result.TicketCount,
	})
}
