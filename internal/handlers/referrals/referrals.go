package referrals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"megaraffle/internal/dto"
	"megaraffle/internal/pg"
	"megaraffle/internal/service/referralservice"
	"megaraffle/pkg/utils"
)

type Service interface {
	RecordReferral(ctx context.Context, referrerHandle, refereeHandle string) (*referralservice.Result, error)
}

type ReferralHandler struct {
	referralService Service
}

func New(referralService Service) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

func (h *ReferralHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordReferralRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ReferrerHandle == "" || req.RefereeHandle == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Both handles are required")
		return
	}

	result, err := h.referralService.RecordReferral(r.Context(), req.ReferrerHandle, req.RefereeHandle)
	if err != nil {
		switch {
		case errors.Is(err, referralservice.ErrSelfReferral):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, referralservice.ErrDuplicateReferral):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, pg.ErrStorageContention):
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Temporary contention, retry")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.RecordReferralResponseDTO{
		BonusIssued:   result.BonusIssued,
		ReferralCount: result.ReferralCount,
	})
}
