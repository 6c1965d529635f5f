package draws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"megaraffle/internal/domain"
	"megaraffle/internal/dto"
	"megaraffle/internal/service/drawservice"
	"megaraffle/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type Service interface {
	OpenDraw(ctx context.Context, title, prize string) (*domain.Draw, error)
	CloseDraw(ctx context.Context, drawID int) error
	ActiveDraw(ctx context.Context) (*domain.Draw, error)
	SelectWinners(ctx context.Context, drawID, count int) ([]domain.Winner, error)
	Winners(ctx context.Context, drawID int) ([]domain.Winner, error)
	TicketsIssued(ctx context.Context, drawID int) (int, error)
}

type DrawHandler struct {
	drawService Service
}

func New(drawService Service) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

func (h *DrawHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenDrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draw, err := h.drawService.OpenDraw(r.Context(), req.Title, req.Prize)
	if err != nil {
		if errors.Is(err, drawservice.ErrDrawAlreadyActive) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDrawDTO(draw))
}

func (h *DrawHandler) Close(w http.ResponseWriter, r *http.Request) {
	drawID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid draw id")
		return
	}

	err = h.drawService.CloseDraw(r.Context(), drawID)
	switch {
	case err == nil:
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Draw closed"})
	case errors.Is(err, drawservice.ErrDrawNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, drawservice.ErrDrawNotActive):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *DrawHandler) Active(w http.ResponseWriter, r *http.Request) {
	draw, err := h.drawService.ActiveDraw(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if draw == nil {
		utils.RespondWithError(w, http.StatusNotFound, "No active draw")
		return
	}

	count, err := h.drawService.TicketsIssued(r.Context(), draw.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := toDrawDTO(draw)
	response.TicketCount = count
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *DrawHandler) SelectWinners(w http.ResponseWriter, r *http.Request) {
	drawID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid draw id")
		return
	}

	var req dto.SelectWinnersRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	winners, err := h.drawService.SelectWinners(r.Context(), drawID, req.Count)
	insufficient := errors.Is(err, drawservice.ErrInsufficientParticipants)
	if err != nil && !insufficient {
		switch {
		case errors.Is(err, drawservice.ErrInvalidWinnerCount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, drawservice.ErrDrawNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, drawservice.ErrNoTickets):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.SelectWinnersResponseDTO{
		Winners:      toWinnerDTOs(winners),
		Insufficient: insufficient,
	})
}

func (h *DrawHandler) Winners(w http.ResponseWriter, r *http.Request) {
	drawID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid draw id")
		return
	}

	winners, err := h.drawService.Winners(r.Context(), drawID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(winners) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWinnerDTOs(winners))
}

func toDrawDTO(draw *domain.Draw) dto.DrawResponseDTO {
	return dto.DrawResponseDTO{
		ID:        draw.ID,
		Title:     draw.Title,
		Prize:     draw.Prize,
		IsActive:  draw.IsActive,
		CreatedAt: draw.CreatedAt,
		EndedAt:   draw.EndedAt,
	}
}

func toWinnerDTOs(winners []domain.Winner) []dto.WinnerResponseDTO {
	result := make([]dto.WinnerResponseDTO, 0, len(winners))
	for _, winner := range winners {
		result = append(result, dto.WinnerResponseDTO{
			Position:  winner.Position,
			UserID:    winner.UserID,
			TicketID:  winner.TicketID,
			CreatedAt: winner.CreatedAt,
		})
	}
	return result
}
