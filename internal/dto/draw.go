package dto

import "time"

type OpenDrawRequestDTO struct {
	Title string `json:"title" example:"Friday Mega Draw"`
	Prize string `json:"prize" example:"100000 NGN"`
}

type DrawResponseDTO struct {
	ID          int        `json:"id" example:"1"`
	Title       string     `json:"title" example:"Friday Mega Draw"`
	Prize       string     `json:"prize" example:"100000 NGN"`
	IsActive    bool       `json:"is_active" example:"true"`
	TicketCount int        `json:"ticket_count" example:"120"`
	CreatedAt   time.Time  `json:"created_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

type SelectWinnersRequestDTO struct {
	Count int `json:"count" example:"3"`
}

type WinnerResponseDTO struct {
	Position  int       `json:"position" example:"1"`
	UserID    int       `json:"user_id" example:"42"`
	TicketID  int       `json:"ticket_id" example:"1337"`
	CreatedAt time.Time `json:"created_at"`
}

type SelectWinnersResponseDTO struct {
	Winners      []WinnerResponseDTO `json:"winners"`
	Insufficient bool                `json:"insufficient,omitempty"`
}
