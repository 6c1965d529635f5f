package dto

import "time"

type PendingPaymentDTO struct {
	ID             int       `json:"id" example:"7"`
	Provider       string    `json:"provider" example:"paystack"`
	ProviderRef    string    `json:"provider_ref" example:"RAFF_a1b2c3"`
	Amount         int64     `json:"amount" example:"1700"`
	Currency       string    `json:"currency" example:"NGN"`
	ExternalHandle string    `json:"external_handle,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type PaymentStatusDTO struct {
	ID             int       `json:"id" example:"7"`
	Provider       string    `json:"provider" example:"paystack"`
	ProviderRef    string    `json:"provider_ref" example:"RAFF_a1b2c3"`
	Amount         int64     `json:"amount" example:"1700"`
	Currency       string    `json:"currency" example:"NGN"`
	Status         string    `json:"status" example:"success"`
	ExternalHandle string    `json:"external_handle,omitempty"`
	UserID         *int      `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type AttributePaymentRequestDTO struct {
	ExternalHandle string `json:"external_handle" example:"100001"`
}

type AttributePaymentResponseDTO struct {
	Status  string `json:"status" example:"issued"`
	Tickets int    `json:"tickets" example:"3"`
}
