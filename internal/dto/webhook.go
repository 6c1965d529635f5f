package dto

import (
	"bytes"
	"encoding/json"
)

// FlexString accepts both JSON strings and numbers; payment providers
// send user identifiers in either form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

type PaystackMetadataDTO struct {
	TgUserID FlexString `json:"tg_user_id"`
	Username string     `json:"username"`
}

type PaystackWebhookDTO struct {
	Event string `json:"event"`
	Data  struct {
		Status    string              `json:"status"`
		Reference string              `json:"reference"`
		Amount    int64               `json:"amount"`
		Currency  string              `json:"currency"`
		Metadata  PaystackMetadataDTO `json:"metadata"`
	} `json:"data"`
}

type FlutterwaveWebhookDTO struct {
	Data *struct {
		Status    string  `json:"status"`
		TxRef     string  `json:"tx_ref"`
		TxRefAlt  string  `json:"txRef"`
		Reference string  `json:"reference"`
		Amount    float64 `json:"amount"`
		Currency  string  `json:"currency"`
		Meta      struct {
			TgUserID FlexString `json:"tg_user_id"`
		} `json:"meta"`
	} `json:"data"`
	Status string `json:"status"`
}

type WebhookResponseDTO struct {
	Received bool   `json:"received"`
	Tickets  int    `json:"tickets"`
	Status   string `json:"status"`
}

type WebhookAckDTO struct {
	OK bool `json:"ok"`
}
