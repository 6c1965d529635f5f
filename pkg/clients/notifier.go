package clients

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// BonusNotification is posted to the configured notify URL whenever a
// referral bonus ticket is issued. Delivery is fire-and-forget; the
// receiving side owns retries.
type BonusNotification struct {
	UserID         int    `json:"user_id"`
	ExternalHandle string `json:"external_handle"`
	TicketID       int    `json:"ticket_id"`
	DrawID         int    `json:"draw_id"`
}

type Notifier struct {
	url    string
	client HTTPClientI
}

func NewNotifier(url string, client HTTPClientI) *Notifier {
	return &Notifier{url: url, client: client}
}

func (n *Notifier) NotifyBonusTicket(notification BonusNotification) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(notification)
	if err != nil {
		zap.L().Error("can't marshal bonus notification", zap.Error(err))
		return
	}

	statusCode, _, err := n.client.Post(n.url, nil, body)
	if err != nil {
		zap.L().Error("can't deliver bonus notification", zap.Error(err))
		return
	}
	if statusCode != http.StatusOK {
		zap.L().Warn("bonus notification rejected", zap.Int("status", statusCode),
			zap.String("detail", fmt.Sprintf("user %d ticket %d", notification.UserID, notification.TicketID)))
	}
}
