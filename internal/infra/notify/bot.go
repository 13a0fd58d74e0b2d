package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"lastbite/internal/pkg/config"
	"lastbite/internal/usecase/commands"
)

// BotNotifier posts reservation events to the chat-bot webhook. Delivery is
// best effort: failures are logged and never surface to the buyer.
type BotNotifier struct {
	url    string
	secret string
	client *http.Client
}

func NewBotNotifier(cfg config.BotConfig) commands.ReservationNotifier {
	if cfg.NotifyURL == "" {
		return nil
	}
	return &BotNotifier{
		url:    cfg.NotifyURL,
		secret: cfg.NotifySecret,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type reservationCreatedPayload struct {
	Event      string `json:"event"`
	Code       string `json:"code"`
	Qty        int32  `json:"qty"`
	OfferTitle string `json:"offer_title"`
}

func (n *BotNotifier) ReservationCreated(ctx context.Context, code string, qty int32, offerTitle string) {
	payload := reservationCreatedPayload{
		Event:      "reservation_created",
		Code:       code,
		Qty:        qty,
		OfferTitle: offerTitle,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("failed to marshal bot notification", "error", err.Error())
		return
	}

	// Detached from the request context so a fast client disconnect does not
	// drop the notification; the HTTP client timeout still bounds it.
	go func() {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			slog.Warn("failed to build bot notification request", "error", err.Error())
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if n.secret != "" {
			req.Header.Set("X-Notify-Secret", n.secret)
		}

		resp, err := n.client.Do(req)
		if err != nil {
			slog.Warn("bot notification failed", "error", err.Error())
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			slog.Warn("bot notification rejected", "status", resp.StatusCode)
		}
	}()
}
