package response

import (
	"time"

	"github.com/google/uuid"

	"lastbite/internal/usecase/commands"
)

type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Qty         int32     `json:"qty"`
	Status      string    `json:"status"`
	QRPNGBase64 string    `json:"qr_png_base64,omitempty"`
}

type RedeemResponse struct {
	ID              uuid.UUID  `json:"id"`
	Status          string     `json:"status"`
	AlreadyRedeemed bool       `json:"already_redeemed"`
	RedeemedAt      *time.Time `json:"redeemed_at,omitempty"`
}

type CancelResponse struct {
	Outcome string `json:"outcome"`
}

type QRResponse struct {
	Code        string `json:"code"`
	QRPNGBase64 string `json:"qr_png_base64"`
}

func FromCreateReservationResult(res *commands.CreateReservationResult) ReservationResponse {
	return ReservationResponse{
		ID:          res.ID,
		Code:        res.Code,
		Qty:         res.Qty,
		Status:      res.Status.String(),
		QRPNGBase64: res.QRPNGBase64,
	}
}

func FromRedeemResult(res *commands.RedeemResult) RedeemResponse {
	return RedeemResponse{
		ID:              res.ID,
		Status:          res.Status.String(),
		AlreadyRedeemed: res.AlreadyRedeemed,
		RedeemedAt:      res.RedeemedAt,
	}
}

func FromCancelResult(res *commands.CancelResult) CancelResponse {
	return CancelResponse{Outcome: string(res.Outcome)}
}
