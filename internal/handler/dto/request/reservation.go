package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	OfferID uuid.UUID `json:"offer_id" binding:"required"`
	Qty     int32     `json:"qty" binding:"required,gte=1"`
}

type ReservationCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

func (r ReservationCodeRequest) NormalizedCode() string {
	return strings.ToUpper(strings.TrimSpace(r.Code))
}
