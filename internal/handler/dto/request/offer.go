package request

import (
	"encoding/json"
	"time"

	"lastbite/internal/usecase/commands"
)

type CreateOfferRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   *string    `json:"description,omitempty"`
	Price         float64    `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64   `json:"original_price,omitempty"`
	QtyTotal      int32      `json:"qty_total" binding:"gte=0"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
}

func (r CreateOfferRequest) ToCommand() commands.CreateOfferRequest {
	return commands.CreateOfferRequest{
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		QtyTotal:      r.QtyTotal,
		ExpiresAt:     r.ExpiresAt,
		PhotoURL:      r.PhotoURL,
	}
}

// UpdateOfferRequest distinguishes "field absent" from "field set to null" for
// the nullable columns, which plain pointer binding cannot do. It captures the
// raw JSON object and records which keys were present.
type UpdateOfferRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty"`
	OriginalPrice *float64   `json:"original_price,omitempty"`
	QtyTotal      *int32     `json:"qty_total,omitempty"`
	QtyLeft       *int32     `json:"qty_left,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	PhotoURL      *string    `json:"photo_url,omitempty"`

	presentKeys map[string]struct{}
}

func (r *UpdateOfferRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateOfferRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*r = UpdateOfferRequest(p)
	r.presentKeys = make(map[string]struct{}, len(keys))
	for k := range keys {
		r.presentKeys[k] = struct{}{}
	}
	return nil
}

func (r *UpdateOfferRequest) has(key string) bool {
	_, ok := r.presentKeys[key]
	return ok
}

func (r *UpdateOfferRequest) ToCommand() commands.UpdateOfferRequest {
	return commands.UpdateOfferRequest{
		Title:          r.Title,
		Description:    r.Description,
		DescriptionSet: r.has("description"),
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		QtyTotal:       r.QtyTotal,
		QtyLeft:        r.QtyLeft,
		ExpiresAt:      r.ExpiresAt,
		ExpiresAtSet:   r.has("expires_at"),
		PhotoURL:       r.PhotoURL,
		PhotoURLSet:    r.has("photo_url"),
	}
}
