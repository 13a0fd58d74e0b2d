package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"lastbite/internal/usecase/queries"
)

type PublicOfferResponse struct {
	ID                  uuid.UUID  `json:"id"`
	RestaurantID        uuid.UUID  `json:"restaurant_id"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	PriceCents          int64      `json:"price_cents"`
	OriginalPriceCents  *int64     `json:"original_price_cents,omitempty"`
	PriceCentsEffective int64      `json:"price_cents_effective"`
	DiscountPercent     int        `json:"discount_percent"`
	DiscountTier        *string    `json:"discount_tier,omitempty"`
	QtyLeft             *int32     `json:"qty_left,omitempty"`
	QtyTotal            int32      `json:"qty_total"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	PhotoURL            *string    `json:"photo_url,omitempty"`
	City                *string    `json:"city,omitempty"`
	DistanceKm          *float64   `json:"distance_km,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type MerchantOfferResponse struct {
	ID                 uuid.UUID  `json:"id"`
	RestaurantID       uuid.UUID  `json:"restaurant_id"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	PriceCents         int64      `json:"price_cents"`
	OriginalPriceCents *int64     `json:"original_price_cents,omitempty"`
	QtyLeft            *int32     `json:"qty_left,omitempty"`
	QtyTotal           int32      `json:"qty_total"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	ArchivedAt         *time.Time `json:"archived_at,omitempty"`
	PhotoURL           *string    `json:"photo_url,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type CreateOfferResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromPublicOfferViews(views []*queries.PublicOfferView) ([]PublicOfferResponse, error) {
	out := make([]PublicOfferResponse, 0, len(views))
	if err := copier.Copy(&out, views); err != nil {
		return nil, err
	}
	return out, nil
}

func FromMerchantOfferViews(views []*queries.MerchantOfferView) ([]MerchantOfferResponse, error) {
	out := make([]MerchantOfferResponse, 0, len(views))
	if err := copier.Copy(&out, views); err != nil {
		return nil, err
	}
	return out, nil
}
