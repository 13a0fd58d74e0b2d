package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// PublicOfferView is one row of the buyer-facing listing: an active offer
// annotated with its time-decayed price and, when an observer coordinate was
// supplied, the distance to the restaurant.
type PublicOfferView struct {
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

type MerchantOfferView struct {
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

type ReservationView struct {
	ID         uuid.UUID  `json:"id"`
	OfferID    uuid.UUID  `json:"offer_id"`
	Code       string     `json:"code"`
	Qty        int32      `json:"qty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
}

type RestaurantProfileView struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Phone   *string   `json:"phone,omitempty"`
	City    *string   `json:"city,omitempty"`
	Address *string   `json:"address,omitempty"`
	Lat     *float64  `json:"lat,omitempty"`
	Lon     *float64  `json:"lon,omitempty"`
}

// KPIView aggregates redemption figures for one restaurant. RevenueCents sums
// the offer base price once per redeemed reservation.
type KPIView struct {
	Reserved       int64   `json:"reserved"`
	Redeemed       int64   `json:"redeemed"`
	RedemptionRate float64 `json:"redemption_rate"`
	RevenueCents   int64   `json:"revenue_cents"`
}
