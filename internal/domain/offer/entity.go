package offer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("offer title cannot be empty")
	ErrTitleTooLong     = errors.New("offer title is too long (max 255 characters)")
	ErrMissingBasePrice = errors.New("offer base price is required")
	ErrNegativePrice    = errors.New("offer price cannot be negative")
	ErrNegativeQty      = errors.New("offer quantity cannot be negative")
)

const MaxTitleLength = 255

// Offer is a restaurant's surplus-food listing. qtyLeft is nil for
// unlimited-quantity offers; once archivedAt is set the offer is
// permanently inactive.
type Offer struct {
	id                 uuid.UUID
	restaurantID       uuid.UUID
	title              string
	description        *string
	priceCents         int64
	originalPriceCents *int64
	qtyTotal           int32
	qtyLeft            *int32
	expiresAt          *time.Time
	archivedAt         *time.Time
	photoURL           *string
	createdAt          time.Time
}

func NewOffer(
	id uuid.UUID,
	restaurantID uuid.UUID,
	title string,
	description *string,
	priceCents int64,
	originalPriceCents *int64,
	qtyTotal int32,
	qtyLeft *int32,
	expiresAt *time.Time,
	photoURL *string,
) (*Offer, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if priceCents <= 0 {
		return nil, ErrMissingBasePrice
	}
	if originalPriceCents != nil && *originalPriceCents < 0 {
		return nil, ErrNegativePrice
	}
	if qtyTotal < 0 {
		return nil, ErrNegativeQty
	}
	if qtyLeft == nil {
		// left-quantity defaults to the total when not explicitly given
		left := qtyTotal
		qtyLeft = &left
	} else if *qtyLeft < 0 || *qtyLeft > qtyTotal {
		return nil, ErrNegativeQty
	}

	return &Offer{
		id:                 id,
		restaurantID:       restaurantID,
		title:              title,
		description:        description,
		priceCents:         priceCents,
		originalPriceCents: originalPriceCents,
		qtyTotal:           qtyTotal,
		qtyLeft:            qtyLeft,
		expiresAt:          expiresAt,
		photoURL:           photoURL,
	}, nil
}

func ReconstructOffer(
	id, restaurantID uuid.UUID,
	title string,
	description *string,
	priceCents int64,
	originalPriceCents *int64,
	qtyTotal int32,
	qtyLeft *int32,
	expiresAt, archivedAt *time.Time,
	photoURL *string,
	createdAt time.Time,
) *Offer {
	return &Offer{
		id:                 id,
		restaurantID:       restaurantID,
		title:              title,
		description:        description,
		priceCents:         priceCents,
		originalPriceCents: originalPriceCents,
		qtyTotal:           qtyTotal,
		qtyLeft:            qtyLeft,
		expiresAt:          expiresAt,
		archivedAt:         archivedAt,
		photoURL:           photoURL,
		createdAt:          createdAt,
	}
}

// IsActiveAt reports whether the offer can still be reserved: not archived,
// not past expiry, and with capacity remaining (nil qtyLeft = unlimited).
func (o *Offer) IsActiveAt(now time.Time) bool {
	if o.archivedAt != nil {
		return false
	}
	if o.expiresAt != nil && !o.expiresAt.After(now) {
		return false
	}
	if o.qtyLeft != nil && *o.qtyLeft <= 0 {
		return false
	}
	return true
}

func (o *Offer) HasExpiredAt(now time.Time) bool {
	return o.expiresAt != nil && !o.expiresAt.After(now)
}

// PriceAt applies the time-decay discount at the given instant.
func (o *Offer) PriceAt(now time.Time) PriceQuote {
	return Quote(o.priceCents, o.originalPriceCents, o.expiresAt, now)
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (o *Offer) ID() uuid.UUID               { return o.id }
func (o *Offer) RestaurantID() uuid.UUID     { return o.restaurantID }
func (o *Offer) Title() string               { return o.title }
func (o *Offer) Description() *string        { return o.description }
func (o *Offer) PriceCents() int64           { return o.priceCents }
func (o *Offer) OriginalPriceCents() *int64  { return o.originalPriceCents }
func (o *Offer) QtyTotal() int32             { return o.qtyTotal }
func (o *Offer) QtyLeft() *int32             { return o.qtyLeft }
func (o *Offer) ExpiresAt() *time.Time       { return o.expiresAt }
func (o *Offer) ArchivedAt() *time.Time      { return o.archivedAt }
func (o *Offer) PhotoURL() *string           { return o.photoURL }
func (o *Offer) CreatedAt() time.Time        { return o.createdAt }
