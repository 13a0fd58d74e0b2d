package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lastbite/internal/domain/offer"
	"lastbite/internal/domain/reservation"
	"lastbite/internal/domain/restaurant"
	"lastbite/internal/infra/db"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with conflict retry
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Offers() OfferRepository
	Reservations() ReservationRepository
	Restaurants() RestaurantRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	OfferByID(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
	ReservationByCode(ctx context.Context, code string) (*ReservationSnapshot, error)
	RestaurantByID(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
}

// OfferSnapshot is the minimal offer state command handlers need for
// active/ownership checks. qty_left is authoritative only inside the
// ledger's conditional update, never here.
type OfferSnapshot struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Title        string
	PriceCents   int64
	QtyLeft      *int32
	ExpiresAt    *time.Time
	ArchivedAt   *time.Time
}

// ReservationSnapshot carries the reservation joined with the offer fields
// needed by redeem (owning restaurant) and cancel (offer expiry).
type ReservationSnapshot struct {
	ID             uuid.UUID
	OfferID        uuid.UUID
	RestaurantID   uuid.UUID
	Code           string
	Qty            int32
	Status         reservation.Status
	CreatedAt      time.Time
	RedeemedAt     *time.Time
	OfferExpiresAt *time.Time
}

// OfferPatch lists the fields a partial edit may touch; nil fields are left
// unchanged. DescriptionSet/ExpiresAtSet/PhotoURLSet distinguish "clear this
// field" from "not supplied".
type OfferPatch struct {
	Title              *string
	Description        *string
	DescriptionSet     bool
	PriceCents         *int64
	OriginalPriceCents *int64
	QtyTotal           *int32
	QtyLeft            *int32
	ExpiresAt          *time.Time
	ExpiresAtSet       bool
	PhotoURL           *string
	PhotoURLSet        bool
}

func (p OfferPatch) IsEmpty() bool {
	return p.Title == nil && !p.DescriptionSet && p.PriceCents == nil &&
		p.OriginalPriceCents == nil && p.QtyTotal == nil && p.QtyLeft == nil &&
		!p.ExpiresAtSet && !p.PhotoURLSet
}

// OfferRepository is the write side for offers, including the inventory
// ledger. ReserveQuantity's capacity check and decrement are a single
// indivisible statement against the store.
type OfferRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, patch OfferPatch) error
	Archive(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error
	ReserveQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, qty int32, now time.Time) error
	ReleaseQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, qty int32) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation, now time.Time) (uuid.UUID, error)
	MarkRedeemed(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error
	MarkCanceled(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type RestaurantRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *restaurant.Restaurant) (uuid.UUID, error)
	UpdateProfile(ctx context.Context, tx db.DBTX, id uuid.UUID, patch RestaurantPatch) error
}

type RestaurantPatch struct {
	Title   *string
	Phone   *string
	City    *string
	Address *string
	Lat     *float64
	Lon     *float64
}
