package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQty     = errors.New("reservation quantity must be at least 1")
	ErrEmptyCode      = errors.New("reservation code cannot be empty")
	ErrRedeemCanceled = errors.New("cannot redeem a canceled reservation")
)

// Reservation is a buyer's claim on some quantity of one offer. The offer
// reference and qty are fixed at creation; only status and redeemedAt change,
// and only along reserved → redeemed or reserved → canceled.
type Reservation struct {
	id         uuid.UUID
	offerID    uuid.UUID
	code       string
	qty        int32
	status     Status
	createdAt  time.Time
	redeemedAt *time.Time
}

func NewReservation(id, offerID uuid.UUID, code string, qty int32) (*Reservation, error) {
	if qty < 1 {
		return nil, ErrInvalidQty
	}
	if code == "" {
		return nil, ErrEmptyCode
	}
	return &Reservation{
		id:      id,
		offerID: offerID,
		code:    code,
		qty:     qty,
		status:  StatusReserved,
	}, nil
}

func ReconstructReservation(
	id, offerID uuid.UUID,
	code string,
	qty int32,
	status Status,
	createdAt time.Time,
	redeemedAt *time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		offerID:    offerID,
		code:       code,
		qty:        qty,
		status:     status,
		createdAt:  createdAt,
		redeemedAt: redeemedAt,
	}
}

// Redeem transitions the reservation to redeemed. Redeeming an
// already-redeemed reservation succeeds without mutation (repeated scans
// must not error); alreadyRedeemed tells the caller which case occurred.
// Redeeming a canceled reservation is an error.
func (r *Reservation) Redeem(now time.Time) (alreadyRedeemed bool, err error) {
	switch r.status {
	case StatusRedeemed:
		return true, nil
	case StatusCanceled:
		return false, ErrRedeemCanceled
	default:
		r.status = StatusRedeemed
		r.redeemedAt = &now
		return false, nil
	}
}

// Cancel transitions the reservation to canceled. A reservation that is no
// longer in reserved status is left untouched; changed reports whether the
// transition happened.
func (r *Reservation) Cancel() (changed bool) {
	if r.status != StatusReserved {
		return false
	}
	r.status = StatusCanceled
	return true
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) OfferID() uuid.UUID     { return r.offerID }
func (r *Reservation) Code() string           { return r.code }
func (r *Reservation) Qty() int32             { return r.qty }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) RedeemedAt() *time.Time { return r.redeemedAt }
