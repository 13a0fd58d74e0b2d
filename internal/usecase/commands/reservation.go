package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lastbite/internal/domain/reservation"
	"lastbite/internal/infra"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/qr"
	"lastbite/internal/usecase/shared"
)

var (
	ErrOfferInactive          = errs.New("offer is not active")
	ErrInsufficientQty        = errs.New("not enough quantity left")
	ErrReservationNotFound    = errs.New("reservation not found")
	ErrReservationNotOwned    = errs.New("reservation belongs to another restaurant")
	ErrReservationCanceled    = errs.New("reservation was canceled")
	ErrReservationConflict    = errs.New("reservation was modified concurrently")
	ErrReservationCodeExhaust = errs.New("failed to allocate a unique reservation code")
)

// CancelOutcome mirrors the state machine: "canceled" restored inventory,
// "expired" refused the cancel (the reservation stays reserved and the stock
// stays gone), the already_* outcomes are no-ops.
type CancelOutcome string

const (
	OutcomeCanceled        CancelOutcome = "canceled"
	OutcomeExpired         CancelOutcome = "expired"
	OutcomeAlreadyRedeemed CancelOutcome = "already_redeemed"
	OutcomeAlreadyCanceled CancelOutcome = "already_canceled"
)

type CreateReservationResult struct {
	ID          uuid.UUID
	Code        string
	Qty         int32
	Status      reservation.Status
	QRPNGBase64 string
}

type RedeemResult struct {
	ID              uuid.UUID
	Status          reservation.Status
	AlreadyRedeemed bool
	RedeemedAt      *time.Time
}

type CancelResult struct {
	Outcome CancelOutcome
}

// ReservationNotifier pushes a best-effort event after a reservation commits.
type ReservationNotifier interface {
	ReservationCreated(ctx context.Context, code string, qty int32, offerTitle string)
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, offerID uuid.UUID, qty int32) (*CreateReservationResult, error)
	RedeemReservation(ctx context.Context, restaurantID uuid.UUID, code string) (*RedeemResult, error)
	CancelReservation(ctx context.Context, code string) (*CancelResult, error)
}

type reservationUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	qr       qr.Encoder
	notifier ReservationNotifier
}

func NewReservationUseCase(uow shared.UnitOfWork, clk clock.Clock, enc qr.Encoder, notifier ReservationNotifier) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow, clock: clk, qr: enc, notifier: notifier}
}

// Retries cover the astronomically unlikely code collision (unique index on
// reservations.code).
const maxCodeAttempts = 3

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, offerID uuid.UUID, qty int32) (*CreateReservationResult, error) {
	now := uc.clock.Now()

	var (
		created    *reservation.Reservation
		offerTitle string
	)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := reservation.NewCode()
		if err != nil {
			return nil, err
		}
		res, err := reservation.NewReservation(uuid.New(), offerID, code, qty)
		if err != nil {
			return nil, err
		}

		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			// The conditional decrement is the only capacity authority; it
			// fails atomically when the offer is inactive or short on stock.
			if derr := tx.Offers().ReserveQuantity(ctx, tx.DB(), offerID, qty, now); derr != nil {
				return derr
			}
			if _, derr := tx.Reservations().Create(ctx, tx.DB(), res, now); derr != nil {
				return derr
			}
			snap, derr := tx.Reads().OfferByID(ctx, offerID)
			if derr != nil {
				return derr
			}
			offerTitle = snap.Title
			return nil
		})
		if err == nil {
			created = res
			break
		}
		if infra.IsKind(err, infra.KindDuplicateKey) {
			continue
		}
		return nil, uc.translateReserveErr(err)
	}
	if created == nil {
		return nil, ErrReservationCodeExhaust
	}

	png, err := uc.qr.EncodePNGBase64(created.Code())
	if err != nil {
		slog.Warn("failed to render reservation qr", "error", err.Error())
		png = ""
	}

	if uc.notifier != nil {
		uc.notifier.ReservationCreated(ctx, created.Code(), created.Qty(), offerTitle)
	}

	return &CreateReservationResult{
		ID:          created.ID(),
		Code:        created.Code(),
		Qty:         created.Qty(),
		Status:      created.Status(),
		QRPNGBase64: png,
	}, nil
}

// RedeemReservation is idempotent for repeated scans: a second redeem of the
// same code reports alreadyRedeemed with the original timestamp.
func (uc *reservationUseCaseImpl) RedeemReservation(ctx context.Context, restaurantID uuid.UUID, code string) (*RedeemResult, error) {
	now := uc.clock.Now()

	var result *RedeemResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByCode(ctx, code)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return derr
		}
		if snap.RestaurantID != restaurantID {
			return ErrReservationNotOwned
		}

		res := reservation.ReconstructReservation(
			snap.ID, snap.OfferID, snap.Code, snap.Qty, snap.Status, snap.CreatedAt, snap.RedeemedAt,
		)
		already, derr := res.Redeem(now)
		if derr != nil {
			return ErrReservationCanceled
		}
		if already {
			result = &RedeemResult{
				ID:              snap.ID,
				Status:          reservation.StatusRedeemed,
				AlreadyRedeemed: true,
				RedeemedAt:      snap.RedeemedAt,
			}
			return nil
		}

		if derr := tx.Reservations().MarkRedeemed(ctx, tx.DB(), snap.ID, now); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrReservationConflict
			}
			return derr
		}
		result = &RedeemResult{
			ID:         snap.ID,
			Status:     reservation.StatusRedeemed,
			RedeemedAt: res.RedeemedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CancelReservation refuses outright once the offer has expired: the stock is
// gone for good, nothing is written, and the reservation stays reserved and
// redeemable. Otherwise the cancel and the quantity release commit together.
func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, code string) (*CancelResult, error) {
	now := uc.clock.Now()

	var result *CancelResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByCode(ctx, code)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return derr
		}

		res := reservation.ReconstructReservation(
			snap.ID, snap.OfferID, snap.Code, snap.Qty, snap.Status, snap.CreatedAt, snap.RedeemedAt,
		)
		if !res.Cancel() {
			switch snap.Status {
			case reservation.StatusRedeemed:
				result = &CancelResult{Outcome: OutcomeAlreadyRedeemed}
			default:
				result = &CancelResult{Outcome: OutcomeAlreadyCanceled}
			}
			return nil
		}

		if snap.OfferExpiresAt != nil && !snap.OfferExpiresAt.After(now) {
			result = &CancelResult{Outcome: OutcomeExpired}
			return nil
		}

		if derr := tx.Reservations().MarkCanceled(ctx, tx.DB(), snap.ID); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrReservationConflict
			}
			return derr
		}

		if derr := tx.Offers().ReleaseQuantity(ctx, tx.DB(), snap.OfferID, snap.Qty); derr != nil {
			return derr
		}
		result = &CancelResult{Outcome: OutcomeCanceled}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *reservationUseCaseImpl) translateReserveErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrOfferNotFound
	case infra.IsKind(err, infra.KindInactive):
		return ErrOfferInactive
	case infra.IsKind(err, infra.KindInsufficientQty):
		return ErrInsufficientQty
	default:
		return err
	}
}
