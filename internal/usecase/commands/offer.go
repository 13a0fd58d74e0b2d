package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lastbite/internal/domain/offer"
	"lastbite/internal/infra"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/usecase/shared"
)

var (
	ErrOfferNotFound = errs.New("offer not found")
	ErrOfferNotOwned = errs.New("offer not owned by restaurant")
)

type CreateOfferRequest struct {
	Title         string
	Description   *string
	Price         float64
	OriginalPrice *float64
	QtyTotal      int32
	ExpiresAt     *time.Time
	PhotoURL      *string
}

// UpdateOfferRequest is a partial edit. The *Set flags distinguish clearing a
// nullable field from leaving it alone.
type UpdateOfferRequest struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Price          *float64
	OriginalPrice  *float64
	QtyTotal       *int32
	QtyLeft        *int32
	ExpiresAt      *time.Time
	ExpiresAtSet   bool
	PhotoURL       *string
	PhotoURLSet    bool
}

type OfferCommands interface {
	CreateOffer(ctx context.Context, restaurantID uuid.UUID, req CreateOfferRequest) (uuid.UUID, error)
	UpdateOffer(ctx context.Context, restaurantID, offerID uuid.UUID, req UpdateOfferRequest) error
	ArchiveOffer(ctx context.Context, restaurantID, offerID uuid.UUID) error
}

type offerUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOfferUseCase(uow shared.UnitOfWork, clk clock.Clock) OfferCommands {
	return &offerUseCaseImpl{uow: uow, clock: clk}
}

func (uc *offerUseCaseImpl) CreateOffer(ctx context.Context, restaurantID uuid.UUID, req CreateOfferRequest) (uuid.UUID, error) {
	var originalCents *int64
	if req.OriginalPrice != nil {
		v := offer.ToMinorUnits(*req.OriginalPrice)
		originalCents = &v
	}

	o, err := offer.NewOffer(
		uuid.New(),
		restaurantID,
		req.Title,
		req.Description,
		offer.ToMinorUnits(req.Price),
		originalCents,
		req.QtyTotal,
		nil,
		req.ExpiresAt,
		req.PhotoURL,
	)
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Offers().Create(ctx, tx.DB(), o)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (uc *offerUseCaseImpl) UpdateOffer(ctx context.Context, restaurantID, offerID uuid.UUID, req UpdateOfferRequest) error {
	patch := shared.OfferPatch{
		Title:          req.Title,
		Description:    req.Description,
		DescriptionSet: req.DescriptionSet,
		QtyTotal:       req.QtyTotal,
		QtyLeft:        req.QtyLeft,
		ExpiresAt:      req.ExpiresAt,
		ExpiresAtSet:   req.ExpiresAtSet,
		PhotoURL:       req.PhotoURL,
		PhotoURLSet:    req.PhotoURLSet,
	}
	if req.Price != nil {
		v := offer.ToMinorUnits(*req.Price)
		patch.PriceCents = &v
	}
	if req.OriginalPrice != nil {
		v := offer.ToMinorUnits(*req.OriginalPrice)
		patch.OriginalPriceCents = &v
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := uc.checkOwnership(ctx, tx, restaurantID, offerID); err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		return tx.Offers().Update(ctx, tx.DB(), offerID, patch)
	})
}

// ArchiveOffer is idempotent: archiving an already-archived offer keeps the
// original archive timestamp.
func (uc *offerUseCaseImpl) ArchiveOffer(ctx context.Context, restaurantID, offerID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := uc.checkOwnership(ctx, tx, restaurantID, offerID); err != nil {
			return err
		}
		return tx.Offers().Archive(ctx, tx.DB(), offerID, uc.clock.Now())
	})
}

func (uc *offerUseCaseImpl) checkOwnership(ctx context.Context, tx shared.Tx, restaurantID, offerID uuid.UUID) error {
	snap, err := tx.Reads().OfferByID(ctx, offerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrOfferNotFound
		}
		return err
	}
	if snap.RestaurantID != restaurantID {
		return ErrOfferNotOwned
	}
	return nil
}
