package commands

import (
	"context"

	"github.com/google/uuid"

	"lastbite/internal/domain/restaurant"
	"lastbite/internal/infra"
	"lastbite/internal/pkg/apikey"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/usecase/shared"
)

var ErrRestaurantNotFound = errs.New("restaurant not found")

type RegisterMerchantRequest struct {
	Title   string
	Phone   *string
	City    *string
	Address *string
	Lat     *float64
	Lon     *float64
}

// RegisterMerchantResult carries the plaintext API key. It is shown exactly
// once; only the bcrypt hash is stored.
type RegisterMerchantResult struct {
	ID     uuid.UUID
	APIKey string
}

type UpdateMerchantProfileRequest struct {
	Title   *string
	Phone   *string
	City    *string
	Address *string
	Lat     *float64
	Lon     *float64
}

type MerchantCommands interface {
	Register(ctx context.Context, req RegisterMerchantRequest) (*RegisterMerchantResult, error)
	UpdateProfile(ctx context.Context, restaurantID uuid.UUID, req UpdateMerchantProfileRequest) error
}

type merchantUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewMerchantUseCase(uow shared.UnitOfWork) MerchantCommands {
	return &merchantUseCaseImpl{uow: uow}
}

func (uc *merchantUseCaseImpl) Register(ctx context.Context, req RegisterMerchantRequest) (*RegisterMerchantResult, error) {
	key, err := apikey.Generate()
	if err != nil {
		return nil, err
	}
	hash, err := apikey.Hash(key)
	if err != nil {
		return nil, err
	}

	r, err := restaurant.NewRestaurant(
		uuid.New(), hash, req.Title,
		req.Phone, req.City, req.Address,
		req.Lat, req.Lon,
	)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Restaurants().Create(ctx, tx.DB(), r)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RegisterMerchantResult{ID: createdID, APIKey: key}, nil
}

func (uc *merchantUseCaseImpl) UpdateProfile(ctx context.Context, restaurantID uuid.UUID, req UpdateMerchantProfileRequest) error {
	patch := shared.RestaurantPatch{
		Title:   req.Title,
		Phone:   req.Phone,
		City:    req.City,
		Address: req.Address,
		Lat:     req.Lat,
		Lon:     req.Lon,
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Restaurants().UpdateProfile(ctx, tx.DB(), restaurantID, patch)
		if err != nil && infra.IsKind(err, infra.KindNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	})
}
