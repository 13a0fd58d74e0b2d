package queries

import (
	"context"

	"github.com/google/uuid"
)

type RestaurantReadStore interface {
	FindProfile(ctx context.Context, id uuid.UUID) (*RestaurantProfileView, error)
}

type RestaurantQueries interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*RestaurantProfileView, error)
}

type restaurantQueriesImpl struct {
	store RestaurantReadStore
}

func NewRestaurantQueries(store RestaurantReadStore) RestaurantQueries {
	return &restaurantQueriesImpl{store: store}
}

func (q *restaurantQueriesImpl) GetProfile(ctx context.Context, id uuid.UUID) (*RestaurantProfileView, error) {
	return q.store.FindProfile(ctx, id)
}
