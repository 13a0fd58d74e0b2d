package queries

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// KPIReadStore returns raw counters; the rate is derived here.
type KPIReadStore interface {
	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (reserved, redeemed, revenueCents int64, err error)
}

type KPIQueries interface {
	ByRestaurant(ctx context.Context, restaurantID uuid.UUID) (*KPIView, error)
}

type kpiQueriesImpl struct {
	store KPIReadStore
}

func NewKPIQueries(store KPIReadStore) KPIQueries {
	return &kpiQueriesImpl{store: store}
}

func (q *kpiQueriesImpl) ByRestaurant(ctx context.Context, restaurantID uuid.UUID) (*KPIView, error) {
	reserved, redeemed, revenue, err := q.store.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if reserved > 0 {
		rate = math.Round(float64(redeemed)/float64(reserved)*100) / 100
	}
	return &KPIView{
		Reserved:       reserved,
		Redeemed:       redeemed,
		RedemptionRate: rate,
		RevenueCents:   revenue,
	}, nil
}
