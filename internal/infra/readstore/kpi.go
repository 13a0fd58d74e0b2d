package readstore

import (
	"context"

	"github.com/google/uuid"

	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
)

type KPIReadStore struct {
	db db.DBTX
}

func NewKPIReadStore(dbtx db.DBTX) *KPIReadStore {
	return &KPIReadStore{db: dbtx}
}

// Revenue counts the offer base price once per redeemed reservation,
// regardless of the reserved quantity.
const countKPISQL = `
SELECT COUNT(*) AS reserved,
       COUNT(*) FILTER (WHERE res.status = 'redeemed') AS redeemed,
       COALESCE(SUM(o.price_cents) FILTER (WHERE res.status = 'redeemed'), 0) AS revenue_cents
FROM reservations res
JOIN offers o ON o.id = res.offer_id
WHERE o.restaurant_id = $1`

func (s *KPIReadStore) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, int64, int64, error) {
	var reserved, redeemed, revenue int64
	err := s.db.QueryRow(ctx, countKPISQL, restaurantID).Scan(&reserved, &redeemed, &revenue)
	if err != nil {
		return 0, 0, 0, infra.WrapRepoErr("failed to count reservations for KPI", err)
	}
	return reserved, redeemed, revenue, nil
}
