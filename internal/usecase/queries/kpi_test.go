//go:build unit

package queries_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/usecase/queries"
)

type fakeKPIStore struct {
	reserved, redeemed, revenue int64
}

func (f *fakeKPIStore) CountByRestaurant(_ context.Context, _ uuid.UUID) (int64, int64, int64, error) {
	return f.reserved, f.redeemed, f.revenue, nil
}

func TestKPIByRestaurant(t *testing.T) {
	q := queries.NewKPIQueries(&fakeKPIStore{reserved: 3, redeemed: 2, revenue: 1500})

	view, err := q.ByRestaurant(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(3), view.Reserved)
	assert.Equal(t, int64(2), view.Redeemed)
	assert.InDelta(t, 0.67, view.RedemptionRate, 1e-9)
	assert.Equal(t, int64(1500), view.RevenueCents)
}

func TestKPIByRestaurant_NoReservations(t *testing.T) {
	q := queries.NewKPIQueries(&fakeKPIStore{})

	view, err := q.ByRestaurant(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, view.RedemptionRate)
}
