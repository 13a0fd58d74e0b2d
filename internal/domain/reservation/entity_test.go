//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/domain/reservation"
)

func TestNewReservation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res, err := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 2)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusReserved, res.Status())
		assert.Nil(t, res.RedeemedAt())
	})

	t.Run("zero qty", func(t *testing.T) {
		_, err := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 0)
		assert.ErrorIs(t, err, reservation.ErrInvalidQty)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := reservation.NewReservation(uuid.New(), uuid.New(), "", 1)
		assert.ErrorIs(t, err, reservation.ErrEmptyCode)
	})
}

func TestReservation_Redeem(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("first redeem stamps redeemed_at", func(t *testing.T) {
		res, _ := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 1)

		already, err := res.Redeem(now)
		require.NoError(t, err)
		assert.False(t, already)
		assert.Equal(t, reservation.StatusRedeemed, res.Status())
		require.NotNil(t, res.RedeemedAt())
		assert.Equal(t, now, *res.RedeemedAt())
	})

	t.Run("second redeem is idempotent and keeps the first timestamp", func(t *testing.T) {
		res, _ := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 1)
		_, err := res.Redeem(now)
		require.NoError(t, err)

		later := now.Add(10 * time.Minute)
		already, err := res.Redeem(later)
		require.NoError(t, err)
		assert.True(t, already)
		require.NotNil(t, res.RedeemedAt())
		assert.Equal(t, now, *res.RedeemedAt())
	})

	t.Run("canceled reservation cannot be redeemed", func(t *testing.T) {
		res, _ := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 1)
		require.True(t, res.Cancel())

		_, err := res.Redeem(now)
		assert.ErrorIs(t, err, reservation.ErrRedeemCanceled)
	})
}

func TestReservation_Cancel(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("reserved cancels", func(t *testing.T) {
		res, _ := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 1)
		assert.True(t, res.Cancel())
		assert.Equal(t, reservation.StatusCanceled, res.Status())
	})

	t.Run("cancel after redeem is a no-op", func(t *testing.T) {
		res, _ := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 1)
		_, err := res.Redeem(now)
		require.NoError(t, err)

		assert.False(t, res.Cancel())
		assert.Equal(t, reservation.StatusRedeemed, res.Status())
	})

	t.Run("double cancel is a no-op", func(t *testing.T) {
		res, _ := reservation.NewReservation(uuid.New(), uuid.New(), "ABCDEFGH23", 1)
		assert.True(t, res.Cancel())
		assert.False(t, res.Cancel())
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, reservation.StatusReserved.IsValid())
	assert.False(t, reservation.Status("unknown").IsValid())

	assert.False(t, reservation.StatusReserved.IsTerminal())
	assert.True(t, reservation.StatusRedeemed.IsTerminal())
	assert.True(t, reservation.StatusCanceled.IsTerminal())
}
