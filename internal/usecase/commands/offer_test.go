//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/domain/offer"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/usecase/commands"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func newOfferUC(u *fakeUoW) commands.OfferCommands {
	return commands.NewOfferUseCase(u, clock.NewMockClock(testNow))
}

func TestCreateOffer(t *testing.T) {
	t.Run("converts major units to cents", func(t *testing.T) {
		u := newFakeUoW()
		uc := newOfferUC(u)
		restaurantID := uuid.New()

		id, err := uc.CreateOffer(context.Background(), restaurantID, commands.CreateOfferRequest{
			Title:         "Pizza slice",
			Price:         3.50,
			OriginalPrice: f64Ptr(7.00),
			QtyTotal:      4,
		})
		require.NoError(t, err)

		rec := u.offers[id]
		require.NotNil(t, rec)
		assert.Equal(t, int64(350), rec.priceCents)
		require.NotNil(t, rec.originalPriceCents)
		assert.Equal(t, int64(700), *rec.originalPriceCents)
		require.NotNil(t, rec.qtyLeft)
		assert.Equal(t, int32(4), *rec.qtyLeft)
	})

	t.Run("large values pass through as cents", func(t *testing.T) {
		u := newFakeUoW()
		uc := newOfferUC(u)

		id, err := uc.CreateOffer(context.Background(), uuid.New(), commands.CreateOfferRequest{
			Title:    "Catering batch",
			Price:    150000,
			QtyTotal: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(150000), u.offers[id].priceCents)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		u := newFakeUoW()
		uc := newOfferUC(u)

		_, err := uc.CreateOffer(context.Background(), uuid.New(), commands.CreateOfferRequest{
			Title:    "  ",
			Price:    5,
			QtyTotal: 1,
		})
		assert.ErrorIs(t, err, offer.ErrEmptyTitle)
	})
}

func TestUpdateOffer(t *testing.T) {
	seed := func(u *fakeUoW) (uuid.UUID, uuid.UUID) {
		rec := activeOffer(int32Ptr(5))
		id := u.addOffer(rec)
		return rec.restaurantID, id
	}

	t.Run("updates only supplied fields", func(t *testing.T) {
		u := newFakeUoW()
		owner, offerID := seed(u)
		uc := newOfferUC(u)

		err := uc.UpdateOffer(context.Background(), owner, offerID, commands.UpdateOfferRequest{
			Title: strPtr("Day-old bread"),
			Price: f64Ptr(2.50),
		})
		require.NoError(t, err)

		rec := u.offers[offerID]
		assert.Equal(t, "Day-old bread", rec.title)
		assert.Equal(t, int64(250), rec.priceCents)
		assert.Equal(t, int32(10), rec.qtyTotal)
	})

	t.Run("clears expiry when explicitly set to null", func(t *testing.T) {
		u := newFakeUoW()
		owner, offerID := seed(u)
		uc := newOfferUC(u)

		err := uc.UpdateOffer(context.Background(), owner, offerID, commands.UpdateOfferRequest{
			ExpiresAt:    nil,
			ExpiresAtSet: true,
		})
		require.NoError(t, err)
		assert.Nil(t, u.offers[offerID].expiresAt)
	})

	t.Run("empty patch is a no-op success", func(t *testing.T) {
		u := newFakeUoW()
		owner, offerID := seed(u)
		uc := newOfferUC(u)

		before := *u.offers[offerID]
		err := uc.UpdateOffer(context.Background(), owner, offerID, commands.UpdateOfferRequest{})
		require.NoError(t, err)
		assert.Equal(t, before, *u.offers[offerID])
	})

	t.Run("other restaurant cannot edit", func(t *testing.T) {
		u := newFakeUoW()
		_, offerID := seed(u)
		uc := newOfferUC(u)

		err := uc.UpdateOffer(context.Background(), uuid.New(), offerID, commands.UpdateOfferRequest{
			Title: strPtr("hijacked"),
		})
		assert.ErrorIs(t, err, commands.ErrOfferNotOwned)
	})

	t.Run("unknown offer", func(t *testing.T) {
		u := newFakeUoW()
		uc := newOfferUC(u)

		err := uc.UpdateOffer(context.Background(), uuid.New(), uuid.New(), commands.UpdateOfferRequest{
			Title: strPtr("x"),
		})
		assert.ErrorIs(t, err, commands.ErrOfferNotFound)
	})
}

func TestArchiveOffer(t *testing.T) {
	t.Run("archives once and keeps the first timestamp", func(t *testing.T) {
		u := newFakeUoW()
		rec := activeOffer(int32Ptr(5))
		offerID := u.addOffer(rec)
		uc := newOfferUC(u)

		require.NoError(t, uc.ArchiveOffer(context.Background(), rec.restaurantID, offerID))
		first := u.offers[offerID].archivedAt
		require.NotNil(t, first)

		require.NoError(t, uc.ArchiveOffer(context.Background(), rec.restaurantID, offerID))
		assert.Equal(t, first, u.offers[offerID].archivedAt)
	})

	t.Run("archive does not touch reservations", func(t *testing.T) {
		u := newFakeUoW()
		rec := activeOffer(int32Ptr(5))
		offerID := u.addOffer(rec)
		resUC := newReservationUC(u)
		created, err := resUC.CreateReservation(context.Background(), offerID, 1)
		require.NoError(t, err)

		uc := newOfferUC(u)
		require.NoError(t, uc.ArchiveOffer(context.Background(), rec.restaurantID, offerID))

		_, resRec := u.reservationByCode(created.Code)
		require.NotNil(t, resRec)
		assert.Equal(t, "reserved", resRec.status.String())
	})

	t.Run("other restaurant cannot archive", func(t *testing.T) {
		u := newFakeUoW()
		offerID := u.addOffer(activeOffer(int32Ptr(5)))
		uc := newOfferUC(u)

		err := uc.ArchiveOffer(context.Background(), uuid.New(), offerID)
		assert.ErrorIs(t, err, commands.ErrOfferNotOwned)
	})
}

func TestArchivedOfferCannotBeReserved(t *testing.T) {
	u := newFakeUoW()
	rec := activeOffer(int32Ptr(5))
	offerID := u.addOffer(rec)

	require.NoError(t, newOfferUC(u).ArchiveOffer(context.Background(), rec.restaurantID, offerID))

	_, err := newReservationUC(u).CreateReservation(context.Background(), offerID, 1)
	assert.ErrorIs(t, err, commands.ErrOfferInactive)
}

func TestArchiveTimestampIsClock(t *testing.T) {
	u := newFakeUoW()
	rec := activeOffer(int32Ptr(5))
	offerID := u.addOffer(rec)

	require.NoError(t, newOfferUC(u).ArchiveOffer(context.Background(), rec.restaurantID, offerID))
	require.NotNil(t, u.offers[offerID].archivedAt)
	assert.Equal(t, testNow, *u.offers[offerID].archivedAt)
}
