//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/domain/restaurant"
	"lastbite/internal/usecase/commands"
)

func newMerchantUC(u *fakeUoW) commands.MerchantCommands {
	return commands.NewMerchantUseCase(u)
}

type profileFields struct {
	Title   string
	Phone   *string
	City    *string
	Address *string
	Lat     *float64
	Lon     *float64
}

func profileOf(r *restaurant.Restaurant) profileFields {
	return profileFields{
		Title:   r.Title(),
		Phone:   r.Phone(),
		City:    r.City(),
		Address: r.Address(),
		Lat:     r.Lat(),
		Lon:     r.Lon(),
	}
}

func TestRegisterMerchant(t *testing.T) {
	t.Run("issues a verifiable key and stores only the hash", func(t *testing.T) {
		u := newFakeUoW()
		uc := newMerchantUC(u)

		result, err := uc.Register(context.Background(), commands.RegisterMerchantRequest{
			Title: "Demo Trattoria",
			City:  strPtr("Lisbon"),
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(result.APIKey, "KEY_"))

		stored := u.restaurants[result.ID]
		require.NotNil(t, stored)
		assert.NotContains(t, stored.APIKeyHash(), result.APIKey)
		assert.True(t, stored.VerifyKey(result.APIKey))
		assert.False(t, stored.VerifyKey("KEY_wrong"))
	})

	t.Run("rejects blank title", func(t *testing.T) {
		u := newFakeUoW()
		uc := newMerchantUC(u)

		_, err := uc.Register(context.Background(), commands.RegisterMerchantRequest{Title: "  "})
		assert.ErrorIs(t, err, restaurant.ErrEmptyTitle)
		assert.Empty(t, u.restaurants)
	})

	t.Run("keys are unique per registration", func(t *testing.T) {
		u := newFakeUoW()
		uc := newMerchantUC(u)

		a, err := uc.Register(context.Background(), commands.RegisterMerchantRequest{Title: "A"})
		require.NoError(t, err)
		b, err := uc.Register(context.Background(), commands.RegisterMerchantRequest{Title: "B"})
		require.NoError(t, err)

		assert.NotEqual(t, a.APIKey, b.APIKey)
	})
}

func TestUpdateMerchantProfile(t *testing.T) {
	register := func(t *testing.T, u *fakeUoW) uuid.UUID {
		t.Helper()
		result, err := newMerchantUC(u).Register(context.Background(), commands.RegisterMerchantRequest{
			Title:   "Demo Trattoria",
			Phone:   strPtr("+351000000000"),
			City:    strPtr("Lisbon"),
			Address: strPtr("Rua A 1"),
			Lat:     f64Ptr(38.72),
			Lon:     f64Ptr(-9.14),
		})
		require.NoError(t, err)
		return result.ID
	}

	t.Run("applies only supplied fields", func(t *testing.T) {
		u := newFakeUoW()
		id := register(t, u)

		err := newMerchantUC(u).UpdateProfile(context.Background(), id, commands.UpdateMerchantProfileRequest{
			Title: strPtr("Trattoria Nova"),
			City:  strPtr("Porto"),
		})
		require.NoError(t, err)

		want := profileFields{
			Title:   "Trattoria Nova",
			Phone:   strPtr("+351000000000"),
			City:    strPtr("Porto"),
			Address: strPtr("Rua A 1"),
			Lat:     f64Ptr(38.72),
			Lon:     f64Ptr(-9.14),
		}
		if diff := cmp.Diff(want, profileOf(u.restaurants[id])); diff != "" {
			t.Errorf("profile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("update keeps the key valid", func(t *testing.T) {
		u := newFakeUoW()
		uc := newMerchantUC(u)
		result, err := uc.Register(context.Background(), commands.RegisterMerchantRequest{Title: "Demo"})
		require.NoError(t, err)

		err = uc.UpdateProfile(context.Background(), result.ID, commands.UpdateMerchantProfileRequest{
			Title: strPtr("Renamed"),
		})
		require.NoError(t, err)

		assert.True(t, u.restaurants[result.ID].VerifyKey(result.APIKey))
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		u := newFakeUoW()

		err := newMerchantUC(u).UpdateProfile(context.Background(), uuid.New(), commands.UpdateMerchantProfileRequest{
			Title: strPtr("ghost"),
		})
		assert.ErrorIs(t, err, commands.ErrRestaurantNotFound)
	})
}
