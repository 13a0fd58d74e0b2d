//go:build unit

package offer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/domain/offer"
)

func int32Ptr(v int32) *int32 { return &v }

func TestNewOffer_Validation(t *testing.T) {
	restaurantID := uuid.New()

	tests := []struct {
		name    string
		title   string
		price   int64
		qty     int32
		wantErr error
	}{
		{"empty title", "", 500, 3, offer.ErrEmptyTitle},
		{"whitespace title", "   ", 500, 3, offer.ErrEmptyTitle},
		{"title too long", strings.Repeat("x", 256), 500, 3, offer.ErrTitleTooLong},
		{"zero price", "Bread", 0, 3, offer.ErrMissingBasePrice},
		{"negative price", "Bread", -100, 3, offer.ErrMissingBasePrice},
		{"negative qty", "Bread", 500, -1, offer.ErrNegativeQty},
		{"valid", "Bread", 500, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := offer.NewOffer(uuid.New(), restaurantID, tt.title, nil, tt.price, nil, tt.qty, nil, nil, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewOffer_QtyLeftDefaultsToTotal(t *testing.T) {
	o, err := offer.NewOffer(uuid.New(), uuid.New(), "Bread", nil, 500, nil, 7, nil, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, o.QtyLeft())
	assert.Equal(t, int32(7), *o.QtyLeft())
}

func TestNewOffer_QtyLeftBounds(t *testing.T) {
	_, err := offer.NewOffer(uuid.New(), uuid.New(), "Bread", nil, 500, nil, 5, int32Ptr(6), nil, nil)
	assert.ErrorIs(t, err, offer.ErrNegativeQty)

	_, err = offer.NewOffer(uuid.New(), uuid.New(), "Bread", nil, 500, nil, 5, int32Ptr(-1), nil, nil)
	assert.ErrorIs(t, err, offer.ErrNegativeQty)
}

func TestOffer_IsActiveAt(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		qtyLeft    *int32
		expiresAt  *time.Time
		archivedAt *time.Time
		want       bool
	}{
		{"in stock, not expired", int32Ptr(2), timePtr(now.Add(time.Hour)), nil, true},
		{"unlimited quantity", nil, timePtr(now.Add(time.Hour)), nil, true},
		{"never expires", int32Ptr(2), nil, nil, true},
		{"sold out", int32Ptr(0), timePtr(now.Add(time.Hour)), nil, false},
		{"expired", int32Ptr(2), timePtr(now.Add(-time.Minute)), nil, false},
		{"expiry exactly now", int32Ptr(2), timePtr(now), nil, false},
		{"archived", int32Ptr(2), timePtr(now.Add(time.Hour)), timePtr(now.Add(-time.Hour)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := offer.ReconstructOffer(
				uuid.New(), uuid.New(), "Bread", nil, 500, nil,
				5, tt.qtyLeft, tt.expiresAt, tt.archivedAt, nil, now.Add(-24*time.Hour),
			)
			assert.Equal(t, tt.want, o.IsActiveAt(now))
		})
	}
}

func TestOffer_HasExpiredAt(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

	o := offer.ReconstructOffer(uuid.New(), uuid.New(), "Bread", nil, 500, nil, 5, nil, timePtr(now.Add(-time.Second)), nil, nil, now)
	assert.True(t, o.HasExpiredAt(now))

	o = offer.ReconstructOffer(uuid.New(), uuid.New(), "Bread", nil, 500, nil, 5, nil, nil, nil, nil, now)
	assert.False(t, o.HasExpiredAt(now))
}
