//go:build unit

package offer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/domain/offer"
)

func int64Ptr(v int64) *int64          { return &v }
func timePtr(t time.Time) *time.Time   { return &t }

func TestQuote_DiscountSchedule(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)
	original := int64Ptr(10000)

	tests := []struct {
		name            string
		minutesToExpiry time.Duration
		wantPrice       int64
		wantPercent     int
		wantTier        string
	}{
		{"20 minutes left", 20 * time.Minute, 3000, 70, "-70%"},
		{"45 minutes left", 45 * time.Minute, 5000, 50, "-50%"},
		{"90 minutes left", 90 * time.Minute, 7000, 30, "-30%"},
		{"exactly 30 minutes", 30 * time.Minute, 3000, 70, "-70%"},
		{"exactly 60 minutes", 60 * time.Minute, 5000, 50, "-50%"},
		{"exactly 120 minutes", 120 * time.Minute, 7000, 30, "-30%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiresAt := now.Add(tt.minutesToExpiry)
			quote := offer.Quote(4000, original, &expiresAt, now)

			assert.Equal(t, tt.wantPrice, quote.EffectivePriceCents)
			assert.Equal(t, tt.wantPercent, quote.DiscountPercent)
			require.NotNil(t, quote.Tier)
			assert.Equal(t, tt.wantTier, *quote.Tier)
		})
	}
}

func TestQuote_NoDiscount(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("150 minutes left", func(t *testing.T) {
		expiresAt := now.Add(150 * time.Minute)
		quote := offer.Quote(10000, nil, &expiresAt, now)

		assert.Equal(t, int64(10000), quote.EffectivePriceCents)
		assert.Equal(t, 0, quote.DiscountPercent)
		assert.Nil(t, quote.Tier)
	})

	t.Run("no expiry never discounts", func(t *testing.T) {
		quote := offer.Quote(10000, int64Ptr(20000), nil, now)

		assert.Equal(t, int64(10000), quote.EffectivePriceCents)
		assert.Equal(t, 0, quote.DiscountPercent)
		assert.Nil(t, quote.Tier)
	})
}

func TestQuote_ReferencePrice(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(45 * time.Minute)

	t.Run("original price is the discount base", func(t *testing.T) {
		quote := offer.Quote(4000, int64Ptr(10000), &expiresAt, now)
		assert.Equal(t, int64(5000), quote.EffectivePriceCents)
	})

	t.Run("falls back to base price", func(t *testing.T) {
		quote := offer.Quote(4000, nil, &expiresAt, now)
		assert.Equal(t, int64(2000), quote.EffectivePriceCents)
	})
}

func TestQuote_RoundsHalfAwayFromZero(t *testing.T) {
	now := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(20 * time.Minute)

	// 3333 * 0.30 = 999.9 → 1000; 1675 * 0.30 = 502.5 → 503
	quote := offer.Quote(3333, nil, &expiresAt, now)
	assert.Equal(t, int64(1000), quote.EffectivePriceCents)

	quote = offer.Quote(1675, nil, &expiresAt, now)
	assert.Equal(t, int64(503), quote.EffectivePriceCents)
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int64
	}{
		{"major units", 12.34, 1234},
		{"major units rounding", 9.999, 1000},
		{"just below threshold", 99999.99, 9999999},
		{"at threshold treated as cents", 100000, 100000},
		{"above threshold treated as cents", 250000, 250000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, offer.ToMinorUnits(tt.in))
		})
	}
}
