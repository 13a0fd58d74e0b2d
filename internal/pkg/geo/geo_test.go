//go:build unit

package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lastbite/internal/pkg/geo"
)

func TestHaversineKm(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		assert.Zero(t, geo.HaversineKm(38.71, -9.14, 38.71, -9.14))
	})

	t.Run("Lisbon to Porto", func(t *testing.T) {
		// ~274 km great-circle
		d := geo.HaversineKm(38.7223, -9.1393, 41.1579, -8.6291)
		assert.InDelta(t, 274, d, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := geo.HaversineKm(52.52, 13.405, 48.8566, 2.3522)
		b := geo.HaversineKm(48.8566, 2.3522, 52.52, 13.405)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("short hop is sub-kilometer", func(t *testing.T) {
		d := geo.HaversineKm(38.7100, -9.1400, 38.7150, -9.1400)
		assert.Greater(t, d, 0.0)
		assert.Less(t, d, 1.0)
	})
}
