//go:build unit

package reservation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/domain/reservation"
)

func TestNewCode(t *testing.T) {
	const ambiguous = "0O1IL"

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := reservation.NewCode()
		require.NoError(t, err)

		assert.Len(t, code, 10)
		for _, r := range code {
			assert.NotContains(t, ambiguous, string(r))
		}
		assert.Equal(t, strings.ToUpper(code), code)
		seen[code] = struct{}{}
	}
	// 50 draws from a 31^10 space must not collide
	assert.Len(t, seen, 50)
}
