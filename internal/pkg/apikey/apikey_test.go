//go:build unit

package apikey_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastbite/internal/pkg/apikey"
)

func TestGenerate(t *testing.T) {
	a, err := apikey.Generate()
	require.NoError(t, err)
	b, err := apikey.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "KEY_"))
	assert.Len(t, a, 4+32)
	assert.NotEqual(t, a, b)
}

func TestHashAndVerify(t *testing.T) {
	key, err := apikey.Generate()
	require.NoError(t, err)

	hash, err := apikey.Hash(key)
	require.NoError(t, err)
	assert.NotContains(t, hash, key)

	assert.True(t, apikey.Verify(hash, key))
	assert.False(t, apikey.Verify(hash, key+"x"))
	assert.False(t, apikey.Verify(hash, ""))
}
