package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("open-sesame-9")
	require.NoError(t, err)
	assert.NotEqual(t, "open-sesame-9", hash)

	assert.True(t, Verify("open-sesame-9", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("open-sesame-9", "not-a-bcrypt-hash"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("open-sesame-9")
	require.NoError(t, err)
	h2, err := Hash("open-sesame-9")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("refresh-token-value")
	b := HashToken("refresh-token-value")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, HashToken("another-token"))
}
