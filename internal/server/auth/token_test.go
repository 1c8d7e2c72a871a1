package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok, err := GenerateSessionToken()
		require.NoError(t, err)
		require.Len(t, tok, 64)
		_, err = hex.DecodeString(tok)
		require.NoError(t, err)

		_, dup := seen[tok]
		require.False(t, dup, "duplicate token")
		seen[tok] = struct{}{}
	}
}

func TestHashSessionToken(t *testing.T) {
	t.Parallel()

	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashSessionToken("abc"))
	assert.NotEqual(t, HashSessionToken("a"), HashSessionToken("b"))
	assert.Len(t, HashSessionToken(""), 64)
}
