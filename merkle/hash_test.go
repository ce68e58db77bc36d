package merkle

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLeaves builds n deterministic distinct leaf hashes.
func testLeaves(t *testing.T, n int) []Hash {
	t.Helper()
	leaves := make([]Hash, n)
	for i := range leaves {
		leaves[i] = Hash(sha256.Sum256(fmt.Appendf(nil, "leaf %d", i)))
	}
	return leaves
}

func TestHashHexRoundTrip(t *testing.T) {
	h := Hash(sha256.Sum256([]byte("round trip")))

	parsed, err := HashFromHex(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func TestHashReversedIsInvolution(t *testing.T) {
	h := Hash(sha256.Sum256([]byte("reverse me")))
	assert.Equal(t, h, h.Reversed().Reversed())
	assert.NotEqual(t, h, h.Reversed())
}

func TestHashStringIsDisplayOrder(t *testing.T) {
	var h Hash
	h[0] = 0xab
	h[31] = 0x01

	s := h.String()
	require.Len(t, s, 64)
	// The last internal byte leads the display form.
	assert.Equal(t, "01", s[:2])
	assert.Equal(t, "ab", s[62:])
}

func TestHashFromHexRejectsBadInput(t *testing.T) {
	_, err := HashFromHex("abcd")
	assert.ErrorIs(t, err, ErrBadHashEncoding)

	_, err = HashFromHex("zz" + "00000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrBadHashEncoding)
}

func TestHashFromBytes(t *testing.T) {
	b := make([]byte, HashBytes)
	b[5] = 0x7f
	h, err := HashFromBytes(b)
	require.NoError(t, err)

	// The hash must be a copy, not a view of the source buffer.
	b[5] = 0x00
	assert.Equal(t, byte(0x7f), h[5])

	_, err = HashFromBytes(b[:31])
	assert.ErrorIs(t, err, ErrBadHashEncoding)
}
