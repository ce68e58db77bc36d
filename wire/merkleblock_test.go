package wire

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-merkleblock/merkle"
)

func testHashes(t *testing.T, n int) []merkle.Hash {
	t.Helper()
	out := make([]merkle.Hash, n)
	for i := range out {
		out[i] = merkle.Hash(sha256.Sum256(fmt.Appendf(nil, "wire %d", i)))
	}
	return out
}

func TestMerkleBlockRoundTrip(t *testing.T) {
	in := NewMerkleBlock(9, testHashes(t, 3), []bool{true, true, false, true, false})

	var buf bytes.Buffer
	require.NoError(t, in.Encode(&buf))
	assert.Equal(t, in.encodedLen(), buf.Len())

	var out MerkleBlock
	require.NoError(t, out.Decode(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, in.Total, out.Total)
	assert.Equal(t, in.Hashes, out.Hashes)
	assert.Equal(t, in.Flags, out.Flags)
}

func TestMerkleBlockDecodeLayout(t *testing.T) {
	hashes := testHashes(t, 2)

	var b []byte
	b = append(b, 0x07, 0x00, 0x00, 0x00) // total, little endian
	b = append(b, 0x02)                   // hash count
	b = append(b, hashes[0][:]...)
	b = append(b, hashes[1][:]...)
	b = append(b, 0x01, 0x1d) // one flag byte

	var m MerkleBlock
	require.NoError(t, m.Decode(bytes.NewReader(b)))
	assert.Equal(t, uint32(7), m.Total)
	assert.Equal(t, hashes, m.Hashes)
	assert.Equal(t, []byte{0x1d}, m.Flags)
	assert.Equal(t,
		[]bool{true, false, true, true, true, false, false, false},
		m.FlagBits())
}

func TestMerkleBlockDecodeTruncated(t *testing.T) {
	in := NewMerkleBlock(5, testHashes(t, 2), []bool{true, false, true})
	var buf bytes.Buffer
	require.NoError(t, in.Encode(&buf))
	full := buf.Bytes()

	// Every proper prefix must fail with ErrTruncatedInput.
	for cut := 0; cut < len(full); cut++ {
		var m MerkleBlock
		err := m.Decode(bytes.NewReader(full[:cut]))
		assert.ErrorIs(t, err, ErrTruncatedInput, "cut=%d", cut)
	}
}

func TestMerkleBlockDecodeHostileCounts(t *testing.T) {
	// A huge hash count must be rejected before allocation.
	var b []byte
	b = append(b, 0x01, 0x00, 0x00, 0x00)
	b = AppendVarInt(b, uint64(MaxProofHashes)+1)

	var m MerkleBlock
	err := m.Decode(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrValueTooLarge)

	// Same for the flag byte count.
	b = b[:4]
	b = append(b, 0x00) // no hashes
	b = AppendVarInt(b, uint64(MaxFlagBytes)+1)
	err = m.Decode(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrValueTooLarge)
}

func TestMerkleBlockDecodeNonCanonicalCount(t *testing.T) {
	var b []byte
	b = append(b, 0x01, 0x00, 0x00, 0x00)
	b = append(b, 0xfd, 0x01, 0x00) // hash count 1 in the 0xfd form

	var m MerkleBlock
	err := m.Decode(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrNonCanonicalVarInt)
}
