package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/forestrie/go-merkleblock/merkle"
)

// Sanity bounds on the declared counts of a merkleblock payload.
// They are checked before any allocation so a hostile length prefix
// cannot demand memory it never supplies bytes for. An honest proof
// never carries more hashes than leaves, nor more flag bytes than one
// bit per tree node, and both stay far inside these.
const (
	MaxProofHashes = merkle.MaxProofLeaves
	MaxFlagBytes   = merkle.MaxProofLeaves / 2
)

// MerkleBlock is the proof payload of a merkleblock message: the leaf
// total fixing the tree shape, the hash subset in traversal
// consumption order, and the packed flag bits driving the traversal.
//
// A decoded MerkleBlock is consumed once by the proof decoder and
// discarded; the durable artifacts are the resolved root and the
// matched leaves.
type MerkleBlock struct {
	Total  uint32
	Hashes []merkle.Hash
	Flags  []byte
}

// NewMerkleBlock packs a built proof (see merkle.BuildProof) into a
// payload ready for encoding.
func NewMerkleBlock(total uint32, hashes []merkle.Hash, flagBits []bool) *MerkleBlock {
	return &MerkleBlock{
		Total:  total,
		Hashes: append([]merkle.Hash(nil), hashes...),
		Flags:  PackBits(flagBits),
	}
}

// Decode reads the payload fields from r: total (4 bytes LE), varint
// hash count, the 32 byte hashes, varint flag byte count, the flag
// bytes. Counts are bounded before their data is read.
func (m *MerkleBlock) Decode(r io.Reader) error {
	var b4 [4]byte
	if _, err := io.ReadFull(r, b4[:]); err != nil {
		return fmt.Errorf("%w: leaf total", ErrTruncatedInput)
	}
	m.Total = binary.LittleEndian.Uint32(b4[:])

	count, err := ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("hash count: %w", err)
	}
	if count > MaxProofHashes {
		return fmt.Errorf("%w: %d hashes, limit %d", ErrValueTooLarge, count, MaxProofHashes)
	}
	m.Hashes = make([]merkle.Hash, count)
	for i := range m.Hashes {
		if _, err := io.ReadFull(r, m.Hashes[i][:]); err != nil {
			return fmt.Errorf("%w: hash %d of %d", ErrTruncatedInput, i, count)
		}
	}

	flagLen, err := ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("flag byte count: %w", err)
	}
	if flagLen > MaxFlagBytes {
		return fmt.Errorf("%w: %d flag bytes, limit %d", ErrValueTooLarge, flagLen, MaxFlagBytes)
	}
	m.Flags = make([]byte, flagLen)
	if _, err := io.ReadFull(r, m.Flags); err != nil {
		return fmt.Errorf("%w: flag bytes", ErrTruncatedInput)
	}
	return nil
}

// Encode writes the payload in the layout Decode reads.
func (m *MerkleBlock) Encode(w io.Writer) error {
	b := make([]byte, 0, m.encodedLen())
	b = binary.LittleEndian.AppendUint32(b, m.Total)
	b = AppendVarInt(b, uint64(len(m.Hashes)))
	for i := range m.Hashes {
		b = append(b, m.Hashes[i][:]...)
	}
	b = AppendVarInt(b, uint64(len(m.Flags)))
	b = append(b, m.Flags...)
	_, err := w.Write(b)
	return err
}

// FlagBits expands the packed flag bytes into the bit sequence the
// traversal consumes, LSB first within each byte.
func (m *MerkleBlock) FlagBits() []bool {
	return UnpackBits(m.Flags)
}

func (m *MerkleBlock) encodedLen() int {
	return 4 +
		VarIntLen(uint64(len(m.Hashes))) + len(m.Hashes)*merkle.HashBytes +
		VarIntLen(uint64(len(m.Flags))) + len(m.Flags)
}
