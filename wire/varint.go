package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Varint prefix bytes and the value boundaries of each form. A value
// always takes the smallest form that can hold it; decode enforces
// this, so every integer has exactly one accepted encoding.
const (
	varIntPrefix16 = 0xfd
	varIntPrefix32 = 0xfe
	varIntPrefix64 = 0xff
)

// ReadVarInt decodes one variable length integer from r. The prefix
// byte selects the form: values below 0xfd are the prefix itself,
// 0xfd/0xfe/0xff introduce 2, 4 or 8 little endian payload bytes.
// Short input fails with ErrTruncatedInput; a longer form carrying a
// value the shorter form could hold fails with ErrNonCanonicalVarInt.
func ReadVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, fmt.Errorf("%w: varint prefix", ErrTruncatedInput)
	}
	switch prefix[0] {
	case varIntPrefix16:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: varint 2 byte payload", ErrTruncatedInput)
		}
		v := uint64(binary.LittleEndian.Uint16(b[:]))
		if v < 0xfd {
			return 0, fmt.Errorf("%w: %d in the 0xfd form", ErrNonCanonicalVarInt, v)
		}
		return v, nil
	case varIntPrefix32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: varint 4 byte payload", ErrTruncatedInput)
		}
		v := uint64(binary.LittleEndian.Uint32(b[:]))
		if v < 0x10000 {
			return 0, fmt.Errorf("%w: %d in the 0xfe form", ErrNonCanonicalVarInt, v)
		}
		return v, nil
	case varIntPrefix64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: varint 8 byte payload", ErrTruncatedInput)
		}
		v := binary.LittleEndian.Uint64(b[:])
		if v < 0x100000000 {
			return 0, fmt.Errorf("%w: %d in the 0xff form", ErrNonCanonicalVarInt, v)
		}
		return v, nil
	default:
		return uint64(prefix[0]), nil
	}
}

// AppendVarInt appends the canonical (smallest form) encoding of v to
// b. The uint64 domain is exactly the encodable range, so unlike a
// big integer encoder this cannot fail.
func AppendVarInt(b []byte, v uint64) []byte {
	switch {
	case v < uint64(varIntPrefix16):
		return append(b, byte(v))
	case v < 0x10000:
		b = append(b, varIntPrefix16)
		return binary.LittleEndian.AppendUint16(b, uint16(v))
	case v < 0x100000000:
		b = append(b, varIntPrefix32)
		return binary.LittleEndian.AppendUint32(b, uint32(v))
	default:
		b = append(b, varIntPrefix64)
		return binary.LittleEndian.AppendUint64(b, v)
	}
}

// WriteVarInt writes the canonical encoding of v to w.
func WriteVarInt(w io.Writer, v uint64) error {
	_, err := w.Write(AppendVarInt(nil, v))
	return err
}

// VarIntLen returns the encoded byte length of v.
func VarIntLen(v uint64) int {
	switch {
	case v < uint64(varIntPrefix16):
		return 1
	case v < 0x10000:
		return 3
	case v < 0x100000000:
		return 5
	default:
		return 9
	}
}
