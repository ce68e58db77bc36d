package wire

// Flag bits are packed least significant bit first within each byte:
// bit i of the sequence lives at byte i/8, position i%8.

// UnpackBits expands packed flag bytes into the full bit sequence,
// including the zero padding of the final byte. The consumer decides
// how many of the trailing bits are padding.
func UnpackBits(b []byte) []bool {
	out := make([]bool, 0, len(b)*8)
	for _, by := range b {
		for i := 0; i < 8; i++ {
			out = append(out, by&(1<<i) != 0)
		}
	}
	return out
}

// PackBits packs a bit sequence LSB first, zero padding the final
// byte.
func PackBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}
