package merkle

import (
	"encoding/hex"
	"fmt"
)

// HashBytes is the fixed width of every hash handled by this package.
const HashBytes = 32

// Hash is a 32 byte digest in internal order, exactly as produced by
// the hash function. Transaction ids and header merkle roots are
// conventionally displayed byte reversed; that conversion is confined
// to Reversed, String and HashFromHex so the tree code never handles
// mixed conventions.
type Hash [HashBytes]byte

// Reversed returns the hash with its byte order flipped, converting
// internal order to display order or back again.
func (h Hash) Reversed() Hash {
	var r Hash
	for i := 0; i < HashBytes; i++ {
		r[i] = h[HashBytes-1-i]
	}
	return r
}

// String renders the hash as display order hex, the form used by
// block explorers and header fields.
func (h Hash) String() string {
	r := h.Reversed()
	return hex.EncodeToString(r[:])
}

// HashFromHex parses a display order hex string into an internal
// order Hash. This is the leaf ingestion point: txids arrive display
// ordered and must be reversed before they enter a tree.
func HashFromHex(s string) (Hash, error) {
	if len(s) != HashBytes*2 {
		return Hash{}, fmt.Errorf("%w: want %d hex chars, got %d", ErrBadHashEncoding, HashBytes*2, len(s))
	}
	var display Hash
	if _, err := hex.Decode(display[:], []byte(s)); err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrBadHashEncoding, err)
	}
	return display.Reversed(), nil
}

// HashFromBytes copies a 32 byte internal order value into a Hash.
// The copy matters: wire buffers are transient.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != HashBytes {
		return Hash{}, fmt.Errorf("%w: want %d bytes, got %d", ErrBadHashEncoding, HashBytes, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}
