// Package spv ties the wire and merkle layers together for a light
// client: it resolves the root committed by a merkleblock proof
// payload and compares it against a root the caller already trusts,
// typically lifted from a validated block header.
//
// A failed comparison is the expected outcome of an invalid or
// dishonest proof and is reported as ErrRootMismatch, distinct from
// the malformed input errors of the wire and merkle packages, so a
// caller can decide separately whether to refetch and whether to
// blacklist the source.
package spv

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/forestrie/go-merkleblock/merkle"
	"github.com/forestrie/go-merkleblock/wire"
)

// ErrRootMismatch reports a proof that decoded cleanly but resolved
// to a root other than the trusted one.
var ErrRootMismatch = errors.New("resolved merkle root does not match the trusted root")

// VerifyRoot is the equality core: both hashes must be in the same
// byte order convention, which they are whenever both came through
// this module's boundaries (internal order everywhere inside, display
// order only at the hex surface).
func VerifyRoot(resolved, trusted merkle.Hash) bool {
	return resolved == trusted
}

// Verify decodes a raw merkleblock proof payload, resolves its root,
// and compares it to trusted. On success it returns the matched
// leaves, the items the proof explicitly vouches for. Trailing bytes
// after the payload are rejected the same way as trailing hashes or
// flag bits inside it.
func Verify(payload []byte, trusted merkle.Hash) ([]merkle.MatchedLeaf, error) {
	r := bytes.NewReader(payload)
	var m wire.MerkleBlock
	if err := m.Decode(r); err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after the payload", merkle.ErrUnconsumedData, r.Len())
	}
	root, matched, err := merkle.DecodeProof(uint64(m.Total), m.Hashes, m.FlagBits())
	if err != nil {
		return nil, err
	}
	if !VerifyRoot(root, trusted) {
		return nil, fmt.Errorf("%w: resolved %s, trusted %s", ErrRootMismatch, root, trusted)
	}
	return matched, nil
}

// IsRootMismatch reports whether err is a verification failure as
// opposed to malformed input.
func IsRootMismatch(err error) bool {
	return errors.Is(err, ErrRootMismatch)
}
