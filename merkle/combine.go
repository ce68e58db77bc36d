package merkle

import "crypto/sha256"

// Combine derives a parent hash from its two children: SHA-256
// applied twice over the 64 byte concatenation left || right. The
// second application is the usual hardening against length extension
// style preimage shortcuts on the single round function.
func Combine(left, right Hash) Hash {
	var buf [2 * HashBytes]byte
	copy(buf[:HashBytes], left[:])
	copy(buf[HashBytes:], right[:])
	first := sha256.Sum256(buf[:])
	return Hash(sha256.Sum256(first[:]))
}

// ParentLevel reduces one level of hashes to the level above it by
// combining adjacent pairs. An odd length level has its last hash
// duplicated for the final pair; the duplicate is computational only
// and never stored anywhere.
func ParentLevel(level []Hash) []Hash {
	parents := make([]Hash, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		right := i + 1
		if right == len(level) {
			right = i
		}
		parents = append(parents, Combine(level[i], level[right]))
	}
	return parents
}
