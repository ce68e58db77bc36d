package merkle

import "fmt"

// MaxProofLeaves bounds the leaf totals this package will allocate a
// shape for. The bound exists so that a hostile count field cannot
// demand gigabytes before the first hash is checked; it is far above
// anything a real block can hold.
const MaxProofLeaves = 1 << 24

// MatchedLeaf records a leaf a proof explicitly flagged as a target,
// as opposed to a leaf hash supplied only so an ancestor could be
// recomputed.
type MatchedLeaf struct {
	Index uint64
	Hash  Hash
}

// DecodeProof resolves the root of a tree with total leaves from the
// compact merkleblock encoding: a subset of node hashes plus one flag
// bit per visited node, consumed in depth first pre-order.
//
// At each first visit one bit is popped. A 0 bit, or any visit to a
// leaf, pops a hash that stands for the whole branch; a 1 bit at a
// leaf additionally records the leaf as matched; a 1 bit at an
// interior node descends left then right (where a right child exists)
// and combines the results. Matched leaves are returned in leaf index
// order because that is visitation order.
//
// Leftover hashes, or leftover flag bits beyond the zero padding of
// the final byte, fail with ErrUnconsumedData: residue means the
// encoding was malformed or padded by an adversary and the result
// cannot be trusted.
func DecodeProof(total uint64, hashes []Hash, flags []bool) (Hash, []MatchedLeaf, error) {
	p, err := NewPartialTree(total)
	if err != nil {
		return Hash{}, nil, err
	}

	var matched []MatchedLeaf
	nextHash := 0
	nextFlag := 0

	popFlag := func() (bool, error) {
		if nextFlag == len(flags) {
			return false, fmt.Errorf("%w: %d bits consumed", ErrInsufficientFlags, nextFlag)
		}
		b := flags[nextFlag]
		nextFlag++
		return b, nil
	}
	popHash := func() (Hash, error) {
		if nextHash == len(hashes) {
			return Hash{}, fmt.Errorf("%w: %d hashes consumed", ErrInsufficientHashes, nextHash)
		}
		h := hashes[nextHash]
		nextHash++
		return h, nil
	}

	for {
		if _, ok := p.get(0, 0); ok {
			break
		}
		if p.IsLeaf() {
			flag, err := popFlag()
			if err != nil {
				return Hash{}, nil, err
			}
			h, err := popHash()
			if err != nil {
				return Hash{}, nil, err
			}
			p.SetCurrent(h)
			if flag {
				matched = append(matched, MatchedLeaf{Index: p.index, Hash: h})
			}
			if err := p.ascend(); err != nil {
				return Hash{}, nil, err
			}
			continue
		}
		// Interior node. An unset left child means this is the first
		// visit, so this node's flag bit is still unconsumed.
		if _, ok := p.LeftChild(); !ok {
			flag, err := popFlag()
			if err != nil {
				return Hash{}, nil, err
			}
			if !flag {
				h, err := popHash()
				if err != nil {
					return Hash{}, nil, err
				}
				p.SetCurrent(h)
				if err := p.ascend(); err != nil {
					return Hash{}, nil, err
				}
				continue
			}
			if err := p.Left(); err != nil {
				return Hash{}, nil, err
			}
			continue
		}
		left, _ := p.LeftChild()
		if p.RightExists() {
			right, ok := p.RightChild()
			if !ok {
				if err := p.Right(); err != nil {
					return Hash{}, nil, err
				}
				continue
			}
			p.SetCurrent(Combine(left, right))
		} else {
			p.SetCurrent(Combine(left, left))
		}
		if err := p.ascend(); err != nil {
			return Hash{}, nil, err
		}
	}

	if nextHash != len(hashes) {
		return Hash{}, nil, fmt.Errorf("%w: %d unread hashes", ErrUnconsumedData, len(hashes)-nextHash)
	}
	if rem := len(flags) - nextFlag; rem >= 8 {
		return Hash{}, nil, fmt.Errorf("%w: %d unread flag bits", ErrUnconsumedData, rem)
	}
	for _, b := range flags[nextFlag:] {
		if b {
			return Hash{}, nil, fmt.Errorf("%w: nonzero flag padding", ErrUnconsumedData)
		}
	}

	root, _ := p.get(0, 0)
	return root, matched, nil
}

// BuildProof is the producer side inverse of DecodeProof: given the
// complete leaf list and a selector of which leaves to prove, it
// emits the minimal hash subset and the flag bit sequence, in the
// depth first pre-order the decoder consumes them in.
//
// A subtree covering no matched leaf contributes a single 0 bit and
// its root hash; a matched leaf contributes a 1 bit and its hash; an
// interior node over a matched leaf contributes a 1 bit and recurses.
func BuildProof(leaves []Hash, matched []bool) ([]Hash, []bool, error) {
	if len(leaves) == 0 {
		return nil, nil, ErrEmptyLeafSet
	}
	if len(matched) != len(leaves) {
		return nil, nil, fmt.Errorf("%w: %d leaves, %d selectors", ErrMatchSelector, len(leaves), len(matched))
	}
	t, err := BuildTree(leaves)
	if err != nil {
		return nil, nil, err
	}

	var hashes []Hash
	var flags []bool

	// anyMatched reports whether the leaf span under (depth, index)
	// covers a selected leaf.
	anyMatched := func(depth int, index uint64) bool {
		span := uint64(1) << (t.maxDepth - depth)
		start := index * span
		end := min(start+span, t.total)
		for i := start; i < end; i++ {
			if matched[i] {
				return true
			}
		}
		return false
	}

	// Recursion depth is bounded by maxDepth, at most 24 under
	// MaxProofLeaves, so the call stack is not a concern.
	var walk func(depth int, index uint64)
	walk = func(depth int, index uint64) {
		m := anyMatched(depth, index)
		flags = append(flags, m)
		if depth == t.maxDepth || !m {
			hashes = append(hashes, t.Node(depth, index))
			return
		}
		walk(depth+1, index*2)
		if index*2+1 < uint64(len(t.levels[depth+1])) {
			walk(depth+1, index*2+1)
		}
	}
	walk(0, 0)

	return hashes, flags, nil
}
